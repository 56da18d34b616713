// internals/features/users/auth/service/auth_service.go
package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	database "collegeaccounts_backend/internals/databases"
	authRepo "collegeaccounts_backend/internals/features/users/auth/repository"
	userModel "collegeaccounts_backend/internals/features/users/user/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactive           = errors.New("account is disabled")
	ErrEmailTaken         = errors.New("email already registered")
)

// blacklistGrace: token tetap diblokir sedikit lewat exp (clock skew).
const blacklistGrace = time.Minute

type AuthService struct {
	DB        *gorm.DB
	Log       *zap.Logger
	Secret    string
	AccessTTL time.Duration
	now       func() time.Time
}

func NewAuthService(db *gorm.DB, log *zap.Logger, secret string, accessTTL time.Duration) *AuthService {
	return &AuthService{
		DB:        db,
		Log:       log.Named("auth"),
		Secret:    secret,
		AccessTTL: accessTTL,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *userModel.UserModel
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := authRepo.FindUserByEmail(ctx, s.DB, email)
	if err != nil {
		if authRepo.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := CheckPasswordHash(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactive
	}

	token, exp, err := s.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	s.Log.Info("login", zap.String("user_id", user.ID.String()), zap.String("email", user.Email))
	return &LoginResult{AccessToken: token, ExpiresAt: exp, User: user}, nil
}

// IssueAccessToken: HS256, klaim id/sub + profil ringkas.
func (s *AuthService) IssueAccessToken(user *userModel.UserModel) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.AccessTTL)
	claims := jwt.MapClaims{
		"id":    user.ID.String(),
		"sub":   user.ID.String(),
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (s *AuthService) tokenHash(raw string) string {
	m := hmac.New(sha256.New, []byte(s.Secret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}

// blacklistUntil: exp token + grace; token tanpa exp diblokir selama AccessTTL.
func (s *AuthService) blacklistUntil(raw string) time.Time {
	var claims jwt.RegisteredClaims
	_, _, err := jwt.NewParser().ParseUnverified(raw, &claims)
	if err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time.Add(blacklistGrace)
	}
	return s.now().Add(s.AccessTTL)
}

// Logout mem-blacklist access token lalu membersihkan entri yang sudah lewat.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if err := authRepo.BlacklistToken(ctx, s.DB, s.tokenHash(raw), s.blacklistUntil(raw)); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	if n, err := s.PruneBlacklist(ctx); err != nil {
		s.Log.Warn("blacklist cleanup failed", zap.Error(err))
	} else if n > 0 {
		s.Log.Debug("blacklist cleanup", zap.Int64("deleted", n))
	}
	return nil
}

// IsRevoked dipakai middleware AuthJWT sebagai BlacklistChecker.
func (s *AuthService) IsRevoked(ctx context.Context, raw string) (bool, error) {
	return authRepo.IsBlacklisted(ctx, s.DB, s.tokenHash(raw))
}

func (s *AuthService) PruneBlacklist(ctx context.Context) (int64, error) {
	return authRepo.CleanupExpiredBlacklist(ctx, s.DB)
}

func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	return authRepo.FindUserByID(ctx, s.DB, id)
}

func (s *AuthService) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	user, err := authRepo.FindUserByID(ctx, s.DB, id)
	if err != nil {
		return err
	}
	if err := CheckPasswordHash(user.Password, current); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := authRepo.UpdateUserPassword(ctx, s.DB, id, hash); err != nil {
		return err
	}
	s.Log.Info("password changed", zap.String("user_id", id.String()))
	return nil
}

// CreateUser dipakai CLI create-user (tidak ada register publik).
func (s *AuthService) CreateUser(ctx context.Context, name, email, password, role string) (*userModel.UserModel, error) {
	u := &userModel.UserModel{Name: strings.TrimSpace(name), Email: email, Password: password, Role: role, IsActive: true}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u.Password = hash
	if err := authRepo.CreateUser(ctx, s.DB, u); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.Log.Info("user created", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return u, nil
}
