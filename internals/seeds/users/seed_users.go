package users

import (
	"context"
	"errors"

	"go.uber.org/zap"

	authRepo "collegeaccounts_backend/internals/features/users/auth/repository"
	authService "collegeaccounts_backend/internals/features/users/auth/service"
	userModel "collegeaccounts_backend/internals/features/users/user/model"
	"collegeaccounts_backend/internals/seeds/seedfile"
)

type UserSeed struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SeedUsersFromJSON membuat akun yang belum ada (email sudah terpakai → dilewati).
// Mengembalikan semua akun dari file (baru maupun lama), urut sesuai file.
func SeedUsersFromJSON(ctx context.Context, svc *authService.AuthService, filePath string) ([]*userModel.UserModel, error) {
	var inputs []UserSeed
	if err := seedfile.ReadJSON(filePath, &inputs); err != nil {
		return nil, err
	}

	out := make([]*userModel.UserModel, 0, len(inputs))
	for _, in := range inputs {
		u, err := svc.CreateUser(ctx, in.Name, in.Email, in.Password, in.Role)
		if errors.Is(err, authService.ErrEmailTaken) {
			svc.Log.Info("seed user exists, skipped", zap.String("email", in.Email))
			existing, ferr := authRepo.FindUserByEmail(ctx, svc.DB, in.Email)
			if ferr != nil {
				return nil, ferr
			}
			out = append(out, existing)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
