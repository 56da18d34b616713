package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"collegeaccounts_backend/internals/configs"
	"collegeaccounts_backend/internals/features/users/auth/dto"
	authRepo "collegeaccounts_backend/internals/features/users/auth/repository"
	"collegeaccounts_backend/internals/features/users/auth/service"
	helper "collegeaccounts_backend/internals/helpers"
)

type AuthController struct {
	Svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Svc: svc}
}

func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input format")
	}
	return helper.Validate.Struct(out)
}

// badRequest: error validator → 422 per field, sisanya ke ErrorHandler.
func badRequest(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	return err
}

func setAccessCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HTTPOnly: true,
		Secure:   configs.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	res, err := ac.Svc.Login(c.UserContext(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email or password is incorrect")
	case errors.Is(err, service.ErrInactive):
		return helper.JsonError(c, fiber.StatusForbidden, "Account is disabled. Contact the administrator.")
	case err != nil:
		ac.Svc.Log.Error("login failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	setAccessCookie(c, res.AccessToken, res.ExpiresAt)
	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   res.ExpiresAt,
		User:        dto.ToUserResponse(res.User),
	})
}

// POST /api/auth/logout (idempotent)
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw, _ := c.Locals("access_token").(string)
	if err := ac.Svc.Logout(c.UserContext(), raw); err != nil {
		ac.Svc.Log.Error("logout failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   configs.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return helper.JsonOK(c, "Logout successful", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	user, err := ac.Svc.Me(c.UserContext(), userID)
	if err != nil {
		if authRepo.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponse(user))
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	err = ac.Svc.ChangePassword(c.UserContext(), userID, req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
	case authRepo.IsNotFound(err):
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	case err != nil:
		ac.Svc.Log.Error("change password failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonUpdated(c, "Password changed successfully", nil)
}
