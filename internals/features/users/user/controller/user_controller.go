package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authRepo "collegeaccounts_backend/internals/features/users/auth/repository"
	authService "collegeaccounts_backend/internals/features/users/auth/service"
	"collegeaccounts_backend/internals/features/users/user/dto"
	"collegeaccounts_backend/internals/features/users/user/model"
	"collegeaccounts_backend/internals/features/users/user/repository"
	helper "collegeaccounts_backend/internals/helpers"
)

// UserController: manajemen akun oleh admin. Akun baru tetap lewat CLI create-user.
type UserController struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewUserController(db *gorm.DB, log *zap.Logger) *UserController {
	return &UserController{DB: db, Log: log}
}

func validationFailed(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
}

func (uc *UserController) internal(c *fiber.Ctx, msg string, err error) error {
	uc.Log.Error(msg, zap.Error(err))
	return helper.JsonError(c, fiber.StatusInternalServerError, "")
}

// GET /api/users
func (uc *UserController) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	if err := helper.Validate.Struct(q); err != nil {
		return validationFailed(c, err)
	}

	params := helper.ParseFiber(c, "name", "asc", helper.AdminOpts)
	rows, total, err := repository.List(c.UserContext(), uc.DB, repository.ListFilter{
		Search: q.Search,
		Role:   q.Role,
		Active: q.ActiveFilter(),
		Params: params,
	})
	if err != nil {
		return uc.internal(c, "list users failed", err)
	}
	return helper.JsonList(c, "ok", dto.ToUserResponses(rows),
		helper.BuildPaginationFromPage(total, params.Page, params.PerPage))
}

// GET /api/users/:id
func (uc *UserController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	u, err := repository.FindByID(c.UserContext(), uc.DB, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return uc.internal(c, "get user failed", err)
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponse(*u))
}

// PATCH /api/users/:id: role dan/atau is_active.
// Admin tidak boleh menurunkan role atau menonaktifkan akunnya sendiri.
func (uc *UserController) UpdateAccess(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var req dto.UpdateAccessRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	if id == actor {
		if (req.Role != nil && *req.Role != model.RoleAdmin) || (req.IsActive != nil && !*req.IsActive) {
			return helper.JsonError(c, fiber.StatusConflict, "You cannot demote or deactivate your own account")
		}
	}

	if err := repository.UpdateAccess(c.UserContext(), uc.DB, id, req.Role, req.IsActive); err != nil {
		if repository.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return uc.internal(c, "update user access failed", err)
	}
	u, err := repository.FindByID(c.UserContext(), uc.DB, id)
	if err != nil {
		return uc.internal(c, "reload user failed", err)
	}
	uc.Log.Info("user access updated",
		zap.String("user_id", id.String()),
		zap.String("by", actor.String()),
		zap.String("role", u.Role),
		zap.Bool("is_active", u.IsActive))
	return helper.JsonUpdated(c, "User updated", dto.ToUserResponse(*u))
}

// POST /api/users/:id/reset-password
func (uc *UserController) ResetPassword(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	hash, err := authService.HashPassword(req.NewPassword)
	if err != nil {
		return uc.internal(c, "hash password failed", err)
	}
	if err := authRepo.UpdateUserPassword(c.UserContext(), uc.DB, id, hash); err != nil {
		if authRepo.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return uc.internal(c, "reset password failed", err)
	}
	uc.Log.Info("password reset by admin", zap.String("user_id", id.String()))
	return helper.JsonUpdated(c, "Password reset", nil)
}
