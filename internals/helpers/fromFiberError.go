package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"collegeaccounts_backend/internals/helpers/domainerr"
)

// FromFiberError dipakai sebagai fiber.Config.ErrorHandler: *fiber.Error dan
// error domain dirender dengan shape yang sama seperti JsonError.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	if _, ok := domainerr.As(err); ok {
		return JsonDomainError(c, err)
	}
	return JsonError(c, fiber.StatusInternalServerError, "")
}
