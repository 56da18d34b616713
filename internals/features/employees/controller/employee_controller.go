// file: internals/features/employees/controller/employee_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"collegeaccounts_backend/internals/features/employees/dto"
	"collegeaccounts_backend/internals/features/employees/service"
	helper "collegeaccounts_backend/internals/helpers"
	"collegeaccounts_backend/internals/helpers/domainerr"
)

type EmployeeController struct {
	Svc *service.EmployeeService
	Log *zap.Logger
}

func NewEmployeeController(svc *service.EmployeeService) *EmployeeController {
	return &EmployeeController{Svc: svc, Log: svc.Log}
}

func (h *EmployeeController) fail(c *fiber.Ctx, err error) error {
	if _, ok := domainerr.As(err); ok {
		return helper.JsonDomainError(c, err)
	}
	h.Log.Error("employee request failed",
		zap.String("path", c.Path()),
		zap.Any("reqid", c.Locals("reqid")),
		zap.Error(err),
	)
	return helper.JsonError(c, fiber.StatusInternalServerError, "")
}

func category(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Params("category"))
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params("id")))
}

// GET /api/employees/categories
func (h *EmployeeController) Categories(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", dto.BuildCategories(h.Svc.Categories()))
}

// GET /api/employees/:category?search=
func (h *EmployeeController) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	if err := helper.Validate.Struct(q); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return helper.JsonValidationError(c, helper.ValidationErrors(err))
		}
		return err
	}

	p := helper.ParseFiber(c, "designation", "asc", helper.AdminOpts)
	rows, total, err := h.Svc.List(c.UserContext(), category(c), q.Search, p)
	if err != nil {
		return h.fail(c, err)
	}
	return helper.JsonList(c, "ok", dto.ToEmployeeResponses(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/employees/:category/:id
func (h *EmployeeController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	m, err := h.Svc.Get(c.UserContext(), category(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToEmployeeResponse(*m))
}

// POST /api/employees/:category
func (h *EmployeeController) Create(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	m, err := h.Svc.Create(c.UserContext(), actor, category(c), req.ToInput())
	if err != nil {
		return h.fail(c, err)
	}
	return helper.JsonCreated(c, "employee created", dto.ToEmployeeResponse(*m))
}

// PUT /api/employees/:category/:id
func (h *EmployeeController) Update(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	m, err := h.Svc.Update(c.UserContext(), actor, category(c), id, req.ToInput())
	if err != nil {
		return h.fail(c, err)
	}
	return helper.JsonUpdated(c, "employee updated", dto.ToEmployeeResponse(*m))
}

// DELETE /api/employees/:category/:id (soft delete)
func (h *EmployeeController) Delete(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Svc.Delete(c.UserContext(), actor, category(c), id); err != nil {
		return h.fail(c, err)
	}
	return helper.JsonDeleted(c, "employee deleted", fiber.Map{"id": id})
}
