// file: internals/features/finance/exam_fees/controller/exam_fee_controller.go
package controller

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"collegeaccounts_backend/internals/features/finance/exam_fees/dto"
	"collegeaccounts_backend/internals/features/finance/exam_fees/repository"
	"collegeaccounts_backend/internals/features/finance/exam_fees/service"
	helper "collegeaccounts_backend/internals/helpers"
	"collegeaccounts_backend/internals/helpers/domainerr"
)

type ExamFeeController struct {
	Svc *service.ExamFeeService
	Log *zap.Logger
}

func NewExamFeeController(svc *service.ExamFeeService) *ExamFeeController {
	return &ExamFeeController{Svc: svc, Log: svc.Log}
}

func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(param)))
}

// fail: error domain → 4xx sesuai kind, sisanya dicatat lalu 500.
func (h *ExamFeeController) fail(c *fiber.Ctx, err error) error {
	if _, ok := domainerr.As(err); ok {
		return helper.JsonDomainError(c, err)
	}
	h.Log.Error("exam fee request failed",
		zap.String("path", c.Path()),
		zap.Any("reqid", c.Locals("reqid")),
		zap.Error(err),
	)
	return helper.JsonError(c, fiber.StatusInternalServerError, "")
}

func (h *ExamFeeController) listFilter(c *fiber.Ctx, opts helper.Options) (repository.ListFilter, dto.ListQuery, error) {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return repository.ListFilter{}, q, fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}
	if err := helper.Validate.Struct(q); err != nil {
		return repository.ListFilter{}, q, err
	}
	return repository.ListFilter{
		Search:   q.Search,
		Category: q.CategoryFilter(),
		Year:     q.YearFilter(),
		Params:   helper.ParseFiber(c, "created_at", "desc", opts),
	}, q, nil
}

func badQuery(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	return err
}

// GET /api/exams
func (h *ExamFeeController) List(c *fiber.Ctx) error {
	f, _, err := h.listFilter(c, helper.DefaultOpts)
	if err != nil {
		return badQuery(c, err)
	}
	rows, total, err := h.Svc.List(c.UserContext(), f)
	if err != nil {
		return h.fail(c, err)
	}
	return helper.JsonList(c, "ok", dto.ToExamFeeResponses(rows),
		helper.BuildPaginationFromPage(total, f.Params.Page, f.Params.PerPage))
}

// GET /api/exams/:id
func (h *ExamFeeController) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	m, err := h.Svc.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToExamFeeResponse(*m))
}

// POST /api/exams
func (h *ExamFeeController) Create(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.ExamFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	m, err := h.Svc.Create(c.UserContext(), actor, req.ToInput())
	if err != nil {
		return h.fail(c, err)
	}
	return helper.JsonCreated(c, "exam fee created", dto.ToExamFeeResponse(*m))
}

// PUT /api/exams/:id (replace penuh, semua field wajib seperti create)
func (h *ExamFeeController) Update(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := parseUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var req dto.ExamFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	m, err := h.Svc.Update(c.UserContext(), actor, id, req.ToInput())
	if err != nil {
		return h.fail(c, err)
	}
	return helper.JsonUpdated(c, "exam fee updated", dto.ToExamFeeResponse(*m))
}

// DELETE /api/exams/:id (soft delete)
func (h *ExamFeeController) Delete(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := parseUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Svc.Delete(c.UserContext(), actor, id); err != nil {
		return h.fail(c, err)
	}
	return helper.JsonDeleted(c, "exam fee deleted", fiber.Map{"id": id})
}

// POST /api/exams/preview
func (h *ExamFeeController) Preview(c *fiber.Ctx) error {
	var req dto.ExamFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	rec, err := h.Svc.Preview(req.ToInput())
	if err != nil {
		return h.fail(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromRecord(rec))
}

// GET /api/exams/catalog
func (h *ExamFeeController) Catalog(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", dto.BuildCatalog())
}

// GET /api/exams/export?format=xlsx|csv (+ filter yang sama dengan list)
func (h *ExamFeeController) Export(c *fiber.Ctx) error {
	f, q, err := h.listFilter(c, helper.ExportOpts)
	if err != nil {
		return badQuery(c, err)
	}
	format := q.Format
	if format == "" {
		format = service.FormatXLSX
	}

	var buf bytes.Buffer
	if err := h.Svc.Export(c.UserContext(), f, format, &buf); err != nil {
		return h.fail(c, err)
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if format == service.FormatCSV {
		contentType = "text/csv; charset=utf-8"
	}
	fileName := fmt.Sprintf("exam-records-%s.%s", time.Now().Format("2006-01-02"), format)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Send(buf.Bytes())
}
