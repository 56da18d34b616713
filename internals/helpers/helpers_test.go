package helper

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collegeaccounts_backend/internals/helpers/domainerr"
)

func doJSON(t *testing.T, app *fiber.App, path string) (int, ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out ErrorResponse
	require.NoError(t, sonic.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestFromFiberError(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: FromFiberError})
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusUnauthorized, "not logged in") })
	app.Get("/domain", func(c *fiber.Ctx) error {
		return domainerr.New(domainerr.InsufficientStudents, "total_students", "at least one student is required")
	})
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("pq: secret detail") })

	status, body := doJSON(t, app, "/fiber")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body.ErrorCode)

	status, body = doJSON(t, app, "/domain")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "InsufficientStudents", body.ErrorCode)
	assert.Equal(t, "total_students", body.Field)

	status, body = doJSON(t, app, "/plain")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.NotContains(t, body.Message, "secret")
}

func TestGetUserIDFromToken(t *testing.T) {
	id := uuid.New()
	app := fiber.New(fiber.Config{ErrorHandler: FromFiberError})
	app.Get("/:mode", func(c *fiber.Ctx) error {
		switch c.Params("mode") {
		case "string":
			c.Locals("user_id", id.String())
		case "bad":
			c.Locals("user_id", "nope")
		}
		got, err := GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		return c.SendString(got.String())
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/string", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, id.String(), string(body))

	status, _ := doJSON(t, app, "/bad")
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, _ = doJSON(t, app, "/none")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestValidationErrors(t *testing.T) {
	type query struct {
		Year   int    `query:"year" validate:"omitempty,min=2000"`
		Search string `json:"search" validate:"max=3"`
	}
	errs := ValidationErrors(Validate.Struct(query{Year: 1990, Search: "toolong"}))
	assert.Equal(t, []string{"min=2000"}, errs["year"])
	assert.Equal(t, []string{"max=3"}, errs["search"])
}

func TestParseFiberAndMeta(t *testing.T) {
	app := fiber.New()
	var got Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParseFiber(c, "created_at", "desc", DefaultOpts)
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/?page=3&per_page=999&sort_by=year&order=ASC", nil))
	require.NoError(t, err)

	assert.Equal(t, 3, got.Page)
	assert.Equal(t, DefaultOpts.MaxPerPage, got.PerPage)
	assert.Equal(t, "asc", got.SortOrder)

	clause, err := got.SafeOrderClause(map[string]string{"year": "exam_fee_year"}, "year")
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY exam_fee_year ASC", clause)

	p := BuildPaginationFromPage(401, 3, 200)
	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}
