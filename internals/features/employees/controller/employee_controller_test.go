package controller_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"collegeaccounts_backend/internals/databases/databasetest"
	"collegeaccounts_backend/internals/features/employees/dto"
	"collegeaccounts_backend/internals/features/employees/route"
	userModel "collegeaccounts_backend/internals/features/users/user/model"
	helper "collegeaccounts_backend/internals/helpers"
	"collegeaccounts_backend/internals/helpers/cache"
)

type envelope struct {
	Success    bool              `json:"success"`
	ErrorCode  string            `json:"error_code"`
	Field      string            `json:"field"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Pagination helper.Pagination `json:"pagination"`
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	db := databasetest.Open(t)
	u := &userModel.UserModel{Name: "Office Admin", Email: "admin@example.com", Password: "hash", IsActive: true}
	require.NoError(t, db.Create(u).Error)

	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals("user_id", u.ID.String())
		return c.Next()
	})
	route.EmployeeRoutes(api, db, zap.NewNop(), cache.Nop{})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

const principal = `{
	"name": "Md. Abdul Karim",
	"designation": "Principal",
	"id_number": "ADM-001",
	"bcs_batch": "18th",
	"nid_number": "1975123456789",
	"e_tin": "123456789012"
}`

func TestEmployeeCRUD(t *testing.T) {
	app := newApp(t)

	status, env := call(t, app, "POST", "/api/employees/administration", principal)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var created dto.EmployeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "administration", created.Category)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, "Office Admin", created.CreatedBy.Name)
	path := "/api/employees/administration/" + created.ID.String()

	status, env = call(t, app, "GET", path, "")
	require.Equal(t, fiber.StatusOK, status)

	body := strings.Replace(principal, `"Principal"`, `"Vice Principal"`, 1)
	status, env = call(t, app, "PUT", path, body)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var updated dto.EmployeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Vice Principal", updated.Designation)
	require.NotNil(t, updated.UpdatedBy)

	status, env = call(t, app, "GET", "/api/employees/administration?search=adm-001", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, env.Pagination.Total)

	status, _ = call(t, app, "DELETE", path, "")
	require.Equal(t, fiber.StatusOK, status)
	status, env = call(t, app, "GET", path, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NotFound", env.ErrorCode)
}

func TestEmployeeRejections(t *testing.T) {
	app := newApp(t)

	status, env := call(t, app, "POST", "/api/employees/janitor", principal)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "InvalidCategory", env.ErrorCode)

	status, env = call(t, app, "POST", "/api/employees/administration", `{"name": "X"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "MissingRequiredField", env.ErrorCode)
	assert.Contains(t, env.Message, "Designation")

	status, _ = call(t, app, "POST", "/api/employees/administration", principal)
	require.Equal(t, fiber.StatusCreated, status)
	status, env = call(t, app, "POST", "/api/employees/administration",
		strings.Replace(principal, `"ADM-001"`, `"ADM-002"`, 1))
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "DuplicateUniqueField", env.ErrorCode)
	assert.Equal(t, "nid_number", env.Field)

	status, _ = call(t, app, "GET", "/api/employees/administration/not-a-uuid", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = call(t, app, "POST", "/api/employees/administration", `{bad json`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCategoriesEndpoint(t *testing.T) {
	app := newApp(t)

	status, env := call(t, app, "GET", "/api/employees/categories", "")
	require.Equal(t, fiber.StatusOK, status)
	var out dto.CategoriesResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Len(t, out.Categories, 10)
	assert.Equal(t, "administration", string(out.Categories[0].Key))
	assert.Contains(t, out.Departments, "Physics")
	assert.Contains(t, out.GovernmentDesignations, "Principal")
}
