// file: internals/features/employees/dto/employee_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"collegeaccounts_backend/internals/features/employees/model"
	"collegeaccounts_backend/internals/features/employees/service"
	userModel "collegeaccounts_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST
======================================================= */

// EmployeeRequest: field yang tidak dipakai kategori diabaikan oleh service.
type EmployeeRequest struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	IDNumber    string `json:"id_number"`
	BCSBatch    string `json:"bcs_batch"`
	NIDNumber   string `json:"nid_number"`
	ETIN        string `json:"e_tin"`
}

func (r EmployeeRequest) ToInput() service.Input {
	return service.Input{
		model.FieldName:        r.Name,
		model.FieldDesignation: r.Designation,
		model.FieldDepartment:  r.Department,
		model.FieldIDNumber:    r.IDNumber,
		model.FieldBCSBatch:    r.BCSBatch,
		model.FieldNIDNumber:   r.NIDNumber,
		model.FieldETIN:        r.ETIN,
	}
}

type ListQuery struct {
	Search string `query:"search" validate:"max=100"`
}

/* =======================================================
   RESPONSE
======================================================= */

type EmployeeResponse struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	Department  *string   `json:"department,omitempty"`
	IDNumber    *string   `json:"id_number,omitempty"`
	BCSBatch    *string   `json:"bcs_batch,omitempty"`
	NIDNumber   string    `json:"nid_number"`
	ETIN        string    `json:"e_tin"`

	CreatedBy *userModel.UserSnapshot `json:"created_by,omitempty"`
	UpdatedBy *userModel.UserSnapshot `json:"updated_by,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func ToEmployeeResponse(m model.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          m.EmployeeID,
		Category:    m.EmployeeCategory,
		Name:        m.EmployeeName,
		Designation: m.EmployeeDesignation,
		Department:  m.EmployeeDepartment,
		IDNumber:    m.EmployeeIDNumber,
		BCSBatch:    m.EmployeeBCSBatch,
		NIDNumber:   m.EmployeeNIDNumber,
		ETIN:        m.EmployeeETIN,
		CreatedBy:   m.CreatedByUser.Snapshot(),
		UpdatedBy:   m.UpdatedByUser.Snapshot(),
		CreatedAt:   m.EmployeeCreatedAt,
		UpdatedAt:   m.EmployeeUpdatedAt,
	}
}

func ToEmployeeResponses(rows []model.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, ToEmployeeResponse(m))
	}
	return out
}

// CategoriesResponse: konfigurasi form + daftar pilihan untuk frontend.
type CategoriesResponse struct {
	Categories             []model.CategoryConfig `json:"categories"`
	Departments            []string               `json:"departments"`
	GovernmentDesignations []string               `json:"government_designations"`
}

func BuildCategories(cfgs []model.CategoryConfig) CategoriesResponse {
	return CategoriesResponse{
		Categories:             cfgs,
		Departments:            model.Departments,
		GovernmentDesignations: model.GovernmentDesignations,
	}
}
