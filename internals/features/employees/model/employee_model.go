// file: internals/features/employees/model/employee_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "collegeaccounts_backend/internals/features/users/user/model"
)

// --- MODEL employees ---------------------------------------------------------
// Satu tabel untuk semua kategori; field yang tidak dipakai kategori tetap NULL.
// Unik per kategori hanya di antara baris aktif (partial unique index).
type Employee struct {
	EmployeeID       uuid.UUID `json:"employee_id" gorm:"column:employee_id;type:uuid;primaryKey"`
	EmployeeCategory string    `json:"employee_category" gorm:"column:employee_category;type:varchar(60);not null;index:idx_employees_category_name,priority:1;uniqueIndex:uq_employees_category_id_number,priority:1,where:employee_deleted_at IS NULL;uniqueIndex:uq_employees_category_nid,priority:1,where:employee_deleted_at IS NULL;uniqueIndex:uq_employees_category_e_tin,priority:1,where:employee_deleted_at IS NULL"`

	EmployeeName        string  `json:"employee_name" gorm:"column:employee_name;type:varchar(160);not null;index:idx_employees_category_name,priority:2"`
	EmployeeDesignation string  `json:"employee_designation" gorm:"column:employee_designation;type:varchar(120);not null"`
	EmployeeDepartment  *string `json:"employee_department,omitempty" gorm:"column:employee_department;type:varchar(120)"`
	EmployeeIDNumber    *string `json:"employee_id_number,omitempty" gorm:"column:employee_id_number;type:varchar(60);uniqueIndex:uq_employees_category_id_number,priority:2,where:employee_deleted_at IS NULL"`
	EmployeeBCSBatch    *string `json:"employee_bcs_batch,omitempty" gorm:"column:employee_bcs_batch;type:varchar(30)"`
	EmployeeNIDNumber   string  `json:"employee_nid_number" gorm:"column:employee_nid_number;type:varchar(40);not null;uniqueIndex:uq_employees_category_nid,priority:2,where:employee_deleted_at IS NULL"`
	EmployeeETIN        string  `json:"employee_e_tin" gorm:"column:employee_e_tin;type:varchar(40);not null;uniqueIndex:uq_employees_category_e_tin,priority:2,where:employee_deleted_at IS NULL"`

	// Audit
	EmployeeCreatedBy *uuid.UUID           `json:"employee_created_by,omitempty" gorm:"column:employee_created_by;type:uuid"`
	EmployeeUpdatedBy *uuid.UUID           `json:"employee_updated_by,omitempty" gorm:"column:employee_updated_by;type:uuid"`
	CreatedByUser     *userModel.UserModel `json:"-" gorm:"foreignKey:EmployeeCreatedBy;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	UpdatedByUser     *userModel.UserModel `json:"-" gorm:"foreignKey:EmployeeUpdatedBy;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	EmployeeCreatedAt time.Time      `json:"employee_created_at" gorm:"column:employee_created_at;not null;autoCreateTime;index"`
	EmployeeUpdatedAt time.Time      `json:"employee_updated_at" gorm:"column:employee_updated_at;not null;autoUpdateTime"`
	EmployeeDeletedAt gorm.DeletedAt `json:"employee_deleted_at,omitempty" gorm:"column:employee_deleted_at;index"`
}

func (Employee) TableName() string { return "employees" }

func (m *Employee) BeforeCreate(tx *gorm.DB) error {
	if m.EmployeeID == uuid.Nil {
		m.EmployeeID = uuid.New()
	}
	return nil
}

// UniqueIndexField memetakan nama index unik ke field-nya (untuk error dari DB).
func UniqueIndexField(constraint string) (Field, bool) {
	switch constraint {
	case "uq_employees_category_id_number":
		return FieldIDNumber, true
	case "uq_employees_category_nid":
		return FieldNIDNumber, true
	case "uq_employees_category_e_tin":
		return FieldETIN, true
	}
	return "", false
}

// Value: nilai field sebagai string ("" kalau NULL).
func (m *Employee) Value(f Field) string {
	switch f {
	case FieldName:
		return m.EmployeeName
	case FieldDesignation:
		return m.EmployeeDesignation
	case FieldDepartment:
		return deref(m.EmployeeDepartment)
	case FieldIDNumber:
		return deref(m.EmployeeIDNumber)
	case FieldBCSBatch:
		return deref(m.EmployeeBCSBatch)
	case FieldNIDNumber:
		return m.EmployeeNIDNumber
	case FieldETIN:
		return m.EmployeeETIN
	}
	return ""
}

// SetValue: string kosong pada field opsional disimpan sebagai NULL.
func (m *Employee) SetValue(f Field, v string) {
	v = strings.TrimSpace(v)
	switch f {
	case FieldName:
		m.EmployeeName = v
	case FieldDesignation:
		m.EmployeeDesignation = v
	case FieldDepartment:
		m.EmployeeDepartment = ptr(v)
	case FieldIDNumber:
		m.EmployeeIDNumber = ptr(v)
	case FieldBCSBatch:
		m.EmployeeBCSBatch = ptr(v)
	case FieldNIDNumber:
		m.EmployeeNIDNumber = v
	case FieldETIN:
		m.EmployeeETIN = v
	}
}

// UpdateColumns: semua field + updated_by (PUT mengganti penuh).
func (m *Employee) UpdateColumns() map[string]any {
	out := map[string]any{"employee_updated_by": m.EmployeeUpdatedBy}
	out[FieldName.Column()] = m.EmployeeName
	out[FieldDesignation.Column()] = m.EmployeeDesignation
	out[FieldDepartment.Column()] = m.EmployeeDepartment
	out[FieldIDNumber.Column()] = m.EmployeeIDNumber
	out[FieldBCSBatch.Column()] = m.EmployeeBCSBatch
	out[FieldNIDNumber.Column()] = m.EmployeeNIDNumber
	out[FieldETIN.Column()] = m.EmployeeETIN
	return out
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
