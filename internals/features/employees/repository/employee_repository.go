// internals/features/employees/repository/employee_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"collegeaccounts_backend/internals/features/employees/model"
	helper "collegeaccounts_backend/internals/helpers"
)

// ListFilter: semua baris aktif satu kategori; search dicocokkan ke
// name/designation/id_number/nid_number/e_tin (case-insensitive).
type ListFilter struct {
	Category         string
	Search           string
	DesignationOrder []string
	Params           helper.Params
}

var searchColumns = []model.Field{
	model.FieldName,
	model.FieldDesignation,
	model.FieldIDNumber,
	model.FieldNIDNumber,
	model.FieldETIN,
}

type CategoryCount struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

/* ====================== WRITE ====================== */

func Create(ctx context.Context, db *gorm.DB, m *model.Employee) error {
	return db.WithContext(ctx).Create(m).Error
}

// Replace mengganti semua field baris aktif (id + kategori harus cocok).
func Replace(ctx context.Context, db *gorm.DB, m *model.Employee) error {
	res := db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("employee_id = ? AND employee_category = ?", m.EmployeeID, m.EmployeeCategory).
		Updates(m.UpdateColumns())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete menandai deleted_at sekaligus mencatat siapa yang menghapus.
func SoftDelete(ctx context.Context, db *gorm.DB, category string, id uuid.UUID, actor *uuid.UUID) error {
	res := db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("employee_id = ? AND employee_category = ?", id, category).
		Updates(map[string]any{
			"employee_deleted_at": time.Now(),
			"employee_updated_by": actor,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

/* ====================== READ ====================== */

func FindActive(ctx context.Context, db *gorm.DB, category string, id uuid.UUID) (*model.Employee, error) {
	var m model.Employee
	if err := db.WithContext(ctx).
		Preload("CreatedByUser").
		Preload("UpdatedByUser").
		Where("employee_id = ? AND employee_category = ?", id, category).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ExistsActive: ada baris aktif lain di kategori ini dengan nilai field yang sama?
// excludeID = uuid.Nil saat create.
func ExistsActive(ctx context.Context, db *gorm.DB, category string, field model.Field, value string, excludeID uuid.UUID) (bool, error) {
	col := field.Column()
	if col == "" {
		return false, fmt.Errorf("unknown employee field %q", field)
	}
	q := db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("employee_category = ?", category).
		Where(col+" = ?", value)
	if excludeID != uuid.Nil {
		q = q.Where("employee_id <> ?", excludeID)
	}
	var n int64
	if err := q.Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// designationOrder: CASE employee_designation WHEN ? THEN 0 ... ELSE n END
func designationOrder(order []string) clause.Expr {
	var sb strings.Builder
	vars := make([]any, 0, len(order))
	sb.WriteString("CASE employee_designation")
	for i, d := range order {
		fmt.Fprintf(&sb, " WHEN ? THEN %d", i)
		vars = append(vars, d)
	}
	fmt.Fprintf(&sb, " ELSE %d END", len(order))
	return clause.Expr{SQL: sb.String(), Vars: vars, WithoutParentheses: true}
}

// List: urut jabatan (DesignationOrder) lalu waktu dibuat (lama → baru).
func List(ctx context.Context, db *gorm.DB, f ListFilter) ([]model.Employee, int64, error) {
	base := db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("employee_category = ?", f.Category)

	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		conds := make([]string, 0, len(searchColumns))
		args := make([]any, 0, len(searchColumns))
		for _, fld := range searchColumns {
			conds = append(conds, "LOWER(COALESCE("+fld.Column()+", '')) LIKE ?")
			args = append(args, like)
		}
		base = base.Where("("+strings.Join(conds, " OR ")+")", args...)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base.Session(&gorm.Session{}).
		Preload("CreatedByUser").
		Preload("UpdatedByUser")
	if len(f.DesignationOrder) > 0 {
		q = q.Order(designationOrder(f.DesignationOrder))
	}
	q = q.Order("employee_created_at ASC").Order("employee_id ASC")
	if f.Params.PerPage > 0 {
		q = q.Limit(f.Params.Limit()).Offset(f.Params.Offset())
	}

	var rows []model.Employee
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

/* ====================== STATS (dashboard) ====================== */

func CountActive(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.Employee{}).Count(&n).Error
	return n, err
}

func CountByCategory(ctx context.Context, db *gorm.DB) ([]CategoryCount, error) {
	var out []CategoryCount
	err := db.WithContext(ctx).
		Model(&model.Employee{}).
		Select("employee_category AS category, COUNT(*) AS total").
		Group("employee_category").
		Scan(&out).Error
	return out, err
}

func CountCreatedSince(ctx context.Context, db *gorm.DB, since time.Time) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("employee_created_at >= ?", since).
		Count(&n).Error
	return n, err
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
