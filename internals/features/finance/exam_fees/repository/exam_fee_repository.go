// internals/features/finance/exam_fees/repository/exam_fee_repository.go
package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"collegeaccounts_backend/internals/features/finance/exam_fees/model"
	helper "collegeaccounts_backend/internals/helpers"
)

// ListFilter: search cocok ke nama ujian (case-insensitive) atau tahun persis.
type ListFilter struct {
	Search   string
	Category string
	Year     int
	Params   helper.Params
}

// AllowedSort: whitelist sort_by → kolom.
var AllowedSort = map[string]string{
	"created_at":     "exam_fee_created_at",
	"year":           "exam_fee_year",
	"exam_name":      "exam_fee_name",
	"exam_category":  "exam_fee_category",
	"total_students": "exam_fee_total_students",
	"total_income":   "exam_fee_total_income",
	"total_expenses": "exam_fee_total_expenses",
}

type Summary struct {
	TotalEntries           int64           `json:"total_entries"`
	TotalStudents          int64           `json:"total_students"`
	TotalIncome            decimal.Decimal `json:"total_income"`
	TotalExpenses          decimal.Decimal `json:"total_expenses"`
	TotalDistributableFund decimal.Decimal `json:"total_distributable_fund"`
}

/* ====================== WRITE ====================== */

func Create(ctx context.Context, db *gorm.DB, m *model.ExamFee) error {
	return db.WithContext(ctx).Create(m).Error
}

// Replace mengganti seluruh kolom input + turunan untuk baris aktif.
// Nol baris terpengaruh = tidak ada / sudah dihapus → gorm.ErrRecordNotFound.
func Replace(ctx context.Context, db *gorm.DB, m *model.ExamFee) error {
	res := db.WithContext(ctx).
		Model(m).
		Where("exam_fee_id = ?", m.ExamFeeID).
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
// UpdateColumns: hook BeforeSave tidak boleh jalan di model kosong.
func SoftDelete(ctx context.Context, db *gorm.DB, id uuid.UUID, actor *uuid.UUID) error {
	res := db.WithContext(ctx).
		Model(&model.ExamFee{}).
		Where("exam_fee_id = ?", id).
		UpdateColumns(map[string]any{
			"exam_fee_deleted_at": time.Now(),
			"exam_fee_updated_by": actor,
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

func FindActiveByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ExamFee, error) {
	var m model.ExamFee
	if err := db.WithContext(ctx).
		Preload("CreatedByUser").
		Preload("UpdatedByUser").
		Where("exam_fee_id = ?", id).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func applyFilter(q *gorm.DB, f ListFilter) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		if y, err := strconv.Atoi(s); err == nil {
			q = q.Where("(LOWER(exam_fee_name) LIKE ? OR exam_fee_year = ?)", "%"+strings.ToLower(s)+"%", y)
		} else {
			q = q.Where("LOWER(exam_fee_name) LIKE ?", "%"+strings.ToLower(s)+"%")
		}
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		q = q.Where("exam_fee_category = ?", c)
	}
	if f.Year > 0 {
		q = q.Where("exam_fee_year = ?", f.Year)
	}
	return q
}

// List mengembalikan satu halaman baris aktif + total sebelum paging.
func List(ctx context.Context, db *gorm.DB, f ListFilter) ([]model.ExamFee, int64, error) {
	base := applyFilter(db.WithContext(ctx).Model(&model.ExamFee{}), f)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause, err := f.Params.SafeOrderClause(AllowedSort, "created_at")
	if err != nil {
		return nil, 0, err
	}
	orderExpr := strings.TrimPrefix(orderClause, "ORDER BY ")

	var rows []model.ExamFee
	q := base.Session(&gorm.Session{}).
		Preload("CreatedByUser").
		Preload("UpdatedByUser").
		Order(orderExpr).
		Order("exam_fee_id ASC")
	if f.Params.PerPage > 0 {
		q = q.Limit(f.Params.Limit()).Offset(f.Params.Offset())
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Summary: agregat baris aktif (dipakai dashboard).
func GetSummary(ctx context.Context, db *gorm.DB) (Summary, error) {
	var out Summary
	err := db.WithContext(ctx).
		Model(&model.ExamFee{}).
		Select(`COUNT(*) AS total_entries,
			COALESCE(SUM(exam_fee_total_students), 0) AS total_students,
			COALESCE(SUM(exam_fee_total_income), 0) AS total_income,
			COALESCE(SUM(exam_fee_total_expenses), 0) AS total_expenses,
			COALESCE(SUM(exam_fee_distributable_fund), 0) AS total_distributable_fund`).
		Scan(&out).Error
	return out, err
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
