package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"collegeaccounts_backend/internals/features/users/user/model"
	helper "collegeaccounts_backend/internals/helpers"
)

type ListFilter struct {
	Search string
	Role   string
	Active *bool
	Params helper.Params
}

var AllowedSort = map[string]string{
	"name":       "name",
	"email":      "email",
	"role":       "role",
	"created_at": "created_at",
}

func FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func List(ctx context.Context, db *gorm.DB, f ListFilter) ([]model.UserModel, int64, error) {
	base := db.WithContext(ctx).Model(&model.UserModel{})
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		base = base.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", like, like)
	}
	if f.Role != "" {
		base = base.Where("role = ?", f.Role)
	}
	if f.Active != nil {
		base = base.Where("is_active = ?", *f.Active)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause, err := f.Params.SafeOrderClause(AllowedSort, "name")
	if err != nil {
		return nil, 0, err
	}

	var rows []model.UserModel
	q := base.Session(&gorm.Session{}).
		Order(strings.TrimPrefix(orderClause, "ORDER BY ")).
		Order("id ASC")
	if f.Params.PerPage > 0 {
		q = q.Limit(f.Params.Limit()).Offset(f.Params.Offset())
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateAccess mengubah role dan/atau status aktif. Nol baris → gorm.ErrRecordNotFound.
func UpdateAccess(ctx context.Context, db *gorm.DB, id uuid.UUID, role *string, active *bool) error {
	cols := map[string]any{}
	if role != nil {
		cols["role"] = *role
	}
	if active != nil {
		cols["is_active"] = *active
	}
	if len(cols) == 0 {
		return nil
	}
	res := db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
