// internals/features/employees/service/employee_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	database "collegeaccounts_backend/internals/databases"
	"collegeaccounts_backend/internals/features/employees/model"
	"collegeaccounts_backend/internals/features/employees/repository"
	helper "collegeaccounts_backend/internals/helpers"
	"collegeaccounts_backend/internals/helpers/cache"
	"collegeaccounts_backend/internals/helpers/domainerr"
)

// Input: nilai field mentah dari request, key = nama field.
type Input map[model.Field]string

type EmployeeService struct {
	DB    *gorm.DB
	Log   *zap.Logger
	Cache cache.Store
}

func NewEmployeeService(db *gorm.DB, log *zap.Logger, store cache.Store) *EmployeeService {
	if store == nil {
		store = cache.Nop{}
	}
	return &EmployeeService{DB: db, Log: log.Named("employees"), Cache: store}
}

func (s *EmployeeService) Categories() []model.CategoryConfig {
	return model.Categories()
}

// Config: kategori tidak dikenal → InvalidCategory.
func (s *EmployeeService) Config(category string) (model.CategoryConfig, error) {
	cfg, ok := model.LookupCategory(category)
	if !ok {
		return model.CategoryConfig{}, domainerr.Newf(domainerr.InvalidCategory, "category", "invalid employee category %q", category)
	}
	return cfg, nil
}

// validateRequired: semua field wajib yang kosong dilaporkan sekaligus (pakai label).
func validateRequired(cfg model.CategoryConfig, in Input) error {
	var labels []string
	var first model.Field
	for _, f := range cfg.Fields {
		if !f.Required || strings.TrimSpace(in[f.Name]) != "" {
			continue
		}
		if first == "" {
			first = f.Name
		}
		labels = append(labels, f.Label)
	}
	if len(labels) == 0 {
		return nil
	}
	return domainerr.New(domainerr.MissingRequiredField, string(first), "missing required fields: "+strings.Join(labels, ", "))
}

// build: hanya field milik kategori yang disalin; sisanya NULL.
func build(cfg model.CategoryConfig, in Input) *model.Employee {
	m := &model.Employee{EmployeeCategory: string(cfg.Key)}
	for _, f := range cfg.Fields {
		m.SetValue(f.Name, in[f.Name])
	}
	return m
}

func (s *EmployeeService) checkUnique(ctx context.Context, cfg model.CategoryConfig, m *model.Employee, excludeID uuid.UUID) error {
	for _, f := range cfg.Fields {
		if !f.Unique {
			continue
		}
		v := m.Value(f.Name)
		if v == "" {
			continue
		}
		exists, err := repository.ExistsActive(ctx, s.DB, string(cfg.Key), f.Name, v, excludeID)
		if err != nil {
			return fmt.Errorf("check %s: %w", f.Name, err)
		}
		if exists {
			return duplicate(cfg, f.Name)
		}
	}
	return nil
}

func duplicate(cfg model.CategoryConfig, f model.Field) error {
	label := string(f)
	if d, ok := cfg.Field(f); ok {
		label = d.Label
	}
	return domainerr.Newf(domainerr.DuplicateUniqueField, string(f), "%s already exists for this category", label)
}

// fromUniqueViolation: balapan dua request bisa lolos checkUnique; index unik yang memutuskan.
func fromUniqueViolation(cfg model.CategoryConfig, err error) error {
	f, _ := model.UniqueIndexField(database.ConstraintName(err))
	if f == "" {
		return domainerr.New(domainerr.DuplicateUniqueField, "", "a unique field already exists for this category")
	}
	return duplicate(cfg, f)
}

func (s *EmployeeService) Create(ctx context.Context, actor uuid.UUID, category string, in Input) (*model.Employee, error) {
	cfg, err := s.Config(category)
	if err != nil {
		return nil, err
	}
	if err := validateRequired(cfg, in); err != nil {
		return nil, err
	}

	m := build(cfg, in)
	m.EmployeeCreatedBy = actorPtr(actor)
	if err := s.checkUnique(ctx, cfg, m, uuid.Nil); err != nil {
		return nil, err
	}
	if err := repository.Create(ctx, s.DB, m); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fromUniqueViolation(cfg, err)
		}
		return nil, fmt.Errorf("create employee: %w", err)
	}
	s.invalidate()

	s.Log.Info("employee created",
		zap.String("id", m.EmployeeID.String()),
		zap.String("category", category),
		zap.Stringer("actor", actor),
	)
	return s.Get(ctx, category, m.EmployeeID)
}

// Update mengganti semua field kategori (field opsional yang kosong jadi NULL).
func (s *EmployeeService) Update(ctx context.Context, actor uuid.UUID, category string, id uuid.UUID, in Input) (*model.Employee, error) {
	cfg, err := s.Config(category)
	if err != nil {
		return nil, err
	}
	if err := validateRequired(cfg, in); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, category, id); err != nil {
		return nil, err
	}

	m := build(cfg, in)
	m.EmployeeID = id
	m.EmployeeUpdatedBy = actorPtr(actor)
	if err := s.checkUnique(ctx, cfg, m, id); err != nil {
		return nil, err
	}
	if err := repository.Replace(ctx, s.DB, m); err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound()
		}
		if database.IsUniqueViolation(err) {
			return nil, fromUniqueViolation(cfg, err)
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}
	s.invalidate()

	s.Log.Info("employee updated",
		zap.String("id", id.String()),
		zap.String("category", category),
		zap.Stringer("actor", actor),
	)
	return s.Get(ctx, category, id)
}

func (s *EmployeeService) Get(ctx context.Context, category string, id uuid.UUID) (*model.Employee, error) {
	if _, err := s.Config(category); err != nil {
		return nil, err
	}
	m, err := repository.FindActive(ctx, s.DB, category, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return m, nil
}

func (s *EmployeeService) List(ctx context.Context, category, search string, p helper.Params) ([]model.Employee, int64, error) {
	cfg, err := s.Config(category)
	if err != nil {
		return nil, 0, err
	}
	return repository.List(ctx, s.DB, repository.ListFilter{
		Category:         category,
		Search:           search,
		DesignationOrder: cfg.DesignationOrder,
		Params:           p,
	})
}

func (s *EmployeeService) Delete(ctx context.Context, actor uuid.UUID, category string, id uuid.UUID) error {
	if _, err := s.Config(category); err != nil {
		return err
	}
	if err := repository.SoftDelete(ctx, s.DB, category, id, actorPtr(actor)); err != nil {
		if repository.IsNotFound(err) {
			return notFound()
		}
		return fmt.Errorf("delete employee: %w", err)
	}
	s.invalidate()
	s.Log.Info("employee deleted", zap.String("id", id.String()), zap.String("category", category), zap.Stringer("actor", actor))
	return nil
}

func (s *EmployeeService) invalidate() {
	if err := s.Cache.Delete(cache.KeyDashboardSummary); err != nil {
		s.Log.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func actorPtr(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func notFound() error {
	return domainerr.New(domainerr.NotFound, "id", "employee not found")
}
