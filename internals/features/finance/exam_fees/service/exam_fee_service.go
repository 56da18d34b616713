// internals/features/finance/exam_fees/service/exam_fee_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"collegeaccounts_backend/internals/features/finance/exam_fees/calculator"
	"collegeaccounts_backend/internals/features/finance/exam_fees/model"
	"collegeaccounts_backend/internals/features/finance/exam_fees/repository"
	"collegeaccounts_backend/internals/helpers/cache"
	"collegeaccounts_backend/internals/helpers/domainerr"
)

type ExamFeeService struct {
	DB    *gorm.DB
	Log   *zap.Logger
	Cache cache.Store
}

func NewExamFeeService(db *gorm.DB, log *zap.Logger, store cache.Store) *ExamFeeService {
	if store == nil {
		store = cache.Nop{}
	}
	return &ExamFeeService{DB: db, Log: log.Named("exam_fees"), Cache: store}
}

// Preview menghitung tanpa menyimpan (dipakai form sebelum submit).
func (s *ExamFeeService) Preview(in calculator.ExamFeeInput) (calculator.ExamFeeRecord, error) {
	return calculator.Evaluate(in)
}

func (s *ExamFeeService) Create(ctx context.Context, actor uuid.UUID, in calculator.ExamFeeInput) (*model.ExamFee, error) {
	rec, err := calculator.Evaluate(in)
	if err != nil {
		return nil, err
	}

	m := &model.ExamFee{}
	m.ApplyRecord(rec)
	m.ExamFeeCreatedBy = actorPtr(actor)
	m.ExamFeeUpdatedBy = actorPtr(actor)

	if err := repository.Create(ctx, s.DB, m); err != nil {
		return nil, fmt.Errorf("create exam fee: %w", err)
	}
	s.invalidate()

	s.Log.Info("exam fee created",
		zap.String("id", m.ExamFeeID.String()),
		zap.Int("year", m.ExamFeeYear),
		zap.String("category", m.ExamFeeCategory),
		zap.String("total_income", m.ExamFeeTotalIncome.StringFixed(2)),
		zap.Stringer("actor", actor),
	)
	return s.Get(ctx, m.ExamFeeID)
}

// Update menghitung ulang seluruh record dari input baru, lalu replace atomik.
func (s *ExamFeeService) Update(ctx context.Context, actor uuid.UUID, id uuid.UUID, in calculator.ExamFeeInput) (*model.ExamFee, error) {
	rec, err := calculator.Evaluate(in)
	if err != nil {
		return nil, err
	}

	m := &model.ExamFee{ExamFeeID: id}
	m.ApplyRecord(rec)
	m.ExamFeeUpdatedBy = actorPtr(actor)

	if err := repository.Replace(ctx, s.DB, m); err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("update exam fee: %w", err)
	}
	s.invalidate()

	s.Log.Info("exam fee updated",
		zap.String("id", id.String()),
		zap.String("total_income", rec.TotalIncome.StringFixed(2)),
		zap.Stringer("actor", actor),
	)
	return s.Get(ctx, id)
}

func (s *ExamFeeService) Get(ctx context.Context, id uuid.UUID) (*model.ExamFee, error) {
	m, err := repository.FindActiveByID(ctx, s.DB, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("get exam fee: %w", err)
	}
	return m, nil
}

func (s *ExamFeeService) List(ctx context.Context, f repository.ListFilter) ([]model.ExamFee, int64, error) {
	if f.Category != "" && !calculator.ExamCategory(f.Category).Valid() {
		return nil, 0, domainerr.Newf(domainerr.InvalidFieldValue, "exam_category", "unknown exam category %q", f.Category)
	}
	return repository.List(ctx, s.DB, f)
}

func (s *ExamFeeService) Delete(ctx context.Context, actor uuid.UUID, id uuid.UUID) error {
	if err := repository.SoftDelete(ctx, s.DB, id, actorPtr(actor)); err != nil {
		if repository.IsNotFound(err) {
			return notFound()
		}
		return fmt.Errorf("delete exam fee: %w", err)
	}
	s.invalidate()
	s.Log.Info("exam fee deleted", zap.String("id", id.String()), zap.Stringer("actor", actor))
	return nil
}

func (s *ExamFeeService) invalidate() {
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
	return domainerr.New(domainerr.NotFound, "id", "exam fee not found")
}
