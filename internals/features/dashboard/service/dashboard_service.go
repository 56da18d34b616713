package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"collegeaccounts_backend/internals/features/dashboard/dto"
	employeeModel "collegeaccounts_backend/internals/features/employees/model"
	employeeRepo "collegeaccounts_backend/internals/features/employees/repository"
	examRepo "collegeaccounts_backend/internals/features/finance/exam_fees/repository"
	"collegeaccounts_backend/internals/helpers/cache"
)

const recentWindow = 30 * 24 * time.Hour

type DashboardService struct {
	DB    *gorm.DB
	Log   *zap.Logger
	Cache cache.Store
	TTL   time.Duration

	now func() time.Time
}

func NewDashboardService(db *gorm.DB, log *zap.Logger, store cache.Store, ttl time.Duration) *DashboardService {
	if store == nil {
		store = cache.Nop{}
	}
	return &DashboardService{DB: db, Log: log, Cache: store, TTL: ttl, now: time.Now}
}

// Summary membaca dari cache dulu; hit=false berarti dihitung ulang dari DB.
// Cache yang rusak/tidak terjangkau hanya di-log, tidak menggagalkan request.
func (s *DashboardService) Summary(ctx context.Context) (out dto.Summary, hit bool, err error) {
	found, cerr := cache.GetJSON(s.Cache, cache.KeyDashboardSummary, &out)
	if cerr != nil {
		s.Log.Warn("dashboard cache read failed", zap.Error(cerr))
	}
	if found {
		return out, true, nil
	}

	out, err = s.compute(ctx)
	if err != nil {
		return dto.Summary{}, false, err
	}
	if cerr := cache.SetJSON(s.Cache, cache.KeyDashboardSummary, out, s.TTL); cerr != nil {
		s.Log.Warn("dashboard cache write failed", zap.Error(cerr))
	}
	return out, false, nil
}

func (s *DashboardService) compute(ctx context.Context) (dto.Summary, error) {
	now := s.now()
	out := dto.Summary{GeneratedAt: now.UTC()}

	total, err := employeeRepo.CountActive(ctx, s.DB)
	if err != nil {
		return out, fmt.Errorf("count employees: %w", err)
	}
	recent, err := employeeRepo.CountCreatedSince(ctx, s.DB, now.Add(-recentWindow))
	if err != nil {
		return out, fmt.Errorf("count recent employees: %w", err)
	}
	counts, err := employeeRepo.CountByCategory(ctx, s.DB)
	if err != nil {
		return out, fmt.Errorf("count employees by category: %w", err)
	}
	exams, err := examRepo.GetSummary(ctx, s.DB)
	if err != nil {
		return out, fmt.Errorf("exam summary: %w", err)
	}

	out.Employees = dto.EmployeeSummary{
		Total:         total,
		NewLast30Days: recent,
		ByCategory:    byCategory(counts),
	}
	out.Exams = dto.ExamSummary{
		TotalEntries:           exams.TotalEntries,
		TotalStudents:          exams.TotalStudents,
		TotalIncome:            exams.TotalIncome,
		TotalExpenses:          exams.TotalExpenses,
		TotalDistributableFund: exams.TotalDistributableFund,
	}
	return out, nil
}

// byCategory: semua kategori muncul (urutan menu), yang kosong bernilai 0.
func byCategory(counts []employeeRepo.CategoryCount) []dto.CategoryTotal {
	totals := make(map[string]int64, len(counts))
	for _, c := range counts {
		totals[c.Category] = c.Total
	}
	cats := employeeModel.Categories()
	out := make([]dto.CategoryTotal, 0, len(cats))
	for _, cfg := range cats {
		out = append(out, dto.CategoryTotal{
			Category: string(cfg.Key),
			Label:    cfg.Label,
			Total:    totals[string(cfg.Key)],
		})
	}
	return out
}
