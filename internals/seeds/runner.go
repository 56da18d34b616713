// Package seeds fills a fresh database with demo accounts, exam fee entries
// and employees from the JSON files under internals/seeds/data.
package seeds

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	employeeService "collegeaccounts_backend/internals/features/employees/service"
	examService "collegeaccounts_backend/internals/features/finance/exam_fees/service"
	authService "collegeaccounts_backend/internals/features/users/auth/service"
	"collegeaccounts_backend/internals/helpers/cache"
	"collegeaccounts_backend/internals/seeds/employees"
	"collegeaccounts_backend/internals/seeds/exam_fees"
	"collegeaccounts_backend/internals/seeds/users"
)

const DefaultDir = "internals/seeds/data"

type Result struct {
	Users     int
	ExamFees  int
	Employees int
}

// RunAllSeeds: users dulu (akun pertama jadi created_by data lain), lalu exam fees, lalu employees.
func RunAllSeeds(ctx context.Context, db *gorm.DB, log *zap.Logger, dir string, store cache.Store) (Result, error) {
	var res Result
	start := time.Now()

	auth := authService.NewAuthService(db, log, "", 0)
	accounts, err := users.SeedUsersFromJSON(ctx, auth, filepath.Join(dir, "users.json"))
	if err != nil {
		return res, fmt.Errorf("users: %w", err)
	}
	if len(accounts) == 0 {
		return res, errors.New("users.json must contain at least one account")
	}
	res.Users = len(accounts)
	actor := accounts[0].ID

	res.ExamFees, err = exam_fees.SeedExamFeesFromJSON(ctx, examService.NewExamFeeService(db, log, store), actor,
		filepath.Join(dir, "exam_fees.json"))
	if err != nil {
		return res, fmt.Errorf("exam fees: %w", err)
	}

	res.Employees, err = employees.SeedEmployeesFromJSON(ctx, employeeService.NewEmployeeService(db, log, store), actor,
		filepath.Join(dir, "employees.json"))
	if err != nil {
		return res, fmt.Errorf("employees: %w", err)
	}

	log.Info("✅ seeding done",
		zap.Int("users", res.Users),
		zap.Int("exam_fees", res.ExamFees),
		zap.Int("employees", res.Employees),
		zap.Duration("took", time.Since(start)))
	return res, nil
}
