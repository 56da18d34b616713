package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CategoryTotal struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Total    int64  `json:"total"`
}

type EmployeeSummary struct {
	Total         int64           `json:"total"`
	NewLast30Days int64           `json:"new_last_30_days"`
	ByCategory    []CategoryTotal `json:"by_category"`
}

type ExamSummary struct {
	TotalEntries           int64           `json:"total_entries"`
	TotalStudents          int64           `json:"total_students"`
	TotalIncome            decimal.Decimal `json:"total_income"`
	TotalExpenses          decimal.Decimal `json:"total_expenses"`
	TotalDistributableFund decimal.Decimal `json:"total_distributable_fund"`
}

// Summary adalah payload GET /api/dashboard/summary (juga bentuk yang di-cache).
type Summary struct {
	Employees   EmployeeSummary `json:"employees"`
	Exams       ExamSummary     `json:"exams"`
	GeneratedAt time.Time       `json:"generated_at"`
}
