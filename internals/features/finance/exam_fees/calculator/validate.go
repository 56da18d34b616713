package calculator

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"collegeaccounts_backend/internals/helpers/domainerr"
)

const (
	MinYear = 2000
	MaxYear = 2050
)

var (
	// PercentTolerance bounds |sum of shares - 100|.
	PercentTolerance = decimal.RequireFromString("0.01")
	// RoundingTolerance covers four independent half-cent roundings.
	RoundingTolerance = decimal.RequireFromString("0.02")
)

// ValidateInput runs the pre-computation checks in their fixed order and
// returns the first failure as a *domainerr.Error.
func ValidateInput(in ExamFeeInput) error {
	if in.Year == 0 {
		return domainerr.New(domainerr.MissingRequiredField, "year", "year is required")
	}
	if strings.TrimSpace(string(in.ExamCategory)) == "" {
		return domainerr.New(domainerr.MissingRequiredField, "exam_category", "exam category is required")
	}
	if !in.ExamCategory.Valid() {
		return domainerr.Newf(domainerr.MissingRequiredField, "exam_category",
			"exam category must be one of %q, %q or %q",
			CategoryBoardUniversity, CategoryInternal, CategoryApplicationFee)
	}
	if strings.TrimSpace(in.ExamName) == "" {
		return domainerr.New(domainerr.MissingRequiredField, "exam_name", "exam name is required")
	}

	switch {
	case in.ThisCollegeCount == nil:
		return domainerr.New(domainerr.MissingRequiredField, "this_college_count", "this college student count is required")
	case in.ThisCollegeRate == nil:
		return domainerr.New(domainerr.MissingRequiredField, "this_college_rate", "this college rate is required")
	case in.OtherCollegeCount == nil:
		return domainerr.New(domainerr.MissingRequiredField, "other_college_count", "other college student count is required")
	case in.OtherCollegeRate == nil:
		return domainerr.New(domainerr.MissingRequiredField, "other_college_rate", "other college rate is required")
	}

	if in.Year < MinYear || in.Year > MaxYear {
		return domainerr.Newf(domainerr.InvalidFieldValue, "year", "year must be between %d and %d", MinYear, MaxYear)
	}
	if *in.ThisCollegeCount < 0 {
		return domainerr.New(domainerr.InvalidFieldValue, "this_college_count", "student count must not be negative")
	}
	if *in.OtherCollegeCount < 0 {
		return domainerr.New(domainerr.InvalidFieldValue, "other_college_count", "student count must not be negative")
	}
	if *in.ThisCollegeCount > math.MaxInt64-*in.OtherCollegeCount {
		return domainerr.New(domainerr.InvalidFieldValue, "total_students", "student counts are too large")
	}
	if in.ExamManagementExpense != nil && in.ExamManagementExpense.IsNegative() {
		return domainerr.New(domainerr.InvalidFieldValue, "expenses.exam_management", "exam management expense must not be negative")
	}

	if *in.ThisCollegeCount+*in.OtherCollegeCount < 1 {
		return domainerr.New(domainerr.InsufficientStudents, "total_students", "at least one student is required")
	}

	if in.ThisCollegeRate.IsNegative() {
		return domainerr.New(domainerr.NegativeRate, "this_college_rate", "rate must not be negative")
	}
	if in.OtherCollegeRate.IsNegative() {
		return domainerr.New(domainerr.NegativeRate, "other_college_rate", "rate must not be negative")
	}

	return checkPercents(in.Percents)
}

func checkPercents(p DistributionPercents) error {
	shares := []struct {
		field string
		value decimal.Decimal
	}{
		{"distribution.govt_treasury.percent", p.GovtTreasury},
		{"distribution.teachers_council.percent", p.TeachersCouncil},
		{"distribution.staff_invigilators.percent", p.StaffInvigilators},
		{"distribution.admin_committee.percent", p.AdminCommittee},
	}
	for _, s := range shares {
		if s.value.IsNegative() || s.value.GreaterThan(oneHundred) {
			return domainerr.New(domainerr.DistributionPercentMismatch, s.field, "percent must be between 0 and 100")
		}
	}
	sum := p.Sum()
	if sum.Sub(oneHundred).Abs().GreaterThan(PercentTolerance) {
		return domainerr.Newf(domainerr.DistributionPercentMismatch, "distribution",
			"distribution percentages must total 100%%, got %s%%", sum.String())
	}
	return nil
}

// ValidateRecord runs the post-computation checks.
func ValidateRecord(rec ExamFeeRecord) error {
	if rec.DistributableFund.IsNegative() {
		return domainerr.Newf(domainerr.ExpenseExceedsIncome, "expenses.exam_management",
			"exam management expense %s exceeds total income %s",
			rec.ExamManagementExpense.StringFixed(2), rec.TotalIncome.StringFixed(2))
	}
	if rec.TotalExpenses.GreaterThan(rec.TotalIncome.Add(RoundingTolerance)) {
		return domainerr.Newf(domainerr.TotalExpenseExceedsIncome, "total_expenses",
			"total expenses %s exceed total income %s",
			rec.TotalExpenses.StringFixed(2), rec.TotalIncome.StringFixed(2))
	}
	return nil
}

// Evaluate validates, computes and re-validates. Record creation and
// record replacement both go through here.
func Evaluate(in ExamFeeInput) (ExamFeeRecord, error) {
	if err := ValidateInput(in); err != nil {
		return ExamFeeRecord{}, err
	}
	rec := Compute(in)
	if err := ValidateRecord(rec); err != nil {
		return ExamFeeRecord{}, err
	}
	return rec, nil
}

// CheckInvariants asserts what must hold for any stored record, however it
// was produced.
func CheckInvariants(rec ExamFeeRecord) error {
	if rec.ThisCollegeCount < 0 || rec.OtherCollegeCount < 0 ||
		rec.ThisCollegeCount > math.MaxInt64-rec.OtherCollegeCount ||
		rec.TotalStudents != rec.ThisCollegeCount+rec.OtherCollegeCount {
		return domainerr.New(domainerr.InvalidFieldValue, "total_students", "total students does not match the two counts")
	}
	if !rec.TotalIncome.Equal(rec.IncomeAmount) {
		return domainerr.New(domainerr.InvalidFieldValue, "total_income", "total income must equal income amount")
	}
	if err := checkPercents(rec.Distribution.Percents()); err != nil {
		return err
	}
	for _, s := range rec.Distribution.Shares() {
		if s.Amount.IsNegative() {
			return domainerr.New(domainerr.InvalidFieldValue, "distribution", "distribution amounts must not be negative")
		}
	}
	return ValidateRecord(rec)
}
