package calculator

import (
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collegeaccounts_backend/internals/helpers/domainerr"
)

func i64(n int64) *int64 { return &n }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func pct(govt, teachers, staff, admin string) DistributionPercents {
	return DistributionPercents{
		GovtTreasury:      *dec(govt),
		TeachersCouncil:   *dec(teachers),
		StaffInvigilators: *dec(staff),
		AdminCommittee:    *dec(admin),
	}
}

func scenarioA() ExamFeeInput {
	return ExamFeeInput{
		Year:                  2024,
		ExamCategory:          CategoryBoardUniversity,
		ExamName:              "HSC Board Exam",
		ThisCollegeCount:      i64(100),
		ThisCollegeRate:       dec("50"),
		OtherCollegeCount:     i64(50),
		OtherCollegeRate:      dec("40"),
		ExamManagementExpense: dec("1000"),
		Percents:              DefaultPercents(),
	}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: want %s, got %s", msg, want, got.String())
}

func TestEvaluate_ScenarioA(t *testing.T) {
	rec, err := Evaluate(scenarioA())
	require.NoError(t, err)

	assert.Equal(t, int64(150), rec.TotalStudents)
	assertDec(t, "7000", rec.IncomeAmount, "income")
	assertDec(t, "7000", rec.TotalIncome, "total income")
	assertDec(t, "6000", rec.DistributableFund, "fund")
	assertDec(t, "600.00", rec.Distribution.GovtTreasury.Amount, "govt")
	assertDec(t, "120.00", rec.Distribution.TeachersCouncil.Amount, "teachers")
	assertDec(t, "3360.00", rec.Distribution.StaffInvigilators.Amount, "staff")
	assertDec(t, "1920.00", rec.Distribution.AdminCommittee.Amount, "admin")
	assertDec(t, "6000", rec.DistributableExpense, "distributable expense")
	assertDec(t, "7000", rec.TotalExpenses, "total expenses")
	assertDec(t, "56", rec.Distribution.StaffInvigilators.Percent, "staff percent")
}

func TestEvaluate_ScenarioB_ExpenseExceedsIncome(t *testing.T) {
	in := scenarioA()
	in.ExamManagementExpense = dec("8000")

	_, err := Evaluate(in)
	assert.Equal(t, domainerr.ExpenseExceedsIncome, domainerr.KindOf(err))

	// the engine itself does not clamp
	assertDec(t, "-1000", Compute(in).DistributableFund, "fund")
}

func TestEvaluate_ScenarioC_PercentMismatch(t *testing.T) {
	in := scenarioA()
	in.Percents = pct("10", "2", "55", "32")

	_, err := Evaluate(in)
	assert.Equal(t, domainerr.DistributionPercentMismatch, domainerr.KindOf(err))

	// never normalized, whatever the other fields hold
	in.ExamManagementExpense = dec("99999")
	_, err = Evaluate(in)
	assert.Equal(t, domainerr.DistributionPercentMismatch, domainerr.KindOf(err))
}

func TestEvaluate_ScenarioD_InsufficientStudents(t *testing.T) {
	in := scenarioA()
	in.ThisCollegeCount = i64(0)
	in.OtherCollegeCount = i64(0)
	in.Percents = pct("0", "0", "0", "0")

	_, err := Evaluate(in)
	assert.Equal(t, domainerr.InsufficientStudents, domainerr.KindOf(err), "student check runs before percent check")
}

func TestValidateInput_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ExamFeeInput)
		field  string
	}{
		{"year", func(in *ExamFeeInput) { in.Year = 0 }, "year"},
		{"category", func(in *ExamFeeInput) { in.ExamCategory = "" }, "exam_category"},
		{"unknown category", func(in *ExamFeeInput) { in.ExamCategory = "Quiz" }, "exam_category"},
		{"name", func(in *ExamFeeInput) { in.ExamName = "   " }, "exam_name"},
		{"this count", func(in *ExamFeeInput) { in.ThisCollegeCount = nil }, "this_college_count"},
		{"this rate", func(in *ExamFeeInput) { in.ThisCollegeRate = nil }, "this_college_rate"},
		{"other count", func(in *ExamFeeInput) { in.OtherCollegeCount = nil }, "other_college_count"},
		{"other rate", func(in *ExamFeeInput) { in.OtherCollegeRate = nil }, "other_college_rate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := scenarioA()
			tc.mutate(&in)
			de, ok := domainerr.As(ValidateInput(in))
			require.True(t, ok)
			assert.Equal(t, domainerr.MissingRequiredField, de.Kind)
			assert.Equal(t, tc.field, de.Field)
		})
	}
}

func TestValidateInput_ZeroIsPresent(t *testing.T) {
	in := scenarioA()
	in.OtherCollegeCount = i64(0)
	in.OtherCollegeRate = dec("0")
	in.ExamManagementExpense = nil

	rec, err := Evaluate(in)
	require.NoError(t, err)
	assertDec(t, "5000", rec.TotalIncome, "income")
	assertDec(t, "0", rec.ExamManagementExpense, "absent expense")
	assertDec(t, "5000", rec.TotalExpenses, "total expenses")
}

func TestValidateInput_InvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ExamFeeInput)
		kind   domainerr.Kind
	}{
		{"year too early", func(in *ExamFeeInput) { in.Year = 1999 }, domainerr.InvalidFieldValue},
		{"year too late", func(in *ExamFeeInput) { in.Year = 2051 }, domainerr.InvalidFieldValue},
		{"negative count", func(in *ExamFeeInput) { in.OtherCollegeCount = i64(-1) }, domainerr.InvalidFieldValue},
		{"counts overflow", func(in *ExamFeeInput) {
			in.ThisCollegeCount = i64(math.MaxInt64)
			in.OtherCollegeCount = i64(1)
		}, domainerr.InvalidFieldValue},
		{"negative expense", func(in *ExamFeeInput) { in.ExamManagementExpense = dec("-1") }, domainerr.InvalidFieldValue},
		{"negative this rate", func(in *ExamFeeInput) { in.ThisCollegeRate = dec("-0.01") }, domainerr.NegativeRate},
		{"negative other rate", func(in *ExamFeeInput) { in.OtherCollegeRate = dec("-5") }, domainerr.NegativeRate},
		{"share over 100", func(in *ExamFeeInput) { in.Percents = pct("110", "-10", "0", "0") }, domainerr.DistributionPercentMismatch},
		{"share negative", func(in *ExamFeeInput) { in.Percents = pct("-1", "3", "56", "42") }, domainerr.DistributionPercentMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := scenarioA()
			tc.mutate(&in)
			assert.Equal(t, tc.kind, domainerr.KindOf(ValidateInput(in)))
		})
	}
}

func TestValidateInput_PercentTolerance(t *testing.T) {
	in := scenarioA()
	in.Percents = pct("10", "2", "56", "32.01")
	assert.NoError(t, ValidateInput(in))

	in.Percents = pct("10", "2", "56", "31.985")
	assert.Equal(t, domainerr.DistributionPercentMismatch, domainerr.KindOf(ValidateInput(in)))
}

func TestCompute_IndependentRoundingDrift(t *testing.T) {
	in := ExamFeeInput{
		Year:              2025,
		ExamCategory:      CategoryInternal,
		ExamName:          "Class XI Annual Exam",
		ThisCollegeCount:  i64(1),
		ThisCollegeRate:   dec("0.02"),
		OtherCollegeCount: i64(0),
		OtherCollegeRate:  dec("0"),
		Percents:          pct("25", "25", "25", "25"),
	}

	rec, err := Evaluate(in)
	require.NoError(t, err, "drift within tolerance is accepted")
	for _, s := range rec.Distribution.Shares() {
		assertDec(t, "0.01", s.Amount, "share rounds half away from zero")
	}
	assertDec(t, "0.02", rec.DistributableFund, "fund")
	assertDec(t, "0.04", rec.DistributableExpense, "sum of rounded shares")
	assertDec(t, "0.04", rec.TotalExpenses, "total expenses")
	assert.True(t, rec.DistributableExpense.Sub(rec.DistributableFund).Abs().LessThanOrEqual(RoundingTolerance))
}

func TestCompute_RoundsFromUnroundedFund(t *testing.T) {
	in := scenarioA()
	in.ThisCollegeCount = i64(3)
	in.ThisCollegeRate = dec("33.335")
	in.OtherCollegeCount = i64(0)
	in.ExamManagementExpense = dec("0")

	rec := Compute(in)
	assertDec(t, "100.005", rec.DistributableFund, "fund stays exact")
	assertDec(t, "56.00", rec.Distribution.StaffInvigilators.Amount, "56% of 100.005 = 56.0028")
	assertDec(t, "32.00", rec.Distribution.AdminCommittee.Amount, "32% of 100.005 = 32.0016")
	assertDec(t, "10.00", rec.Distribution.GovtTreasury.Amount, "10% of 100.005 = 10.0005")
}

func TestCompute_Idempotent(t *testing.T) {
	in := scenarioA()
	first := Compute(in)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, first, Compute(in))
		}()
	}
	wg.Wait()
}

func TestCheckInvariants(t *testing.T) {
	rec, err := Evaluate(scenarioA())
	require.NoError(t, err)
	require.NoError(t, CheckInvariants(rec))

	tampered := rec
	tampered.TotalStudents = 1
	assert.Equal(t, domainerr.InvalidFieldValue, domainerr.KindOf(CheckInvariants(tampered)))

	tampered = rec
	tampered.ThisCollegeCount = math.MaxInt64
	tampered.OtherCollegeCount = 1
	tampered.TotalStudents = math.MinInt64
	assert.Equal(t, domainerr.InvalidFieldValue, domainerr.KindOf(CheckInvariants(tampered)))

	tampered = rec
	tampered.TotalExpenses = rec.TotalIncome.Add(decimal.RequireFromString("0.03"))
	assert.Equal(t, domainerr.TotalExpenseExceedsIncome, domainerr.KindOf(CheckInvariants(tampered)))

	tampered = rec
	tampered.Distribution.GovtTreasury.Percent = decimal.NewFromInt(20)
	assert.Equal(t, domainerr.DistributionPercentMismatch, domainerr.KindOf(CheckInvariants(tampered)))
}

func TestCatalog(t *testing.T) {
	assert.Len(t, ExamCategories(), 3)
	assert.Contains(t, ExamNames(CategoryInternal), "Class XII Selection Exam")
	assert.Empty(t, ExamNames("Quiz"))
	assert.True(t, DefaultPercents().Sum().Equal(oneHundred))
}
