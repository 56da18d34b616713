// file: internals/features/finance/exam_fees/dto/exam_fee_dto.go
package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"collegeaccounts_backend/internals/features/finance/exam_fees/calculator"
	"collegeaccounts_backend/internals/features/finance/exam_fees/model"
	userModel "collegeaccounts_backend/internals/features/users/user/model"
	helper "collegeaccounts_backend/internals/helpers"
)

/* =======================================================
   REQUEST
======================================================= */

type PercentRequest struct {
	Percent *decimal.Decimal `json:"percent"`
}

type DistributionRequest struct {
	GovtTreasury      PercentRequest `json:"govt_treasury"`
	TeachersCouncil   PercentRequest `json:"teachers_council"`
	StaffInvigilators PercentRequest `json:"staff_invigilators"`
	AdminCommittee    PercentRequest `json:"admin_committee"`
}

type ExpensesRequest struct {
	ExamManagement *decimal.Decimal `json:"exam_management"`
}

// ExamFeeRequest dipakai untuk POST, PUT (replace penuh) dan preview.
type ExamFeeRequest struct {
	Year              *int                `json:"year"`
	ExamCategory      string              `json:"exam_category"`
	ExamName          string              `json:"exam_name"`
	ThisCollegeCount  *int64              `json:"this_college_count"`
	ThisCollegeRate   *decimal.Decimal    `json:"this_college_rate"`
	OtherCollegeCount *int64              `json:"other_college_count"`
	OtherCollegeRate  *decimal.Decimal    `json:"other_college_rate"`
	Expenses          ExpensesRequest     `json:"expenses"`
	Distribution      DistributionRequest `json:"distribution"`
}

// ToInput: share yang tidak dikirim memakai default; 0 yang dikirim tetap 0.
func (r ExamFeeRequest) ToInput() calculator.ExamFeeInput {
	def := calculator.DefaultPercents()
	in := calculator.ExamFeeInput{
		ExamCategory:          calculator.ExamCategory(strings.TrimSpace(r.ExamCategory)),
		ExamName:              strings.TrimSpace(r.ExamName),
		ThisCollegeCount:      r.ThisCollegeCount,
		ThisCollegeRate:       r.ThisCollegeRate,
		OtherCollegeCount:     r.OtherCollegeCount,
		OtherCollegeRate:      r.OtherCollegeRate,
		ExamManagementExpense: r.Expenses.ExamManagement,
		Percents: calculator.DistributionPercents{
			GovtTreasury:      percentOr(r.Distribution.GovtTreasury, def.GovtTreasury),
			TeachersCouncil:   percentOr(r.Distribution.TeachersCouncil, def.TeachersCouncil),
			StaffInvigilators: percentOr(r.Distribution.StaffInvigilators, def.StaffInvigilators),
			AdminCommittee:    percentOr(r.Distribution.AdminCommittee, def.AdminCommittee),
		},
	}
	if r.Year != nil {
		in.Year = *r.Year
	}
	return in
}

func percentOr(p PercentRequest, def decimal.Decimal) decimal.Decimal {
	if p.Percent == nil {
		return def
	}
	return *p.Percent
}

// FilterAll: nilai exam_category/year yang berarti "tanpa filter".
const FilterAll = "all"

func init() {
	_ = helper.Validate.RegisterValidation("exam_year_filter", func(fl validator.FieldLevel) bool {
		y, ok := parseYearFilter(fl.Field().String())
		return ok && (y == 0 || (y >= calculator.MinYear && y <= calculator.MaxYear))
	})
}

// parseYearFilter: "" dan "all" → 0 (tanpa filter), selain itu harus angka.
func parseYearFilter(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, FilterAll) {
		return 0, true
	}
	y, err := strconv.Atoi(raw)
	return y, err == nil
}

// ListQuery: ?search=&exam_category=&year= (+ page/per_page/sort_by/order dari helper.ParseFiber)
type ListQuery struct {
	Search       string `query:"search" validate:"max=100"`
	ExamCategory string `query:"exam_category" validate:"max=40"`
	Year         string `query:"year" validate:"omitempty,exam_year_filter"`
	Format       string `query:"format" validate:"omitempty,oneof=xlsx csv"`
}

func (q ListQuery) CategoryFilter() string {
	c := strings.TrimSpace(q.ExamCategory)
	if strings.EqualFold(c, FilterAll) {
		return ""
	}
	return c
}

// YearFilter: 0 berarti semua tahun. Panggil setelah validasi.
func (q ListQuery) YearFilter() int {
	y, _ := parseYearFilter(q.Year)
	return y
}

/* =======================================================
   RESPONSE
======================================================= */

type ExpensesResponse struct {
	ExamManagement decimal.Decimal `json:"exam_management"`
}

type ExamFeeComputation struct {
	Year                 int                     `json:"year"`
	ExamCategory         string                  `json:"exam_category"`
	ExamName             string                  `json:"exam_name"`
	ThisCollegeCount     int64                   `json:"this_college_count"`
	ThisCollegeRate      decimal.Decimal         `json:"this_college_rate"`
	OtherCollegeCount    int64                   `json:"other_college_count"`
	OtherCollegeRate     decimal.Decimal         `json:"other_college_rate"`
	TotalStudents        int64                   `json:"total_students"`
	IncomeAmount         decimal.Decimal         `json:"income_amount"`
	TotalIncome          decimal.Decimal         `json:"total_income"`
	Expenses             ExpensesResponse        `json:"expenses"`
	DistributableFund    decimal.Decimal         `json:"distributable_fund"`
	Distribution         calculator.Distribution `json:"distribution"`
	DistributableExpense decimal.Decimal         `json:"distributable_expense"`
	TotalExpenses        decimal.Decimal         `json:"total_expenses"`
}

type ExamFeeResponse struct {
	ID uuid.UUID `json:"id"`
	ExamFeeComputation
	CreatedBy *userModel.UserSnapshot `json:"created_by,omitempty"`
	UpdatedBy *userModel.UserSnapshot `json:"updated_by,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func FromRecord(rec calculator.ExamFeeRecord) ExamFeeComputation {
	return ExamFeeComputation{
		Year:                 rec.Year,
		ExamCategory:         string(rec.ExamCategory),
		ExamName:             rec.ExamName,
		ThisCollegeCount:     rec.ThisCollegeCount,
		ThisCollegeRate:      rec.ThisCollegeRate,
		OtherCollegeCount:    rec.OtherCollegeCount,
		OtherCollegeRate:     rec.OtherCollegeRate,
		TotalStudents:        rec.TotalStudents,
		IncomeAmount:         rec.IncomeAmount,
		TotalIncome:          rec.TotalIncome,
		Expenses:             ExpensesResponse{ExamManagement: rec.ExamManagementExpense},
		DistributableFund:    rec.DistributableFund,
		Distribution:         rec.Distribution,
		DistributableExpense: rec.DistributableExpense,
		TotalExpenses:        rec.TotalExpenses,
	}
}

func ToExamFeeResponse(m model.ExamFee) ExamFeeResponse {
	return ExamFeeResponse{
		ID:                 m.ExamFeeID,
		ExamFeeComputation: FromRecord(m.Record()),
		CreatedBy:          m.CreatedByUser.Snapshot(),
		UpdatedBy:          m.UpdatedByUser.Snapshot(),
		CreatedAt:          m.ExamFeeCreatedAt,
		UpdatedAt:          m.ExamFeeUpdatedAt,
	}
}

func ToExamFeeResponses(rows []model.ExamFee) []ExamFeeResponse {
	out := make([]ExamFeeResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, ToExamFeeResponse(m))
	}
	return out
}

// CatalogEntry: kategori + daftar nama ujian yang disarankan untuk dropdown form.
type CatalogEntry struct {
	Category  string   `json:"category"`
	ExamNames []string `json:"exam_names"`
}

type CatalogResponse struct {
	Categories          []CatalogEntry          `json:"categories"`
	DefaultDistribution calculator.Distribution `json:"default_distribution"`
	MinYear             int                     `json:"min_year"`
	MaxYear             int                     `json:"max_year"`
}

func BuildCatalog() CatalogResponse {
	out := CatalogResponse{MinYear: calculator.MinYear, MaxYear: calculator.MaxYear}
	for _, c := range calculator.ExamCategories() {
		out.Categories = append(out.Categories, CatalogEntry{Category: string(c), ExamNames: calculator.ExamNames(c)})
	}
	def := calculator.DefaultPercents()
	out.DefaultDistribution = calculator.Distribution{
		GovtTreasury:      calculator.ShareAllocation{Percent: def.GovtTreasury},
		TeachersCouncil:   calculator.ShareAllocation{Percent: def.TeachersCouncil},
		StaffInvigilators: calculator.ShareAllocation{Percent: def.StaffInvigilators},
		AdminCommittee:    calculator.ShareAllocation{Percent: def.AdminCommittee},
	}
	return out
}
