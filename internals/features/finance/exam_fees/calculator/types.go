// Package calculator turns raw exam fee submissions into validated income,
// expense and distribution figures. Everything here is pure: no I/O, no
// clock, safe for concurrent use.
package calculator

import "github.com/shopspring/decimal"

type ExamCategory string

const (
	CategoryBoardUniversity ExamCategory = "Board/University"
	CategoryInternal        ExamCategory = "Internal"
	CategoryApplicationFee  ExamCategory = "Application Fee"
)

func (c ExamCategory) Valid() bool {
	switch c {
	case CategoryBoardUniversity, CategoryInternal, CategoryApplicationFee:
		return true
	}
	return false
}

// DistributionPercents are the four shares of the distributable fund, in percent.
type DistributionPercents struct {
	GovtTreasury      decimal.Decimal
	TeachersCouncil   decimal.Decimal
	StaffInvigilators decimal.Decimal
	AdminCommittee    decimal.Decimal
}

func (p DistributionPercents) Sum() decimal.Decimal {
	return p.GovtTreasury.Add(p.TeachersCouncil).Add(p.StaffInvigilators).Add(p.AdminCommittee)
}

// ExamFeeInput is a caller-supplied submission. Pointer fields distinguish
// "absent" from zero; a nil ExamManagementExpense counts as 0.
type ExamFeeInput struct {
	Year         int
	ExamCategory ExamCategory
	ExamName     string

	ThisCollegeCount  *int64
	ThisCollegeRate   *decimal.Decimal
	OtherCollegeCount *int64
	OtherCollegeRate  *decimal.Decimal

	ExamManagementExpense *decimal.Decimal

	Percents DistributionPercents
}

type ShareAllocation struct {
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

type Distribution struct {
	GovtTreasury      ShareAllocation `json:"govt_treasury"`
	TeachersCouncil   ShareAllocation `json:"teachers_council"`
	StaffInvigilators ShareAllocation `json:"staff_invigilators"`
	AdminCommittee    ShareAllocation `json:"admin_committee"`
}

// Shares returns the four allocations in their fixed order.
func (d Distribution) Shares() [4]ShareAllocation {
	return [4]ShareAllocation{d.GovtTreasury, d.TeachersCouncil, d.StaffInvigilators, d.AdminCommittee}
}

func (d Distribution) Percents() DistributionPercents {
	return DistributionPercents{
		GovtTreasury:      d.GovtTreasury.Percent,
		TeachersCouncil:   d.TeachersCouncil.Percent,
		StaffInvigilators: d.StaffInvigilators.Percent,
		AdminCommittee:    d.AdminCommittee.Percent,
	}
}

// ExamFeeRecord is the fully computed form of an ExamFeeInput.
type ExamFeeRecord struct {
	Year         int
	ExamCategory ExamCategory
	ExamName     string

	ThisCollegeCount  int64
	ThisCollegeRate   decimal.Decimal
	OtherCollegeCount int64
	OtherCollegeRate  decimal.Decimal

	ExamManagementExpense decimal.Decimal

	TotalStudents        int64
	IncomeAmount         decimal.Decimal
	TotalIncome          decimal.Decimal
	DistributableFund    decimal.Decimal
	Distribution         Distribution
	DistributableExpense decimal.Decimal
	TotalExpenses        decimal.Decimal
}
