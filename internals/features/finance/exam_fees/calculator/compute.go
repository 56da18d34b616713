package calculator

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// Compute derives every computed field of the record. Income and the
// distributable fund are exact; each share amount is rounded to 2 places
// (half away from zero) from the unrounded fund, so DistributableExpense may
// drift from DistributableFund by a few cents. Negative funds are returned as
// is; ValidateRecord rejects them.
func Compute(in ExamFeeInput) ExamFeeRecord {
	thisCount := derefInt(in.ThisCollegeCount)
	otherCount := derefInt(in.OtherCollegeCount)
	thisRate := derefDec(in.ThisCollegeRate)
	otherRate := derefDec(in.OtherCollegeRate)
	expense := derefDec(in.ExamManagementExpense)

	income := decimal.NewFromInt(thisCount).Mul(thisRate).
		Add(decimal.NewFromInt(otherCount).Mul(otherRate))
	fund := income.Sub(expense)

	dist := Distribution{
		GovtTreasury:      allocate(fund, in.Percents.GovtTreasury),
		TeachersCouncil:   allocate(fund, in.Percents.TeachersCouncil),
		StaffInvigilators: allocate(fund, in.Percents.StaffInvigilators),
		AdminCommittee:    allocate(fund, in.Percents.AdminCommittee),
	}

	distributed := decimal.Zero
	for _, s := range dist.Shares() {
		distributed = distributed.Add(s.Amount)
	}

	return ExamFeeRecord{
		Year:                  in.Year,
		ExamCategory:          in.ExamCategory,
		ExamName:              in.ExamName,
		ThisCollegeCount:      thisCount,
		ThisCollegeRate:       thisRate,
		OtherCollegeCount:     otherCount,
		OtherCollegeRate:      otherRate,
		ExamManagementExpense: expense,
		TotalStudents:         thisCount + otherCount,
		IncomeAmount:          income,
		TotalIncome:           income,
		DistributableFund:     fund,
		Distribution:          dist,
		DistributableExpense:  distributed,
		TotalExpenses:         expense.Add(distributed),
	}
}

func allocate(fund, percent decimal.Decimal) ShareAllocation {
	return ShareAllocation{
		Percent: percent,
		Amount:  fund.Mul(percent).Div(oneHundred).Round(2),
	}
}

func derefInt(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefDec(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}
