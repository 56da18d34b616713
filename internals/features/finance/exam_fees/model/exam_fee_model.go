// file: internals/features/finance/exam_fees/model/exam_fee_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"collegeaccounts_backend/internals/features/finance/exam_fees/calculator"
	userModel "collegeaccounts_backend/internals/features/users/user/model"
)

// --- MODEL exam_fees ---------------------------------------------------------
// Kolom turunan (total, fund, distribusi) selalu diisi dari calculator.Evaluate;
// tidak pernah di-patch satu per satu.
type ExamFee struct {
	// PK
	ExamFeeID uuid.UUID `json:"exam_fee_id" gorm:"column:exam_fee_id;type:uuid;primaryKey"`

	// Identitas ujian
	ExamFeeYear     int    `json:"exam_fee_year" gorm:"column:exam_fee_year;not null;index:idx_exam_fees_lookup,priority:1"`
	ExamFeeCategory string `json:"exam_fee_category" gorm:"column:exam_fee_category;type:varchar(40);not null;index:idx_exam_fees_lookup,priority:2"`
	ExamFeeName     string `json:"exam_fee_name" gorm:"column:exam_fee_name;type:varchar(160);not null;index:idx_exam_fees_lookup,priority:3"`

	// Input mentah
	ExamFeeThisCollegeCount  int64           `json:"exam_fee_this_college_count" gorm:"column:exam_fee_this_college_count;not null"`
	ExamFeeThisCollegeRate   decimal.Decimal `json:"exam_fee_this_college_rate" gorm:"column:exam_fee_this_college_rate;type:numeric;not null"`
	ExamFeeOtherCollegeCount int64           `json:"exam_fee_other_college_count" gorm:"column:exam_fee_other_college_count;not null"`
	ExamFeeOtherCollegeRate  decimal.Decimal `json:"exam_fee_other_college_rate" gorm:"column:exam_fee_other_college_rate;type:numeric;not null"`
	ExamFeeManagementExpense decimal.Decimal `json:"exam_fee_management_expense" gorm:"column:exam_fee_management_expense;type:numeric;not null"`

	// Turunan
	ExamFeeTotalStudents        int64                                      `json:"exam_fee_total_students" gorm:"column:exam_fee_total_students;not null"`
	ExamFeeIncomeAmount         decimal.Decimal                            `json:"exam_fee_income_amount" gorm:"column:exam_fee_income_amount;type:numeric;not null"`
	ExamFeeTotalIncome          decimal.Decimal                            `json:"exam_fee_total_income" gorm:"column:exam_fee_total_income;type:numeric;not null"`
	ExamFeeDistributableFund    decimal.Decimal                            `json:"exam_fee_distributable_fund" gorm:"column:exam_fee_distributable_fund;type:numeric;not null"`
	ExamFeeDistribution         datatypes.JSONType[calculator.Distribution] `json:"exam_fee_distribution" gorm:"column:exam_fee_distribution;not null"`
	ExamFeeDistributableExpense decimal.Decimal                            `json:"exam_fee_distributable_expense" gorm:"column:exam_fee_distributable_expense;type:numeric;not null"`
	ExamFeeTotalExpenses        decimal.Decimal                            `json:"exam_fee_total_expenses" gorm:"column:exam_fee_total_expenses;type:numeric;not null"`

	// Audit
	ExamFeeCreatedBy *uuid.UUID           `json:"exam_fee_created_by,omitempty" gorm:"column:exam_fee_created_by;type:uuid"`
	ExamFeeUpdatedBy *uuid.UUID           `json:"exam_fee_updated_by,omitempty" gorm:"column:exam_fee_updated_by;type:uuid"`
	CreatedByUser    *userModel.UserModel `json:"-" gorm:"foreignKey:ExamFeeCreatedBy;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	UpdatedByUser    *userModel.UserModel `json:"-" gorm:"foreignKey:ExamFeeUpdatedBy;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	// Timestamps
	ExamFeeCreatedAt time.Time      `json:"exam_fee_created_at" gorm:"column:exam_fee_created_at;not null;autoCreateTime"`
	ExamFeeUpdatedAt time.Time      `json:"exam_fee_updated_at" gorm:"column:exam_fee_updated_at;not null;autoUpdateTime"`
	ExamFeeDeletedAt gorm.DeletedAt `json:"exam_fee_deleted_at,omitempty" gorm:"column:exam_fee_deleted_at;index"`
}

func (ExamFee) TableName() string { return "exam_fees" }

func (m *ExamFee) BeforeCreate(tx *gorm.DB) error {
	if m.ExamFeeID == uuid.Nil {
		m.ExamFeeID = uuid.New()
	}
	return nil
}

// BeforeSave menolak baris yang melanggar invariant, apa pun jalurnya.
func (m *ExamFee) BeforeSave(tx *gorm.DB) error {
	return calculator.CheckInvariants(m.Record())
}

// ApplyRecord menyalin seluruh hasil hitung ke model.
func (m *ExamFee) ApplyRecord(rec calculator.ExamFeeRecord) {
	m.ExamFeeYear = rec.Year
	m.ExamFeeCategory = string(rec.ExamCategory)
	m.ExamFeeName = rec.ExamName
	m.ExamFeeThisCollegeCount = rec.ThisCollegeCount
	m.ExamFeeThisCollegeRate = rec.ThisCollegeRate
	m.ExamFeeOtherCollegeCount = rec.OtherCollegeCount
	m.ExamFeeOtherCollegeRate = rec.OtherCollegeRate
	m.ExamFeeManagementExpense = rec.ExamManagementExpense
	m.ExamFeeTotalStudents = rec.TotalStudents
	m.ExamFeeIncomeAmount = rec.IncomeAmount
	m.ExamFeeTotalIncome = rec.TotalIncome
	m.ExamFeeDistributableFund = rec.DistributableFund
	m.ExamFeeDistribution = datatypes.NewJSONType(rec.Distribution)
	m.ExamFeeDistributableExpense = rec.DistributableExpense
	m.ExamFeeTotalExpenses = rec.TotalExpenses
}

func (m *ExamFee) Record() calculator.ExamFeeRecord {
	return calculator.ExamFeeRecord{
		Year:                  m.ExamFeeYear,
		ExamCategory:          calculator.ExamCategory(m.ExamFeeCategory),
		ExamName:              m.ExamFeeName,
		ThisCollegeCount:      m.ExamFeeThisCollegeCount,
		ThisCollegeRate:       m.ExamFeeThisCollegeRate,
		OtherCollegeCount:     m.ExamFeeOtherCollegeCount,
		OtherCollegeRate:      m.ExamFeeOtherCollegeRate,
		ExamManagementExpense: m.ExamFeeManagementExpense,
		TotalStudents:         m.ExamFeeTotalStudents,
		IncomeAmount:          m.ExamFeeIncomeAmount,
		TotalIncome:           m.ExamFeeTotalIncome,
		DistributableFund:     m.ExamFeeDistributableFund,
		Distribution:          m.ExamFeeDistribution.Data(),
		DistributableExpense:  m.ExamFeeDistributableExpense,
		TotalExpenses:         m.ExamFeeTotalExpenses,
	}
}

// UpdateColumns: kolom yang diganti saat replace (semua input + semua turunan).
func (m *ExamFee) UpdateColumns() map[string]any {
	return map[string]any{
		"exam_fee_year":                  m.ExamFeeYear,
		"exam_fee_category":              m.ExamFeeCategory,
		"exam_fee_name":                  m.ExamFeeName,
		"exam_fee_this_college_count":    m.ExamFeeThisCollegeCount,
		"exam_fee_this_college_rate":     m.ExamFeeThisCollegeRate,
		"exam_fee_other_college_count":   m.ExamFeeOtherCollegeCount,
		"exam_fee_other_college_rate":    m.ExamFeeOtherCollegeRate,
		"exam_fee_management_expense":    m.ExamFeeManagementExpense,
		"exam_fee_total_students":        m.ExamFeeTotalStudents,
		"exam_fee_income_amount":         m.ExamFeeIncomeAmount,
		"exam_fee_total_income":          m.ExamFeeTotalIncome,
		"exam_fee_distributable_fund":    m.ExamFeeDistributableFund,
		"exam_fee_distribution":          m.ExamFeeDistribution,
		"exam_fee_distributable_expense": m.ExamFeeDistributableExpense,
		"exam_fee_total_expenses":        m.ExamFeeTotalExpenses,
		"exam_fee_updated_by":            m.ExamFeeUpdatedBy,
	}
}
