package calculator

import "github.com/shopspring/decimal"

var examNames = map[ExamCategory][]string{
	CategoryBoardUniversity: {
		"HSC Board Exam",
		"Honors 1st Year Exam",
		"Honors 2nd Year Exam",
		"Honors 3rd Year Exam",
		"Honors 4th Year Exam",
		"Degree 1st Year Exam",
		"Degree 2nd Year Exam",
		"Degree 3rd Year Exam",
		"Preliminary to Masters Exam",
		"Master's First Year Exam",
	},
	CategoryInternal: {
		"Class XI Half-Yearly Exam",
		"Class XI Annual Exam",
		"Class XII Pre-Selection Exam",
		"Class XII Selection Exam",
		"Degree 1st Year Selection Exam",
		"Degree 2nd Year Selection Exam",
		"Degree 3rd Year Selection Exam",
	},
	CategoryApplicationFee: {
		"Class XI Admission Application Fee",
		"Honors 1st Year Admission Application Fee",
		"Degree 1st Year Admission Application Fee",
		"Preliminary Admission Application Fee",
		"Master's Final Admission Application Fee",
	},
}

// ExamCategories lists the categories in display order.
func ExamCategories() []ExamCategory {
	return []ExamCategory{CategoryBoardUniversity, CategoryInternal, CategoryApplicationFee}
}

// ExamNames returns the suggested exam names for a category. Names are not
// restricted to this list.
func ExamNames(c ExamCategory) []string {
	return append([]string(nil), examNames[c]...)
}

// DefaultPercents is the split used when a submission leaves a share out.
func DefaultPercents() DistributionPercents {
	return DistributionPercents{
		GovtTreasury:      decimal.NewFromInt(10),
		TeachersCouncil:   decimal.NewFromInt(2),
		StaffInvigilators: decimal.NewFromInt(56),
		AdminCommittee:    decimal.NewFromInt(32),
	}
}
