package database

import (
	"gorm.io/gorm"

	authModel "collegeaccounts_backend/internals/features/users/auth/model"
	userModel "collegeaccounts_backend/internals/features/users/user/model"
	employeeModel "collegeaccounts_backend/internals/features/employees/model"
	examFeeModel "collegeaccounts_backend/internals/features/finance/exam_fees/model"
)

// AutoMigrate membuat/menyesuaikan semua tabel. Urutan: users dulu (FK audit).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&examFeeModel.ExamFee{},
		&employeeModel.Employee{},
	)
}
