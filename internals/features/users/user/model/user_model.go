package model

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
)

// UserModel merepresentasikan tabel users. Akun dibuat lewat CLI, tidak ada register publik.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" validate:"required,min=3,max=100"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`
	Password  string    `gorm:"not null" json:"-" validate:"required,min=8"`
	Role      string    `gorm:"type:varchar(20);not null;default:'accountant'" json:"role" validate:"oneof=admin accountant"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SetDefaultValues memastikan nilai default sebelum validasi
func (u *UserModel) SetDefaultValues() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = RoleAccountant
	}
}

// Validate memeriksa input sebelum password di-hash.
func (u *UserModel) Validate() error {
	u.SetDefaultValues()

	if err := validate.Struct(u); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	msgs := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		switch fieldErr.Tag() {
		case "required":
			msgs = append(msgs, fieldErr.Field()+" is required")
		case "email":
			msgs = append(msgs, "invalid email format")
		case "min":
			msgs = append(msgs, fieldErr.Field()+" must be at least "+fieldErr.Param()+" characters")
		case "max":
			msgs = append(msgs, fieldErr.Field()+" must be at most "+fieldErr.Param()+" characters")
		case "oneof":
			msgs = append(msgs, fieldErr.Field()+" must be one of "+fieldErr.Param())
		default:
			msgs = append(msgs, fieldErr.Field()+" is invalid")
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// UserSnapshot is the audit view embedded in other responses.
type UserSnapshot struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func (u *UserModel) Snapshot() *UserSnapshot {
	if u == nil {
		return nil
	}
	return &UserSnapshot{ID: u.ID, Name: u.Name, Email: u.Email}
}
