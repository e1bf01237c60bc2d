package models

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	BaseModel
	Email        string         `gorm:"type:varchar(254);uniqueIndex;not null"`
	PasswordHash string         `gorm:"not null"`
	FullName     string         `gorm:"type:varchar(150);not null"`
	Bio          string         `gorm:"type:text"`
	Age          *int
	AvatarURL    string         `gorm:"type:varchar(500)"`
	Skills       datatypes.JSON
	Languages    datatypes.JSON
	IsStaff      bool           `gorm:"default:false;not null"`
	IsActive     bool           `gorm:"default:true;not null"`
}

func (User) TableName() string {
	return "users"
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BeforeCreate keeps stored emails normalized and ages inside 1..120.
// Column updates through Model(&User{}) do not run it.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	if u.Email == "" {
		return gorm.ErrInvalidData
	}
	if u.Age != nil && (*u.Age < 1 || *u.Age > 120) {
		return gorm.ErrInvalidData
	}
	return nil
}

// DisplayName falls back to the email local part when no full name is set.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if at := strings.IndexByte(u.Email, '@'); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}
