package models

import "time"

const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Phone        string `gorm:"size:20;uniqueIndex" json:"phone"`
	Email        string `gorm:"size:100;index" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Role         string `gorm:"size:20;default:'customer'" json:"role"`

	ReferralCode string `gorm:"size:12;uniqueIndex" json:"referral_code"`
	ReferredByID *uint  `json:"referred_by_id"`

	PushToken string `gorm:"size:255" json:"-"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
