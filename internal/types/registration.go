package types

import (
	"time"
)

// Variant selects which of the two mutually exclusive form shapes a
// deployment serves. A single process only ever runs one variant; both map
// to the same "users" table but with different column sets.
type Variant string

const (
	VariantDonation   Variant = "donation"
	VariantMembership Variant = "membership"
)

func (v Variant) Valid() bool {
	return v == VariantDonation || v == VariantMembership
}

// Donor is the donation-variant row: a one-time contribution of an amount
// on a given date. Mobile is stored as text to preserve leading zeros.
type Donor struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	Name   string    `gorm:"type:varchar(100);not null;column:name" json:"name"`
	Mobile string    `gorm:"type:varchar(20);uniqueIndex:uniq_users_mobile;not null;column:mobile" json:"mobile"`
	Email  string    `gorm:"type:varchar(255);uniqueIndex:uniq_users_email;not null;column:email" json:"email"`
	Amount int       `gorm:"not null;column:amount" json:"amount"`
	Date   time.Time `gorm:"type:date;not null;column:date" json:"date"`
}

func (Donor) TableName() string { return "users" }

// Member is the membership-variant row.
type Member struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"type:varchar(100);not null;column:name" json:"name"`
	Mobile   string    `gorm:"type:varchar(20);uniqueIndex:uniq_users_mobile;not null;column:mobile" json:"mobile"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex:uniq_users_email;not null;column:email" json:"email"`
	Address  string    `gorm:"type:varchar(255);not null;column:address" json:"address"`
	DOB      time.Time `gorm:"type:date;not null;column:dob" json:"dob"`
	Feedback string    `gorm:"type:varchar(255);not null;column:feedback" json:"feedback"`
}

func (Member) TableName() string { return "users" }
