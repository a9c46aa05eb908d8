package models

import "time"

type Supplier struct {
	ID            string `gorm:"primaryKey;size:20" json:"S_RegisterID"`
	FullName      string `gorm:"size:100;not null" json:"S_FullName"`
	Address       string `gorm:"size:255" json:"S_Address"`
	ContactNo     string `gorm:"size:20" json:"S_ContactNo"`
	Email         string `gorm:"size:100;index" json:"Email"`
	AccountNumber string `gorm:"size:50" json:"AccountNumber"`
	BankName      string `gorm:"size:100" json:"BankName"`
	Branch        string `gorm:"size:100" json:"Branch"`
	Username      string `gorm:"size:50;uniqueIndex" json:"Username"`
	PasswordHash  string `gorm:"size:100" json:"-"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
