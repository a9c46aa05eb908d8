package models

import "time"

type Driver struct {
	ID            string `gorm:"primaryKey;size:20" json:"D_RegisterID"`
	FullName      string `gorm:"size:100;not null" json:"D_FullName"`
	ContactNumber string `gorm:"size:20" json:"D_ContactNumber"`
	Email         string `gorm:"size:100;index" json:"Email"`
	VehicleNumber string `gorm:"size:20" json:"VehicleNumber"`
	Route         string `gorm:"size:100" json:"Route"`
	SerialCode    string `gorm:"size:50" json:"Serial_Code"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
