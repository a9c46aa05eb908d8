package models

import "time"

type SupplierNotification struct {
	ID         uint      `gorm:"primaryKey" json:"NotificationID"`
	SupplierID string    `gorm:"size:20;index;not null" json:"S_RegisterID"`
	Message    string    `gorm:"size:500;not null" json:"Message"`
	IsRead     bool      `gorm:"not null;default:false" json:"IsRead"`
	CreatedAt  time.Time `json:"CreatedAt"`
}

type DriverNotification struct {
	ID        uint      `gorm:"primaryKey" json:"NotificationID"`
	DriverID  string    `gorm:"size:20;index;not null" json:"D_RegisterID"`
	Message   string    `gorm:"size:500;not null" json:"Message"`
	IsRead    bool      `gorm:"not null;default:false" json:"IsRead"`
	CreatedAt time.Time `json:"CreatedAt"`
}
