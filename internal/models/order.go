package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusApproved  OrderStatus = "Approved"
	OrderStatusCompleted OrderStatus = "Completed" // counts against the supplier's settlement
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Order: a tea-packet/fertilizer order placed by a supplier.
// Creating, updating and deleting an order moves Product.StockBag inside the
// same transaction; a status transition alone has no stock effect.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"Order_ID"`
	SupplierID      string      `gorm:"size:20;index;not null" json:"S_RegisterID"`
	Supplier        Supplier    `json:"-"`
	ProductID       string      `gorm:"size:20;index;not null" json:"ProductID"`
	Product         Product     `json:"-"`
	Qty             int         `gorm:"not null" json:"Qty"`
	Status          OrderStatus `gorm:"size:20;not null;default:'Pending'" json:"Order_Status"`
	RequestDate     time.Time   `gorm:"index" json:"Request_Date"`
	TotalItems      int         `json:"Total_Items"`
	TotalTeaPackets int         `json:"Total_TeaPackets"`
	TotalOtherItems int         `json:"Total_OtherItems"`
	DriverID        *string     `gorm:"size:20;index" json:"Driver_RegisterID"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
