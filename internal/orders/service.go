package orders

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/inventory"
	"teasupply-backend/internal/models"
	"teasupply-backend/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Notifier is the best-effort side channel used after a commit. Failures
// are handled inside the dispatcher and never reach this package.
type Notifier interface {
	NotifySupplier(supplierID, message string)
	NotifyDriver(driverID, message string)
}

// Service is the single authoritative implementation of order processing.
// Every stock movement happens inside the same transaction as the order row
// mutation: either both apply or neither does.
type Service struct {
	db       *gorm.DB
	notifier Notifier
	log      *logrus.Logger
}

func NewService(db *gorm.DB, notifier Notifier, log *logrus.Logger) *Service {
	return &Service{db: db, notifier: notifier, log: log}
}

type OrderInput struct {
	SupplierID      string             `json:"S_RegisterID" validate:"required"`
	ProductID       string             `json:"ProductID" validate:"required"`
	Qty             int                `json:"Qty" validate:"required,gt=0"`
	Status          models.OrderStatus `json:"Order_Status"`
	TotalItems      int                `json:"Total_Items"`
	TotalTeaPackets int                `json:"Total_TeaPackets"`
	TotalOtherItems int                `json:"Total_OtherItems"`
	DriverID        *string            `json:"Driver_RegisterID"`
}

// Create deducts stock and inserts the order atomically. The driver
// notification goes out only after the commit.
func (s *Service) Create(in OrderInput) (*models.Order, error) {
	if err := utils.ValidateStruct(&in); err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	order, err := s.createInTx(tx, in)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.notifyCreated(order)
	return order, nil
}

// CreateBulk applies Create semantics to every element inside a single
// transaction. One failed stock adjustment rolls back the whole batch.
func (s *Service) CreateBulk(ins []OrderInput) ([]*models.Order, error) {
	if len(ins) == 0 {
		return nil, &apperr.ValidationError{Field: "orders", Reason: "must not be empty"}
	}
	for i := range ins {
		if err := utils.ValidateStruct(&ins[i]); err != nil {
			var ve *apperr.ValidationError
			if errors.As(err, &ve) {
				return nil, &apperr.ValidationError{
					Field:  fmt.Sprintf("orders[%d].%s", i, ve.Field),
					Reason: ve.Reason,
				}
			}
			return nil, err
		}
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	created := make([]*models.Order, 0, len(ins))
	for _, in := range ins {
		order, err := s.createInTx(tx, in)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		created = append(created, order)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	for _, order := range created {
		s.notifyCreated(order)
	}
	return created, nil
}

func (s *Service) createInTx(tx *gorm.DB, in OrderInput) (*models.Order, error) {
	if err := inventory.AdjustStock(tx, in.ProductID, -in.Qty); err != nil {
		return nil, err
	}

	order := models.Order{
		SupplierID:      in.SupplierID,
		ProductID:       in.ProductID,
		Qty:             in.Qty,
		Status:          in.Status,
		RequestDate:     time.Now(),
		TotalItems:      in.TotalItems,
		TotalTeaPackets: in.TotalTeaPackets,
		TotalOtherItems: in.TotalOtherItems,
		DriverID:        in.DriverID,
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if order.TotalItems == 0 {
		order.TotalItems = in.Qty
	}
	if order.TotalOtherItems == 0 {
		order.TotalOtherItems = in.Qty
	}

	if err := tx.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Update adjusts stock by the quantity delta, or restores the old product
// and deducts the new one when the product changed, then rewrites the row.
func (s *Service) Update(id uint, in OrderInput) (*models.Order, error) {
	if err := utils.ValidateStruct(&in); err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var existing models.Order
	if err := tx.First(&existing, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "Order", ID: strconv.FormatUint(uint64(id), 10)}
		}
		return nil, err
	}

	if existing.ProductID == in.ProductID {
		if delta := existing.Qty - in.Qty; delta != 0 {
			if err := inventory.AdjustStock(tx, in.ProductID, delta); err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	} else {
		if err := inventory.AdjustStock(tx, existing.ProductID, existing.Qty); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := inventory.AdjustStock(tx, in.ProductID, -in.Qty); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	status := in.Status
	if status == "" {
		status = existing.Status
	}
	totalItems := in.TotalItems
	if totalItems == 0 {
		totalItems = in.Qty
	}
	totalOther := in.TotalOtherItems
	if totalOther == 0 {
		totalOther = in.Qty
	}

	if err := tx.Model(&existing).Updates(map[string]interface{}{
		"supplier_id":       in.SupplierID,
		"product_id":        in.ProductID,
		"qty":               in.Qty,
		"status":            status,
		"total_items":       totalItems,
		"total_tea_packets": in.TotalTeaPackets,
		"total_other_items": totalOther,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// Delete restores the order's quantity to its product and removes the row.
func (s *Service) Delete(id uint) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var order models.Order
	if err := tx.First(&order, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperr.NotFoundError{Entity: "Order", ID: strconv.FormatUint(uint64(id), 10)}
		}
		return err
	}

	if err := inventory.AdjustStock(tx, order.ProductID, order.Qty); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// UpdateStatus transitions the order status. No stock effect; the supplier
// is notified best-effort after the row is written.
func (s *Service) UpdateStatus(id uint, status models.OrderStatus) (*models.Order, error) {
	if status == "" {
		return nil, &apperr.ValidationError{Field: "status"}
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "Order", ID: strconv.FormatUint(uint64(id), 10)}
		}
		return nil, err
	}

	if err := s.db.Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}
	order.Status = status

	if s.notifier != nil {
		s.notifier.NotifySupplier(order.SupplierID,
			fmt.Sprintf("Your order #%d is now %s", order.ID, status))
	}
	return &order, nil
}

func (s *Service) Get(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Supplier").Preload("Product").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "Order", ID: strconv.FormatUint(uint64(id), 10)}
		}
		return nil, err
	}
	return &order, nil
}

func (s *Service) List() ([]models.Order, error) {
	var rows []models.Order
	err := s.db.Preload("Supplier").Preload("Product").
		Order("request_date desc, id desc").Find(&rows).Error
	return rows, err
}

func (s *Service) ListBySupplier(supplierID string) ([]models.Order, error) {
	var rows []models.Order
	err := s.db.Preload("Product").
		Where("supplier_id = ?", supplierID).
		Order("request_date desc, id desc").Find(&rows).Error
	return rows, err
}

func (s *Service) notifyCreated(order *models.Order) {
	if s.notifier == nil || order.DriverID == nil {
		return
	}
	s.notifier.NotifyDriver(*order.DriverID,
		fmt.Sprintf("New order #%d: %d bag(s) of %s for supplier %s",
			order.ID, order.Qty, order.ProductID, order.SupplierID))
}
