package notification

import (
	"teasupply-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Publisher pushes a message to a realtime channel. Satisfied by
// *pusher.Client; nil when no pusher credentials are configured.
type Publisher interface {
	Trigger(channel string, eventName string, data interface{}) error
}

// Dispatcher delivers best-effort state-change messages. It is always
// called after the owning transaction has committed; every failure is
// logged and swallowed so it can never affect the primary operation.
type Dispatcher struct {
	db  *gorm.DB
	pub Publisher
	log *logrus.Logger
}

func NewDispatcher(db *gorm.DB, pub Publisher, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{db: db, pub: pub, log: log}
}

func (d *Dispatcher) NotifySupplier(supplierID, message string) {
	n := models.SupplierNotification{SupplierID: supplierID, Message: message}
	if err := d.db.Create(&n).Error; err != nil {
		d.log.WithError(err).WithField("supplier_id", supplierID).
			Warn("supplier notification not stored")
	}
	d.push("supplier-"+supplierID, message)
}

func (d *Dispatcher) NotifyDriver(driverID, message string) {
	n := models.DriverNotification{DriverID: driverID, Message: message}
	if err := d.db.Create(&n).Error; err != nil {
		d.log.WithError(err).WithField("driver_id", driverID).
			Warn("driver notification not stored")
	}
	d.push("driver-"+driverID, message)
}

func (d *Dispatcher) push(channel, message string) {
	if d.pub == nil {
		return
	}
	if err := d.pub.Trigger(channel, "notification", map[string]string{"message": message}); err != nil {
		d.log.WithError(err).WithField("channel", channel).Warn("pusher trigger failed")
	}
}
