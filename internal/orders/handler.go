package orders

import (
	"strconv"

	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	ID              uint               `json:"Order_ID"`
	SupplierID      string             `json:"S_RegisterID"`
	SupplierName    string             `json:"S_FullName,omitempty"`
	ProductID       string             `json:"ProductID"`
	ProductName     string             `json:"ProductName,omitempty"`
	RatePerBag      decimal.Decimal    `json:"Rate_per_Bag"`
	Qty             int                `json:"Qty"`
	Status          models.OrderStatus `json:"Order_Status"`
	RequestDate     string             `json:"Request_Date"`
	TotalItems      int                `json:"Total_Items"`
	TotalTeaPackets int                `json:"Total_TeaPackets"`
	TotalOtherItems int                `json:"Total_OtherItems"`
	DriverID        *string            `json:"Driver_RegisterID,omitempty"`
}

func toResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		SupplierID:      o.SupplierID,
		SupplierName:    o.Supplier.FullName,
		ProductID:       o.ProductID,
		ProductName:     o.Product.Name,
		RatePerBag:      o.Product.RatePerBag,
		Qty:             o.Qty,
		Status:          o.Status,
		RequestDate:     o.RequestDate.Format("2006-01-02"),
		TotalItems:      o.TotalItems,
		TotalTeaPackets: o.TotalTeaPackets,
		TotalOtherItems: o.TotalOtherItems,
		DriverID:        o.DriverID,
	}
}

func parseOrderID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, &apperr.ValidationError{Field: "id", Reason: "is invalid"}
	}
	return uint(id), nil
}

// GET /api/teaPacketFertilizer/all
func ListOrdersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := svc.List()
		if err != nil {
			return err
		}
		resp := make([]OrderResponse, 0, len(rows))
		for i := range rows {
			resp = append(resp, toResponse(&rows[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/teaPacketFertilizer/:id
func GetOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseOrderID(c)
		if err != nil {
			return err
		}
		order, err := svc.Get(id)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(order))
	}
}

// GET /api/teaPacketFertilizer/supplier/:supplierId
func ListOrdersBySupplierHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := svc.ListBySupplier(c.Params("supplierId"))
		if err != nil {
			return err
		}
		resp := make([]OrderResponse, 0, len(rows))
		for i := range rows {
			resp = append(resp, toResponse(&rows[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/teaPacketFertilizer/create
func CreateOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OrderInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		order, err := svc.Create(body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "Order created successfully",
			"Order_ID": order.ID,
		})
	}
}

// POST /api/teaPacketFertilizer/createBulk
func CreateBulkOrdersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body []OrderInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		created, err := svc.CreateBulk(body)
		if err != nil {
			return err
		}
		ids := make([]uint, 0, len(created))
		for _, o := range created {
			ids = append(ids, o.ID)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":   "Orders created successfully",
			"Order_IDs": ids,
		})
	}
}

// PUT /api/teaPacketFertilizer/update/:id
func UpdateOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseOrderID(c)
		if err != nil {
			return err
		}
		var body OrderInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if _, err := svc.Update(id, body); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Order updated successfully"})
	}
}

// PUT /api/teaPacketFertilizer/updateStatus/:id
func UpdateOrderStatusHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseOrderID(c)
		if err != nil {
			return err
		}
		var body struct {
			Status models.OrderStatus `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if _, err := svc.UpdateStatus(id, body.Status); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Order status updated successfully"})
	}
}

// DELETE /api/teaPacketFertilizer/delete/:id
func DeleteOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseOrderID(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(id); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Order deleted successfully"})
	}
}
