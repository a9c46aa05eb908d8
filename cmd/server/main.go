package main

import (
	"strings"

	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/auth"
	"teasupply-backend/internal/config"
	"teasupply-backend/internal/database"
	"teasupply-backend/internal/driver"
	"teasupply-backend/internal/inventory"
	"teasupply-backend/internal/mailer"
	"teasupply-backend/internal/notification"
	"teasupply-backend/internal/orders"
	"teasupply-backend/internal/rate"
	"teasupply-backend/internal/settlement"
	"teasupply-backend/internal/supplier"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/pusher/pusher-http-go/v5"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger()

	db := database.Init(cfg, log)
	defer database.Close(db, log)

	rdb := database.InitRedis(cfg, log)

	var pusherClient *pusher.Client
	if cfg.PusherAppID != "" {
		pusherClient = &pusher.Client{
			AppID:   cfg.PusherAppID,
			Key:     cfg.PusherKey,
			Secret:  cfg.PusherSecret,
			Cluster: cfg.PusherCluster,
		}
	}

	var pub notification.Publisher
	if pusherClient != nil {
		pub = pusherClient
	}
	dispatcher := notification.NewDispatcher(db, pub, log)

	orderService := orders.NewService(db, dispatcher, log)
	calculator := settlement.NewCalculator(db, dispatcher)
	otpStore := auth.NewOTPStore(rdb)
	mail := mailer.New(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.FiberErrorHandler(log),
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/supplier/login", auth.SupplierLoginHandler(db, cfg))
	api.Post("/driver/request-otp", auth.RequestOTPHandler(db, otpStore, mail, log))
	api.Post("/driver/verify-otp", auth.VerifyOTPHandler(db, otpStore, cfg))
	app.Post("/pusher/auth", auth.JWTMiddleware(cfg), notification.PusherAuthHandler(pusherClient))

	// Suppliers
	supplierRoutes := api.Group("/supplier")
	supplierRoutes.Post("/create", supplier.CreateSupplierHandler(db))
	supplierRoutes.Get("/all", supplier.ListSuppliersHandler(db))
	supplierRoutes.Get("/:id", supplier.GetSupplierHandler(db))
	supplierRoutes.Put("/update/:id", supplier.UpdateSupplierHandler(db))
	supplierRoutes.Delete("/delete/:id", supplier.DeleteSupplierHandler(db))

	// Tea collections
	collectionRoutes := api.Group("/supplierCollection")
	collectionRoutes.Post("/create", supplier.CreateCollectionHandler(db))
	collectionRoutes.Get("/all", supplier.ListCollectionsHandler(db))
	collectionRoutes.Get("/statistics", supplier.CollectionStatisticsHandler(db))
	collectionRoutes.Get("/supplier/:supplierId", supplier.ListCollectionsBySupplierHandler(db))
	collectionRoutes.Get("/:id", supplier.GetCollectionHandler(db))
	collectionRoutes.Delete("/delete/:id", supplier.DeleteCollectionHandler(db))

	// Loans
	loanRoutes := api.Group("/supplierLoan")
	loanRoutes.Post("/create", supplier.CreateLoanHandler(db))
	loanRoutes.Get("/all", supplier.ListLoansHandler(db))
	loanRoutes.Get("/statistics", supplier.LoanStatisticsHandler(db))
	loanRoutes.Get("/supplier/:supplierId", supplier.ListLoansBySupplierHandler(db))
	loanRoutes.Get("/:id", supplier.GetLoanHandler(db))
	loanRoutes.Put("/update/:id", supplier.UpdateLoanHandler(db))
	loanRoutes.Put("/updateStatus/:id", supplier.UpdateLoanStatusHandler(db))
	loanRoutes.Delete("/delete/:id", supplier.DeleteLoanHandler(db))

	// Advances
	advanceRoutes := api.Group("/supplierAdvance")
	advanceRoutes.Post("/create", supplier.CreateAdvanceHandler(db))
	advanceRoutes.Get("/all", supplier.ListAdvancesHandler(db))
	advanceRoutes.Get("/statistics", supplier.AdvanceStatisticsHandler(db))
	advanceRoutes.Get("/supplier/:supplierId", supplier.ListAdvancesBySupplierHandler(db))
	advanceRoutes.Get("/:id", supplier.GetAdvanceHandler(db))
	advanceRoutes.Put("/update/:id", supplier.UpdateAdvanceHandler(db))
	advanceRoutes.Put("/updateStatus/:id", supplier.UpdateAdvanceStatusHandler(db))
	advanceRoutes.Delete("/delete/:id", supplier.DeleteAdvanceHandler(db))

	// Settlement & payments
	paymentRoutes := api.Group("/supplierPayment")
	paymentRoutes.Get("/calculate/:supplierId", settlement.CalculateHandler(calculator))
	paymentRoutes.Post("/create", settlement.CreatePaymentHandler(calculator))
	paymentRoutes.Get("/all", settlement.ListPaymentsHandler(db))
	paymentRoutes.Get("/statistics", settlement.PaymentStatisticsHandler(calculator))
	paymentRoutes.Get("/supplier/:supplierId", settlement.ListPaymentsBySupplierHandler(db))
	paymentRoutes.Get("/:id", settlement.GetPaymentHandler(db))
	paymentRoutes.Put("/updateStatus/:id", settlement.UpdatePaymentStatusHandler(calculator))
	paymentRoutes.Delete("/delete/:id", settlement.DeletePaymentHandler(db))

	// Orders (tea packets & fertilizers)
	orderRoutes := api.Group("/teaPacketFertilizer")
	orderRoutes.Post("/create", orders.CreateOrderHandler(orderService))
	orderRoutes.Post("/createBulk", orders.CreateBulkOrdersHandler(orderService))
	orderRoutes.Get("/all", orders.ListOrdersHandler(orderService))
	orderRoutes.Get("/supplier/:supplierId", orders.ListOrdersBySupplierHandler(orderService))
	orderRoutes.Get("/:id", orders.GetOrderHandler(orderService))
	orderRoutes.Put("/update/:id", orders.UpdateOrderHandler(orderService))
	orderRoutes.Put("/updateStatus/:id", orders.UpdateOrderStatusHandler(orderService))
	orderRoutes.Delete("/delete/:id", orders.DeleteOrderHandler(orderService))

	// Products
	productRoutes := api.Group("/product")
	productRoutes.Post("/create", inventory.CreateProductHandler(db))
	productRoutes.Get("/all", inventory.ListProductsHandler(db))
	productRoutes.Get("/:id", inventory.GetProductHandler(db))
	productRoutes.Put("/update/:id", inventory.UpdateProductHandler(db))
	productRoutes.Put("/stock/:id", inventory.AdjustStockHandler(db))
	productRoutes.Delete("/delete/:id", inventory.DeleteProductHandler(db))

	// Drivers
	driverRoutes := api.Group("/driver")
	driverRoutes.Post("/create", driver.CreateDriverHandler(db))
	driverRoutes.Get("/all", driver.ListDriversHandler(db))
	driverRoutes.Get("/:id", driver.GetDriverHandler(db))
	driverRoutes.Put("/update/:id", driver.UpdateDriverHandler(db))
	driverRoutes.Delete("/delete/:id", driver.DeleteDriverHandler(db))

	// Leaf rate
	rateRoutes := api.Group("/rate")
	rateRoutes.Get("/:id", rate.GetRateHandler(db))
	rateRoutes.Put("/:id", rate.UpdateRateHandler(db))

	// Notifications (per-party, so each side only reads its own feed)
	notificationRoutes := api.Group("/notifications", auth.JWTMiddleware(cfg))
	notificationRoutes.Get("/supplier/:supplierId", auth.RequireRole(auth.RoleSupplier), notification.ListSupplierNotificationsHandler(db))
	notificationRoutes.Put("/supplier/:id/read", auth.RequireRole(auth.RoleSupplier), notification.MarkSupplierNotificationReadHandler(db))
	notificationRoutes.Get("/driver/:driverId", auth.RequireRole(auth.RoleDriver), notification.ListDriverNotificationsHandler(db))
	notificationRoutes.Put("/driver/:id/read", auth.RequireRole(auth.RoleDriver), notification.MarkDriverNotificationReadHandler(db))

	log.WithField("port", cfg.HTTPPort).Info("starting server")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
