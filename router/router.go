package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-manager/controllers"
	"github.com/yeremiapane/restaurant-manager/kds"
	"github.com/yeremiapane/restaurant-manager/middlewares"
	"github.com/yeremiapane/restaurant-manager/services"
)

type Options struct {
	CORSOrigin         string
	RateLimitPerSecond int
}

func SetupRouter(svc *services.Services, hub *kds.Hub, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSOrigin))
	r.Use(middlewares.NewRateLimiter(opts.RateLimitPerSecond).RateLimit())

	customerCtrl := controllers.NewCustomerController(svc.Customers)
	tableCtrl := controllers.NewTableController(svc.Tables)
	menuCtrl := controllers.NewMenuController(svc.Menu)
	orderCtrl := controllers.NewOrderController(svc.Lifecycle, svc.Orders)
	paymentCtrl := controllers.NewPaymentController(svc.Lifecycle, svc.Orders)
	reservationCtrl := controllers.NewReservationController(svc.Reservations)
	staffCtrl := controllers.NewStaffController(svc.Staff)
	reportCtrl := controllers.NewReportController(svc.Reports)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Live updates for kitchen, floor and cashier screens
	r.GET("/ws", controllers.KDSHandler(hub))

	// CUSTOMERS
	r.POST("/customers", customerCtrl.CreateCustomer)
	r.GET("/customers", customerCtrl.GetAllCustomers)

	// TABLES
	r.POST("/tables", tableCtrl.CreateTable)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.PATCH("/tables/:table_id", tableCtrl.UpdateTableStatus)

	// MENU
	r.POST("/menu-items", menuCtrl.CreateMenuItem)
	r.GET("/menu-items", menuCtrl.GetMenuItems)
	r.PATCH("/menu-items/:item_id", menuCtrl.UpdateAvailability)

	// ORDERS
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders", orderCtrl.GetOrders)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)

	// PAYMENTS
	r.POST("/payments", paymentCtrl.ProcessPayment)
	r.GET("/payments/pending", paymentCtrl.GetPendingPayments)

	// RESERVATIONS
	r.POST("/reservations", reservationCtrl.CreateReservation)
	r.GET("/reservations", reservationCtrl.GetAllReservations)

	// STAFF
	r.POST("/staff", staffCtrl.CreateStaff)
	r.GET("/staff", staffCtrl.GetAllStaff)
	r.POST("/staff/:staff_id/assignments", staffCtrl.AssignStaff)
	r.GET("/orders/:order_id/staff", staffCtrl.GetAssignments)

	// REPORTS
	reports := r.Group("/reports")
	reports.Use(middlewares.ExportLoggerMiddleware())
	{
		reports.GET("/revenue", reportCtrl.GetRevenueMetrics)
		reports.GET("/sales", reportCtrl.GetSalesReport)
		reports.GET("/menu-performance", reportCtrl.GetMenuPerformance)
	}
	r.GET("/dashboard", reportCtrl.GetDashboard)

	return r
}
