package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/services"
	"github.com/yeremiapane/restaurant-manager/utils"
)

type PaymentController struct {
	Lifecycle *services.OrderLifecycle
	Orders    *services.OrderService
}

func NewPaymentController(lifecycle *services.OrderLifecycle, orders *services.OrderService) *PaymentController {
	return &PaymentController{Lifecycle: lifecycle, Orders: orders}
}

// GetPendingPayments -> orders awaiting payment and the amount check in force
func (pc *PaymentController) GetPendingPayments(c *gin.Context) {
	orders, err := pc.Orders.GetPendingOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders awaiting payment", gin.H{
		"amount_check": pc.Lifecycle.Policy(),
		"orders":       orders,
	})
}

// ProcessPayment -> settles an order, completing it and freeing its table
func (pc *PaymentController) ProcessPayment(c *gin.Context) {
	var req struct {
		OrderID     uint               `json:"order_id"`
		PaymentMode models.PaymentMode `json:"payment_mode"`
		Amount      decimal.Decimal    `json:"amount"`
	}
	if !bindJSON(c, &req) {
		return
	}

	if err := pc.Lifecycle.ProcessPayment(c.Request.Context(), req.OrderID, req.PaymentMode, req.Amount); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Payment processed successfully", gin.H{
		"order_id":     req.OrderID,
		"payment_mode": req.PaymentMode,
		"amount":       req.Amount.StringFixed(2),
		"status":       models.OrderCompleted,
	})
}
