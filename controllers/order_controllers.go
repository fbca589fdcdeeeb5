package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/services"
	"github.com/yeremiapane/restaurant-manager/utils"
)

type OrderController struct {
	Lifecycle *services.OrderLifecycle
	Orders    *services.OrderService
}

func NewOrderController(lifecycle *services.OrderLifecycle, orders *services.OrderService) *OrderController {
	return &OrderController{Lifecycle: lifecycle, Orders: orders}
}

// CreateOrder -> places an order and occupies the table
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		CustomerID uint                 `json:"customer_id"`
		TableID    uint                 `json:"table_id"`
		Items      []services.OrderLine `json:"items"`
	}
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	id, err := oc.Lifecycle.CreateOrder(ctx, req.CustomerID, req.TableID, req.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	details, err := oc.Orders.GetOrderDetails(ctx, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", details)
}

// GetOrders -> lists orders newest first, optionally filtered by ?status=
func (oc *OrderController) GetOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	orders, err := oc.Orders.GetOrdersByStatus(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := paramID(c, "order_id")
	if !ok {
		return
	}
	details, err := oc.Orders.GetOrderDetails(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order details", details)
}

// CancelOrder -> cancels a pending order and frees the table
func (oc *OrderController) CancelOrder(c *gin.Context) {
	id, ok := paramID(c, "order_id")
	if !ok {
		return
	}
	if err := oc.Lifecycle.CancelOrder(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", gin.H{"id": id, "status": models.OrderCancelled})
}
