package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-manager/services"
	"github.com/yeremiapane/restaurant-manager/utils"
)

type CustomerController struct {
	Customers *services.CustomerService
}

func NewCustomerController(customers *services.CustomerService) *CustomerController {
	return &CustomerController{Customers: customers}
}

// CreateCustomer -> registers a new customer
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req services.NewCustomer
	if !bindJSON(c, &req) {
		return
	}

	id, err := cc.Customers.AddCustomer(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Customer added successfully", gin.H{"id": id})
}

// GetAllCustomers -> lists every customer
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	customers, err := cc.Customers.GetAllCustomers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}
