package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-manager/services"
	"github.com/yeremiapane/restaurant-manager/utils"
)

type StaffController struct {
	Staff *services.StaffService
}

func NewStaffController(staff *services.StaffService) *StaffController {
	return &StaffController{Staff: staff}
}

func (sc *StaffController) CreateStaff(c *gin.Context) {
	var req services.NewStaff
	if !bindJSON(c, &req) {
		return
	}

	id, err := sc.Staff.AddStaff(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Staff member added successfully", gin.H{"id": id})
}

func (sc *StaffController) GetAllStaff(c *gin.Context) {
	staff, err := sc.Staff.GetAllStaff(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of staff", staff)
}

// AssignStaff -> links a staff member to an order
func (sc *StaffController) AssignStaff(c *gin.Context) {
	staffID, ok := paramID(c, "staff_id")
	if !ok {
		return
	}
	var body struct {
		OrderID     uint   `json:"order_id"`
		RoleInOrder string `json:"role_in_order"`
	}
	if !bindJSON(c, &body) {
		return
	}

	if err := sc.Staff.AssignStaff(c.Request.Context(), staffID, body.OrderID, body.RoleInOrder); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Staff assigned to order", gin.H{
		"staff_id":      staffID,
		"order_id":      body.OrderID,
		"role_in_order": body.RoleInOrder,
	})
}

func (sc *StaffController) GetAssignments(c *gin.Context) {
	orderID, ok := paramID(c, "order_id")
	if !ok {
		return
	}

	assignments, err := sc.Staff.GetAssignments(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Staff assigned to order", assignments)
}
