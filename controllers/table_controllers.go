package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/services"
	"github.com/yeremiapane/restaurant-manager/utils"
)

type TableController struct {
	Tables *services.TableService
}

func NewTableController(tables *services.TableService) *TableController {
	return &TableController{Tables: tables}
}

// CreateTable -> adds a table, AVAILABLE unless a status is given
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		SeatingCapacity int                `json:"seating_capacity"`
		BookingStatus   models.TableStatus `json:"booking_status"`
	}
	if !bindJSON(c, &req) {
		return
	}

	id, err := tc.Tables.AddTable(c.Request.Context(), req.SeatingCapacity, req.BookingStatus)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", gin.H{"id": id})
}

func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Tables.GetAllTables(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// UpdateTableStatus -> sets the booking status of one table
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	id, ok := paramID(c, "table_id")
	if !ok {
		return
	}
	var body struct {
		BookingStatus models.TableStatus `json:"booking_status"`
	}
	if !bindJSON(c, &body) {
		return
	}

	if err := tc.Tables.UpdateTableStatus(c.Request.Context(), id, body.BookingStatus); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table status updated", gin.H{"id": id, "booking_status": body.BookingStatus})
}
