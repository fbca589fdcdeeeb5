package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/services"
	"github.com/yeremiapane/restaurant-manager/utils"
)

type MenuController struct {
	Menu *services.MenuService
}

func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{Menu: menu}
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req services.NewMenuItem
	if !bindJSON(c, &req) {
		return
	}

	id, err := mc.Menu.AddMenuItem(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created successfully", gin.H{"id": id})
}

// GetMenuItems -> lists the menu; ?available=true hides out-of-stock items
func (mc *MenuController) GetMenuItems(c *gin.Context) {
	availableOnly, _ := strconv.ParseBool(c.Query("available"))

	var (
		items []models.MenuItem
		err   error
	)
	if availableOnly {
		items, err = mc.Menu.GetAvailableMenuItems(c.Request.Context())
	} else {
		items, err = mc.Menu.GetAllMenuItems(c.Request.Context())
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

func (mc *MenuController) UpdateAvailability(c *gin.Context) {
	id, ok := paramID(c, "item_id")
	if !ok {
		return
	}
	var body struct {
		Availability models.Availability `json:"availability"`
	}
	if !bindJSON(c, &body) {
		return
	}

	if err := mc.Menu.UpdateMenuItemAvailability(c.Request.Context(), id, body.Availability); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item availability updated", gin.H{"id": id, "availability": body.Availability})
}
