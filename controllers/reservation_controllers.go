package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-manager/services"
	"github.com/yeremiapane/restaurant-manager/utils"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: reservations}
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req services.NewReservation
	if !bindJSON(c, &req) {
		return
	}

	id, err := rc.Reservations.AddReservation(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", gin.H{"id": id})
}

func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	reservations, err := rc.Reservations.GetAllReservations(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}
