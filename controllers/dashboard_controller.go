package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/resp"
	"github.com/ismaeltironi-cloud/locadora-pro/repository"
)

type DashboardController struct {
	vehicles *repository.VehicleRepository
}

func NewDashboardController(vehicles *repository.VehicleRepository) *DashboardController {
	return &DashboardController{vehicles: vehicles}
}

// GET /dashboard
func (ctl *DashboardController) Summary(c *gin.Context) {
	counts, err := ctl.vehicles.CountByStatus()
	if err != nil {
		writeError(c, err)
		return
	}

	// Every status is present even when its count is zero.
	byStatus := map[entity.VehicleStatus]int64{
		entity.StatusAwaitingDropoff: 0,
		entity.StatusCheckedIn:       0,
		entity.StatusCheckedOut:      0,
		entity.StatusCancelled:       0,
	}
	var total int64
	for status, n := range counts {
		byStatus[status] = n
		total += n
	}

	resp.OK(c, gin.H{"total": total, "byStatus": byStatus})
}
