package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/resp"
	"github.com/ismaeltironi-cloud/locadora-pro/services"
	"github.com/ismaeltironi-cloud/locadora-pro/utils"
)

type VehicleController struct {
	vehicles *services.VehicleService
}

func NewVehicleController(vehicles *services.VehicleService) *VehicleController {
	return &VehicleController{vehicles: vehicles}
}

// GET /vehicles?client=
func (ctl *VehicleController) List(c *gin.Context) {
	vehicles, err := ctl.vehicles.List(c.Query("client"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, vehicles)
}

// GET /vehicles/prefill?plate=
// A miss is a normal empty answer, not a 404.
func (ctl *VehicleController) Prefill(c *gin.Context) {
	v, err := ctl.vehicles.PrefillByPlate(c.Query("plate"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, v)
}

// GET /vehicles/:id
func (ctl *VehicleController) Get(c *gin.Context) {
	v, err := ctl.vehicles.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, v)
}

type vehicleRequest struct {
	ClientID          string `json:"clientId" binding:"required"`
	Plate             string `json:"plate" binding:"required"`
	Brand             string `json:"brand"`
	Model             string `json:"model"`
	Year              int    `json:"year"`
	Color             string `json:"color"`
	Chassis           string `json:"chassis"`
	KM                *int   `json:"km"`
	DefectDescription string `json:"defectDescription"`
	NeedsTow          bool   `json:"needsTow"`
}

// POST /vehicles
func (ctl *VehicleController) Create(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	v := entity.Vehicle{
		ClientID:          req.ClientID,
		Plate:             req.Plate,
		Brand:             req.Brand,
		Model:             req.Model,
		Year:              req.Year,
		Color:             req.Color,
		Chassis:           req.Chassis,
		KM:                req.KM,
		DefectDescription: req.DefectDescription,
		NeedsTow:          req.NeedsTow,
	}
	if err := ctl.vehicles.Create(utils.CurrentUserID(c), &v); err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, v)
}

// PATCH /vehicles/:id
func (ctl *VehicleController) Update(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	// The service applies its editable-column whitelist.
	v, err := ctl.vehicles.UpdateContent(utils.CurrentUserID(c), c.Param("id"), updates)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, v)
}

// GET /vehicles/:id/photos
func (ctl *VehicleController) Photos(c *gin.Context) {
	photos, err := ctl.vehicles.ListPhotos(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, photos)
}

type transitionRequest struct {
	PhotoBase64 string `json:"photoBase64"`
	ContentType string `json:"contentType"`
}

func (req *transitionRequest) photo() *services.PhotoInput {
	if req.PhotoBase64 == "" {
		return nil
	}
	return &services.PhotoInput{Base64: req.PhotoBase64, ContentType: req.ContentType}
}

// POST /vehicles/:id/checkin
// An empty body is the admin manual path; the service enforces who may
// take it.
func (ctl *VehicleController) CheckIn(c *gin.Context) {
	var req transitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
	}

	v, err := ctl.vehicles.CheckIn(c.Request.Context(), utils.CurrentUserID(c), c.Param("id"), req.photo())
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, v)
}

// POST /vehicles/:id/checkout
func (ctl *VehicleController) CheckOut(c *gin.Context) {
	var req transitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
	}

	v, err := ctl.vehicles.CheckOut(c.Request.Context(), utils.CurrentUserID(c), c.Param("id"), req.photo())
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, v)
}

// POST /vehicles/:id/cancel
func (ctl *VehicleController) Cancel(c *gin.Context) {
	v, err := ctl.vehicles.Cancel(c.Request.Context(), utils.CurrentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, v)
}
