package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/oficina"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/resp"
	"github.com/ismaeltironi-cloud/locadora-pro/services"
	"github.com/ismaeltironi-cloud/locadora-pro/utils"
)

type ServiceOrderController struct {
	orders *services.ServiceOrderService
}

func NewServiceOrderController(orders *services.ServiceOrderService) *ServiceOrderController {
	return &ServiceOrderController{orders: orders}
}

// serviceOrderRequest is a single dispatch body: the action field picks
// the behavior, no action means fetch (by id when present, else a
// filtered list).
type serviceOrderRequest struct {
	Action string `json:"action"`

	OSID   string               `json:"os_id"`
	Plates []string             `json:"plates"`
	Status entity.VehicleStatus `json:"status"`

	NewStatus   entity.VehicleStatus `json:"new_status"`
	PhotoBase64 string               `json:"photo_base64"`
	ContentType string               `json:"content_type"`
}

// POST /service-orders
func (ctl *ServiceOrderController) Dispatch(c *gin.Context) {
	var req serviceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	userID := utils.CurrentUserID(c)

	switch req.Action {
	case "":
		if req.OSID != "" {
			order, err := ctl.orders.Get(ctx, req.OSID)
			if err != nil {
				writeError(c, err)
				return
			}
			resp.OK(c, gin.H{"order": order})
			return
		}
		orders, err := ctl.orders.Fetch(ctx, oficina.Query{Plates: req.Plates, Status: req.Status})
		if err != nil {
			writeError(c, err)
			return
		}
		resp.OK(c, gin.H{"orders": orders})

	case "update_status":
		if req.OSID == "" || req.NewStatus == "" {
			resp.BadRequest(c, "update_status requires os_id and new_status")
			return
		}
		order, err := ctl.orders.UpdateStatus(ctx, userID, req.OSID, req.NewStatus)
		if err != nil {
			writeError(c, err)
			return
		}
		resp.OK(c, gin.H{"order": order})

	case "checkin_photo", "checkout_photo":
		if req.OSID == "" || req.PhotoBase64 == "" {
			resp.BadRequest(c, req.Action+" requires os_id and photo_base64")
			return
		}
		phase := entity.PhotoTypeCheckin
		if req.Action == "checkout_photo" {
			phase = entity.PhotoTypeCheckout
		}
		order, photoURL, err := ctl.orders.AttachPhoto(ctx, userID, req.OSID, phase, req.PhotoBase64, req.ContentType)
		if err != nil {
			writeError(c, err)
			return
		}
		resp.OK(c, gin.H{"order": order, "photo_url": photoURL})

	case "list_statuses":
		statuses, err := ctl.orders.ListStatuses(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		resp.OK(c, gin.H{"statuses": statuses})

	default:
		resp.BadRequest(c, "unknown action: "+req.Action)
	}
}
