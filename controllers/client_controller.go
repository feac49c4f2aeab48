package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/resp"
	"github.com/ismaeltironi-cloud/locadora-pro/services"
	"github.com/ismaeltironi-cloud/locadora-pro/utils"
)

type ClientController struct {
	clients *services.ClientService
}

func NewClientController(clients *services.ClientService) *ClientController {
	return &ClientController{clients: clients}
}

// GET /clients?q=
func (ctl *ClientController) List(c *gin.Context) {
	clients, err := ctl.clients.List(c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, clients)
}

// GET /clients/:id
func (ctl *ClientController) Get(c *gin.Context) {
	client, err := ctl.clients.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, client)
}

type clientRequest struct {
	Name    string `json:"name" binding:"required"`
	CNPJ    string `json:"cnpj" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// POST /clients
func (ctl *ClientController) Create(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	client := entity.Client{
		Name:    req.Name,
		CNPJ:    req.CNPJ,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := ctl.clients.Create(utils.CurrentUserID(c), &client); err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, client)
}

// PATCH /clients/:id
func (ctl *ClientController) Update(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	// The service applies its editable-column whitelist.
	client, err := ctl.clients.Update(utils.CurrentUserID(c), c.Param("id"), updates)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, client)
}

// DELETE /clients/:id
func (ctl *ClientController) Delete(c *gin.Context) {
	if err := ctl.clients.Delete(utils.CurrentUserID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
