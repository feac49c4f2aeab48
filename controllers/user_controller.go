package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/resp"
	"github.com/ismaeltironi-cloud/locadora-pro/services"
	"github.com/ismaeltironi-cloud/locadora-pro/utils"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// GET /users
func (ctl *UserController) List(c *gin.Context) {
	profiles, err := ctl.users.List(utils.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, profiles)
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Username string `json:"username" binding:"required"`
	FullName string `json:"fullName"`

	Role        entity.AppRole `json:"role"`
	CanView     bool           `json:"canView"`
	CanEdit     bool           `json:"canEdit"`
	CanCheckin  bool           `json:"canCheckin"`
	CanCheckout bool           `json:"canCheckout"`
}

// POST /users
func (ctl *UserController) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	profile, err := ctl.users.Create(utils.CurrentUserID(c), services.CreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		Username:    req.Username,
		FullName:    req.FullName,
		Role:        req.Role,
		CanView:     req.CanView,
		CanEdit:     req.CanEdit,
		CanCheckin:  req.CanCheckin,
		CanCheckout: req.CanCheckout,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, profile)
}

type updateRoleRequest struct {
	Role        entity.AppRole `json:"role" binding:"required"`
	CanView     bool           `json:"canView"`
	CanEdit     bool           `json:"canEdit"`
	CanCheckin  bool           `json:"canCheckin"`
	CanCheckout bool           `json:"canCheckout"`
}

// PUT /users/:id/role
func (ctl *UserController) UpdateRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	role, err := ctl.users.UpdateRole(utils.CurrentUserID(c), c.Param("id"),
		req.Role, req.CanView, req.CanEdit, req.CanCheckin, req.CanCheckout)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, role)
}
