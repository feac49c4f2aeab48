package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/ismaeltironi-cloud/locadora-pro/pkg/resp"
	"github.com/ismaeltironi-cloud/locadora-pro/services"
	"github.com/ismaeltironi-cloud/locadora-pro/utils"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (ctl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, profile, role, err := ctl.auth.Login(req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	resp.OK(c, gin.H{
		"token":       token,
		"profile":     profile,
		"role":        role,
		"permissions": role.Effective(),
	})
}

// GET /auth/me
func (ctl *AuthController) Me(c *gin.Context) {
	profile, role, err := ctl.auth.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"profile":     profile,
		"role":        role,
		"permissions": role.Effective(),
	})
}

type updateProfileRequest struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

// PATCH /auth/me
func (ctl *AuthController) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	profile, err := ctl.auth.UpdateProfile(utils.CurrentUserID(c), req.FullName, req.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, profile)
}
