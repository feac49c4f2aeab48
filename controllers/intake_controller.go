package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/ismaeltironi-cloud/locadora-pro/pkg/resp"
	"github.com/ismaeltironi-cloud/locadora-pro/services"
)

type IntakeController struct {
	intake *services.IntakeService
}

func NewIntakeController(intake *services.IntakeService) *IntakeController {
	return &IntakeController{intake: intake}
}

type intakeRequest struct {
	Extracted *services.ExtractedData `json:"extracted"`
	PDFText   string                  `json:"pdf_text"`
}

// POST /intake/service-requests
func (ctl *IntakeController) Process(c *gin.Context) {
	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Extracted == nil && req.PDFText == "" {
		resp.BadRequest(c, "either extracted fields or pdf_text is required")
		return
	}

	result, err := ctl.intake.Process(c.Request.Context(), req.Extracted, req.PDFText)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, result)
}
