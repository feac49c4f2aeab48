package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ismaeltironi-cloud/locadora-pro/pkg/resp"
	"github.com/ismaeltironi-cloud/locadora-pro/services"
)

type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// GET /reports/vehicles?client=&createdBy=
func (ctl *ReportController) Vehicles(c *gin.Context) {
	report, err := ctl.reports.Build(c.Query("client"), c.Query("createdBy"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, report)
}

// GET /reports/vehicles/pdf?client=&createdBy=
func (ctl *ReportController) VehiclesPDF(c *gin.Context) {
	report, err := ctl.reports.Build(c.Query("client"), c.Query("createdBy"))
	if err != nil {
		writeError(c, err)
		return
	}

	pdf, err := ctl.reports.RenderPDF(report)
	if err != nil {
		writeError(c, err)
		return
	}

	filename := fmt.Sprintf("relatorio-veiculos-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
