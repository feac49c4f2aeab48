package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/repository"
)

type ReportService struct {
	vehicleRepo *repository.VehicleRepository
	userRepo    *repository.UserRepository
}

func NewReportService(vehicleRepo *repository.VehicleRepository, userRepo *repository.UserRepository) *ReportService {
	return &ReportService{vehicleRepo: vehicleRepo, userRepo: userRepo}
}

type ReportSummary struct {
	Total     int                          `json:"total"`
	ByStatus  map[entity.VehicleStatus]int `json:"byStatus"`
	ByCreator map[string]int               `json:"byCreator"`
}

// Aggregate computes the report numbers for a vehicle set. Pure; an
// empty set yields all-zero counts with every status present.
func Aggregate(vehicles []entity.Vehicle) ReportSummary {
	summary := ReportSummary{
		ByStatus: map[entity.VehicleStatus]int{
			entity.StatusAwaitingDropoff: 0,
			entity.StatusCheckedIn:       0,
			entity.StatusCheckedOut:      0,
			entity.StatusCancelled:       0,
		},
		ByCreator: map[string]int{},
	}
	for _, v := range vehicles {
		summary.Total++
		summary.ByStatus[v.Status]++
		creator := v.CreatedBy
		if creator == "" {
			creator = "unknown"
		}
		summary.ByCreator[creator]++
	}
	return summary
}

type VehicleReport struct {
	Summary  ReportSummary    `json:"summary"`
	Vehicles []entity.Vehicle `json:"vehicles"`
}

// Build fetches the filtered vehicle set and aggregates it.
func (s *ReportService) Build(clientID, createdBy string) (*VehicleReport, error) {
	vehicles, err := s.vehicleRepo.ForReport(clientID, createdBy)
	if err != nil {
		return nil, err
	}
	return &VehicleReport{Summary: Aggregate(vehicles), Vehicles: vehicles}, nil
}

var statusLabels = map[entity.VehicleStatus]string{
	entity.StatusAwaitingDropoff: "Aguardando Entrada",
	entity.StatusCheckedIn:       "Em Atendimento",
	entity.StatusCheckedOut:      "Finalizado",
	entity.StatusCancelled:       "Cancelado",
}

// RenderPDF renders the report. Layout mirrors the shop's existing
// report: header, summary table, per-user table, vehicle rows.
func (s *ReportService) RenderPDF(report *VehicleReport) ([]byte, error) {
	names := map[string]string{}
	if profiles, err := s.userRepo.ListWithRoles(); err == nil {
		for _, p := range profiles {
			names[p.ID] = p.FullName
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(26, 86, 219)
	pdf.CellFormat(0, 10, "Relatorio de Veiculos", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, "Gerado em: "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Resumo", "", 1, "L", false, 0, "")

	summary := report.Summary
	summaryHeader := []string{"Total", "Aguardando", "Em Atendimento", "Finalizados", "Cancelados"}
	summaryRow := []string{
		fmt.Sprint(summary.Total),
		fmt.Sprint(summary.ByStatus[entity.StatusAwaitingDropoff]),
		fmt.Sprint(summary.ByStatus[entity.StatusCheckedIn]),
		fmt.Sprint(summary.ByStatus[entity.StatusCheckedOut]),
		fmt.Sprint(summary.ByStatus[entity.StatusCancelled]),
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(26, 86, 219)
	pdf.SetTextColor(255, 255, 255)
	for _, h := range summaryHeader {
		pdf.CellFormat(38, 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, v := range summaryRow {
		pdf.CellFormat(38, 8, v, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(12)

	if len(summary.ByCreator) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Veiculos por Usuario", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(120, 8, "Usuario", "1", 0, "L", true, 0, "")
		pdf.CellFormat(40, 8, "Quantidade", "1", 1, "C", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		for creator, n := range summary.ByCreator {
			name := names[creator]
			if name == "" {
				name = "Nao identificado"
			}
			pdf.CellFormat(120, 8, name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 8, fmt.Sprint(n), "1", 1, "C", false, 0, "")
		}
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Veiculos", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(255, 255, 255)
	cols := []struct {
		label string
		width float64
	}{
		{"Placa", 25}, {"Modelo", 40}, {"Cliente", 45},
		{"Status", 35}, {"Check-in", 23}, {"Check-out", 23},
	}
	for _, col := range cols {
		pdf.CellFormat(col.width, 7, col.label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for _, v := range report.Vehicles {
		row := []string{
			v.Plate, v.Model, v.Client.Name, statusLabels[v.Status],
			formatStamp(v.CheckinAt), formatStamp(v.CheckoutAt),
		}
		for i, cell := range row {
			pdf.CellFormat(cols[i].width, 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatStamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02/01/2006 15:04")
}
