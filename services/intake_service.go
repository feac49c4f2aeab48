package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/repository"
	"github.com/ismaeltironi-cloud/locadora-pro/utils"
)

// ExtractedData are the fields pulled out of an inbound service-request
// document.
type ExtractedData struct {
	Plate             string `json:"plate"`
	Model             string `json:"model"`
	KM                int    `json:"km"`
	CNPJ              string `json:"cnpj"`
	DefectDescription string `json:"defect_description"`
}

// Extractor turns free text (a forwarded service-request email or PDF
// text) into structured fields.
type Extractor interface {
	Extract(ctx context.Context, text string) (*ExtractedData, error)
}

// HTTPExtractor calls an external extraction gateway.
type HTTPExtractor struct {
	URL    string
	APIKey string
	httpc  *http.Client
}

func NewHTTPExtractor(url, apiKey string) *HTTPExtractor {
	return &HTTPExtractor{URL: url, APIKey: apiKey, httpc: &http.Client{Timeout: 30 * time.Second}}
}

func (e *HTTPExtractor) Extract(ctx context.Context, text string) (*ExtractedData, error) {
	if e.URL == "" {
		return nil, errors.New("extraction gateway not configured")
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	res, err := e.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction gateway replied %d: %s", res.StatusCode, raw)
	}

	var data ExtractedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode extraction response: %w", err)
	}
	return &data, nil
}

// IntakeService turns inbound service requests into vehicles awaiting
// drop-off. Requests arrive either pre-extracted or as raw text that
// goes through the extractor first.
type IntakeService struct {
	clientRepo  *repository.ClientRepository
	vehicleRepo *repository.VehicleRepository
	extractor   Extractor
}

func NewIntakeService(clientRepo *repository.ClientRepository, vehicleRepo *repository.VehicleRepository, extractor Extractor) *IntakeService {
	return &IntakeService{clientRepo: clientRepo, vehicleRepo: vehicleRepo, extractor: extractor}
}

type IntakeResult struct {
	VehicleID  string `json:"vehicleId"`
	ClientName string `json:"clientName"`
}

// Process matches the request's tax id against the client base and
// registers the vehicle. An unknown client is reported with the cnpj
// that failed to match so the operator can register it first.
func (s *IntakeService) Process(ctx context.Context, data *ExtractedData, rawText string) (*IntakeResult, error) {
	if data == nil {
		if rawText == "" {
			return nil, errors.New("no service request content")
		}
		extracted, err := s.extractor.Extract(ctx, rawText)
		if err != nil {
			return nil, err
		}
		data = extracted
	}

	plate := utils.NormalizePlate(data.Plate)
	if !utils.ValidPlate(plate) {
		return nil, ErrInvalidPlate
	}

	client, err := s.clientRepo.FindByCNPJ(data.CNPJ)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cnpj %s", ErrClientNotFound, utils.CNPJDigits(data.CNPJ))
	}
	if err != nil {
		return nil, err
	}

	km := data.KM
	vehicle := &entity.Vehicle{
		ClientID:          client.ID,
		Plate:             plate,
		Model:             data.Model,
		KM:                &km,
		DefectDescription: data.DefectDescription,
		Status:            entity.StatusAwaitingDropoff,
	}
	if err := s.vehicleRepo.Create(vehicle); err != nil {
		return nil, err
	}

	return &IntakeResult{VehicleID: vehicle.ID, ClientName: client.Name}, nil
}
