package oficina

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/storage"
	"github.com/ismaeltironi-cloud/locadora-pro/utils"
)

// Client talks to the external Oficina Pro system over its PostgREST
// API. Ownership of the records stays with the external system; this
// adapter only reads and issues the defined status/photo updates.
type Client struct {
	baseURL string
	apiKey  string
	variant Variant
	httpc   *http.Client
	store   storage.ObjectStore
}

func NewClient(baseURL, apiKey string, variant Variant, store storage.ObjectStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		variant: variant,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		store:   store,
	}
}

// Query selects service orders. Exactly the three selector shapes of
// the external endpoint: by plate set, by status, or by id.
type Query struct {
	Plates []string
	Status entity.VehicleStatus
	ID     string
}

// Fetch runs a query. A query with no selector at all is a caller bug,
// not an empty result.
func (c *Client) Fetch(ctx context.Context, q Query) ([]Order, error) {
	if len(q.Plates) == 0 && q.Status == "" && q.ID == "" {
		return nil, ErrNoSelector
	}

	params := url.Values{}
	params.Set("select", "*")
	if q.ID != "" {
		params.Set("id", "eq."+q.ID)
	}
	if len(q.Plates) > 0 {
		plates := make([]string, 0, len(q.Plates))
		for _, p := range q.Plates {
			plates = append(plates, utils.NormalizePlate(p))
		}
		params.Set("veiculo_placa", "in.("+strings.Join(plates, ",")+")")
	}
	if q.Status != "" {
		ext, err := c.variant.ExternalStatus(q.Status)
		if err != nil {
			return nil, err
		}
		params.Set("status", "eq."+ext)
	}

	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/rest/v1/service_orders?"+params.Encode(), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FetchByID returns a single order or ErrNotFound.
func (c *Client) FetchByID(ctx context.Context, id string) (*Order, error) {
	orders, err := c.Fetch(ctx, Query{ID: id})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return &orders[0], nil
}

// UpdateStatus writes a canonical status to the external row, translated
// into the deployed vocabulary. Check-out also stamps the completion
// date. An enum rejection triggers a diagnostic probe of the currently
// valid values.
func (c *Client) UpdateStatus(ctx context.Context, id string, to entity.VehicleStatus) (*Order, error) {
	ext, err := c.variant.ExternalStatus(to)
	if err != nil {
		return nil, err
	}

	patch := map[string]any{"status": ext}
	if to == entity.StatusCheckedOut {
		patch["data_conclusao"] = time.Now().UTC().Format(time.RFC3339)
	}
	return c.patchOrder(ctx, id, ext, patch)
}

// AttachPhoto uploads photo evidence for a check-in or check-out and
// then updates the order row. The two steps are not atomic in the
// external system: when the row update fails after a successful upload
// the object is left in place and the failure is reported as
// PhotoOrphanedError rather than a total failure.
func (c *Client) AttachPhoto(ctx context.Context, id string, phase entity.PhotoType, data []byte, contentType string) (*Order, string, error) {
	key := fmt.Sprintf("%s/%s_%d.%s", id, phase, time.Now().Unix(), utils.ImageExt(contentType))
	photoURL, err := c.store.PutPublic(ctx, key, data, contentType)
	if err != nil {
		return nil, "", fmt.Errorf("upload photo: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	patch := map[string]any{}
	extStatus := ""
	switch phase {
	case entity.PhotoTypeCheckin:
		patch["checkin_photo_url"] = photoURL
		patch["data_entrada"] = now
	case entity.PhotoTypeCheckout:
		ext, err := c.variant.ExternalStatus(entity.StatusCheckedOut)
		if err != nil {
			return nil, "", err
		}
		extStatus = ext
		patch["checkout_photo_url"] = photoURL
		patch["data_conclusao"] = now
		patch["status"] = ext
	default:
		return nil, "", fmt.Errorf("unknown photo phase %q", phase)
	}

	order, err := c.patchOrder(ctx, id, extStatus, patch)
	if err != nil {
		return nil, photoURL, &PhotoOrphanedError{PhotoURL: photoURL, Cause: err}
	}
	return order, photoURL, nil
}

// ListStatuses probes the external store for its currently accepted
// status values. Diagnostic only.
func (c *Client) ListStatuses(ctx context.Context) ([]string, error) {
	var statuses []string
	err := c.do(ctx, http.MethodPost, "/rest/v1/rpc/list_os_statuses", map[string]any{}, &statuses)
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

func (c *Client) patchOrder(ctx context.Context, id, attemptedStatus string, patch map[string]any) (*Order, error) {
	var orders []Order
	err := c.do(ctx, http.MethodPatch, "/rest/v1/service_orders?id=eq."+url.QueryEscape(id), patch, &orders)
	if err != nil {
		if attemptedStatus != "" && isEnumRejection(err) {
			valid, probeErr := c.ListStatuses(ctx)
			if probeErr != nil {
				valid = nil
			}
			return nil, &EnumRejectedError{Attempted: attemptedStatus, Valid: valid, Cause: err}
		}
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return &orders[0], nil
}

func isEnumRejection(err error) bool {
	apiErr, ok := err.(*APIError)
	if !ok {
		return false
	}
	return strings.Contains(apiErr.Body, "22P02") ||
		strings.Contains(apiErr.Body, "invalid input value for enum")
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPatch {
		req.Header.Set("Prefer", "return=representation")
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("oficina pro request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read oficina pro response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &APIError{StatusCode: res.StatusCode, Body: string(raw)}
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode oficina pro response: %w", err)
		}
	}
	return nil
}
