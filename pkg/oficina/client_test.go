package oficina

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/storage"
)

func TestFetchRequiresSelector(t *testing.T) {
	c := NewClient("http://example.invalid", "key", VariantFourState, storage.NewMemoryStore())
	_, err := c.Fetch(context.Background(), Query{})
	assert.ErrorIs(t, err, ErrNoSelector)
}

func TestFetchByPlatesNormalizesAndFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "key", r.Header.Get("apikey"))
		assert.Equal(t, "in.(ABC1234,XYZ9876)", r.URL.Query().Get("veiculo_placa"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"os-1","numero":"1042","status":"check_in","veiculo_placa":"ABC1234","prioridade":"alta"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", VariantFourState, storage.NewMemoryStore())
	orders, err := c.Fetch(context.Background(), Query{Plates: []string{"abc-1234", "xyz 9876"}})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "os-1", orders[0].ID)
	assert.Equal(t, "1042", orders[0].Number)

	// Unknown columns land in the side map, not on the floor.
	require.Contains(t, orders[0].Extra, "prioridade")
	var prio string
	require.NoError(t, json.Unmarshal(orders[0].Extra["prioridade"], &prio))
	assert.Equal(t, "alta", prio)
}

func TestFetchByStatusTranslatesVocabulary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.aberta", r.URL.Query().Get("status"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", VariantThreeState, storage.NewMemoryStore())
	_, err := c.Fetch(context.Background(), Query{Status: entity.StatusCheckedIn})
	require.NoError(t, err)
}

func TestFetchByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", VariantFourState, storage.NewMemoryStore())
	_, err := c.FetchByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusEnumRejectionProbesValidSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "rpc/list_os_statuses") {
			w.Write([]byte(`["aberta","finalizada","cancelado"]`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"22P02","message":"invalid input value for enum os_status: \"check_out\""}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", VariantFourState, storage.NewMemoryStore())
	_, err := c.UpdateStatus(context.Background(), "os-1", entity.StatusCheckedOut)

	var enumErr *EnumRejectedError
	require.ErrorAs(t, err, &enumErr)
	assert.Equal(t, "check_out", enumErr.Attempted)
	assert.Equal(t, []string{"aberta", "finalizada", "cancelado"}, enumErr.Valid)
}

func TestAttachPhotoCheckout(t *testing.T) {
	var patched map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
		w.Write([]byte(`[{"id":"os-1","status":"check_out"}]`))
	}))
	defer srv.Close()

	store := storage.NewMemoryStore()
	c := NewClient(srv.URL, "key", VariantFourState, store)
	order, photoURL, err := c.AttachPhoto(context.Background(), "os-1", entity.PhotoTypeCheckout, []byte("jpegdata"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "os-1", order.ID)

	// Deterministic key shape: {order_id}/{phase}_{timestamp}.jpg
	require.Len(t, store.Objects, 1)
	for key := range store.Objects {
		assert.True(t, strings.HasPrefix(key, "os-1/checkout_"), key)
		assert.True(t, strings.HasSuffix(key, ".jpg"), key)
	}
	assert.Equal(t, photoURL, patched["checkout_photo_url"])
	assert.Equal(t, "check_out", patched["status"])
	assert.NotEmpty(t, patched["data_conclusao"])
}

func TestAttachPhotoRowUpdateFailureLeavesOrphan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	defer srv.Close()

	store := storage.NewMemoryStore()
	c := NewClient(srv.URL, "key", VariantFourState, store)
	_, photoURL, err := c.AttachPhoto(context.Background(), "os-9", entity.PhotoTypeCheckin, []byte("jpegdata"), "image/jpeg")

	var orphan *PhotoOrphanedError
	require.ErrorAs(t, err, &orphan)
	assert.Equal(t, photoURL, orphan.PhotoURL)
	// The uploaded object is left in place for reconciliation.
	assert.Len(t, store.Objects, 1)
}

func TestUpdateStatusNotEnumFailurePassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"JWT expired"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", VariantFourState, storage.NewMemoryStore())
	_, err := c.UpdateStatus(context.Background(), "os-1", entity.StatusCancelled)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	var enumErr *EnumRejectedError
	assert.False(t, errors.As(err, &enumErr))
}
