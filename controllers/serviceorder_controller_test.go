package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ismaeltironi-cloud/locadora-pro/services"
)

func newDispatchRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctl := NewServiceOrderController(services.NewServiceOrderService(nil, nil))
	r.POST("/service-orders", ctl.Dispatch)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestDispatchRejectsMalformedBody(t *testing.T) {
	r := newDispatchRouter()
	w := postJSON(r, "/service-orders", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDispatchRejectsUnknownAction(t *testing.T) {
	r := newDispatchRouter()
	w := postJSON(r, "/service-orders", `{"action":"explode"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown action")
}

func TestDispatchUpdateStatusRequiresFields(t *testing.T) {
	r := newDispatchRouter()

	w := postJSON(r, "/service-orders", `{"action":"update_status"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/service-orders", `{"action":"update_status","os_id":"os-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDispatchPhotoActionsRequireFields(t *testing.T) {
	r := newDispatchRouter()

	for _, action := range []string{"checkin_photo", "checkout_photo"} {
		w := postJSON(r, "/service-orders", `{"action":"`+action+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, action)
	}
}
