package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/palletform/binpack3d/internal/domain/dto"
	"github.com/palletform/binpack3d/internal/packing"
	"github.com/palletform/binpack3d/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testCatalog() []packing.Box {
	return []packing.Box{{
		ID: "SMALL", OuterLength: 220, OuterWidth: 220, OuterDepth: 220,
		InnerLength: 200, InnerWidth: 200, InnerDepth: 200,
		EmptyWeight: 500, MaxPayload: 10000,
	}}
}

func newTestRouter(handler *Handler) *gin.Engine {
	router := gin.New()
	api := router.Group("/api")
	api.POST("/pack", handler.Pack)
	api.POST("/pack/balanced", handler.PackBalanced)
	return router
}

func TestHandler_Pack_Success(t *testing.T) {
	handler := NewHandler(service.NewPackingService(testCatalog()))
	router := newTestRouter(handler)

	body := `{
		"items": [{"id": "item-1", "length": 100, "width": 100, "depth": 100, "weight": 500}],
		"boxes": [{"id": "SMALL", "outer_length": 220, "outer_width": 220, "outer_depth": 220, "inner_length": 200, "inner_width": 200, "inner_depth": 200, "empty_weight": 500, "max_payload": 10000}],
		"quantities": {"SMALL": 1}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/pack", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Data)
}

func TestHandler_Pack_InvalidBody(t *testing.T) {
	handler := NewHandler(service.NewPackingService(testCatalog()))
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/pack", bytes.NewBufferString(`{invalid`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Pack_FailsValidation(t *testing.T) {
	handler := NewHandler(service.NewPackingService(testCatalog()))
	router := newTestRouter(handler)

	body := `{
		"items": [{"id": "item-1", "length": 100, "width": 100, "depth": 100, "weight": 500}],
		"boxes": [{"id": "SMALL", "outer_length": 220, "outer_width": 220, "outer_depth": 220, "inner_length": 200, "inner_width": 200, "inner_depth": 200, "empty_weight": 500, "max_payload": 10000}],
		"quantities": {"MISSING": 1}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/pack", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Pack_ItemTooLarge(t *testing.T) {
	handler := NewHandler(service.NewPackingService(testCatalog()))
	router := newTestRouter(handler)

	body := `{
		"items": [{"id": "huge", "length": 10000, "width": 10000, "depth": 10000, "weight": 1}],
		"boxes": [{"id": "SMALL", "outer_length": 220, "outer_width": 220, "outer_depth": 220, "inner_length": 200, "inner_width": 200, "inner_depth": 200, "empty_weight": 500, "max_payload": 10000}],
		"quantities": {"SMALL": 1}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/pack", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandler_PackBalanced_Success(t *testing.T) {
	handler := NewHandler(service.NewPackingService(testCatalog()))
	router := newTestRouter(handler)

	body := `{
		"items": [
			{"id": "item-1", "length": 100, "width": 100, "depth": 100, "weight": 9000},
			{"id": "item-2", "length": 100, "width": 100, "depth": 100, "weight": 100}
		],
		"boxes": [{"id": "SMALL", "outer_length": 220, "outer_width": 220, "outer_depth": 220, "inner_length": 200, "inner_width": 200, "inner_depth": 200, "empty_weight": 500, "max_payload": 10000}],
		"quantities": {"SMALL": 2}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/pack/balanced", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
