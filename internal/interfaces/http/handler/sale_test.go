package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pos/backend/internal/interfaces/http/dto"
	"github.com/pos/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSaleHandler_Settle_Validation(t *testing.T) {
	router := gin.New()
	handler := NewSaleHandler(nil)
	router.POST("/sales", handler.Settle)

	t.Run("rejects malformed JSON", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/sales", `{"store_id":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Ok)
	})

	t.Run("rejects a sale without lines", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/sales",
			`{"store_id":"550e8400-e29b-41d4-a716-446655440000","lines":[]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Ok)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("rejects a missing store ID", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/sales",
			`{"lines":[{"product_id":"550e8400-e29b-41d4-a716-446655440001","quantity":"1","unit_price":"10"}]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})
}

func TestReturnHandler_Settle_Validation(t *testing.T) {
	router := gin.New()
	handler := NewReturnHandler(nil)
	router.POST("/returns", handler.Settle)

	t.Run("rejects an unknown restock action", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/returns",
			`{"store_id":"550e8400-e29b-41d4-a716-446655440000",`+
				`"sale_id":"550e8400-e29b-41d4-a716-446655440001",`+
				`"items":[{"product_id":"550e8400-e29b-41d4-a716-446655440002",`+
				`"quantity":"1","restock_action":"SHELVE","refund_type":"FULL"}]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Ok)
	})

	t.Run("rejects an empty item list", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/returns",
			`{"store_id":"550e8400-e29b-41d4-a716-446655440000",`+
				`"sale_id":"550e8400-e29b-41d4-a716-446655440001","items":[]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHoldHandler_Validation(t *testing.T) {
	router := gin.New()
	handler := NewHoldHandler(nil)
	router.POST("/holds/:id/resume", handler.Resume)
	router.DELETE("/holds/:id", handler.Discard)

	t.Run("rejects a malformed hold ID on resume", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/holds/not-a-uuid/resume", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a discard without store scoping", func(t *testing.T) {
		w := performRequest(router, http.MethodDelete,
			"/holds/550e8400-e29b-41d4-a716-446655440000", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSystemHandler(t *testing.T) {
	router := gin.New()
	handler := NewSystemHandler()
	router.GET("/system/ping", handler.Ping)
	router.GET("/system/info", handler.Info)

	t.Run("ping answers pong", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/system/ping", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pong")
	})

	t.Run("info reports runtime details", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/system/info", "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Ok)
	})
}
