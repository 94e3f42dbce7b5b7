package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hud-compliance/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRentRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAllowanceHandler(nil, service.NewRentCalcService())

	r := gin.New()
	r.POST("/api/v1/calculate-rent", h.CalculateRent)
	return r
}

func TestCalculateRentEndpoint(t *testing.T) {
	r := setupRentRouter()

	body := `{"annual_income_cents": 2400000, "utility_allowance_cents": 10000, "contract_rent_cents": 120000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate-rent", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data service.RentCalculation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(50000), resp.Data.TenantRentCents)
	assert.Equal(t, int64(70000), resp.Data.SubsidyCents)
}

func TestCalculateRentEndpointValidation(t *testing.T) {
	r := setupRentRouter()

	// 缺少必填欄位
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate-rent", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
