package api

import (
	"net/http"
	"strconv"
	"time"

	"hud-compliance/internal/domain"
	"hud-compliance/internal/repository"
	"hud-compliance/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type AllowanceHandler struct {
	Repo     repository.AllowanceRepository
	RentCalc *service.RentCalcService
}

func NewAllowanceHandler(repo repository.AllowanceRepository, rentCalc *service.RentCalcService) *AllowanceHandler {
	return &AllowanceHandler{Repo: repo, RentCalc: rentCalc}
}

type CreateAllowanceRequest struct {
	OrgID      string `json:"org_id" binding:"required"`
	PropertyID string `json:"property_id" binding:"required"`

	BedroomCount int `json:"bedroom_count" binding:"min=0,max=10"`

	HeatingCents    int64 `json:"heating_cents" binding:"min=0"`
	CookingCents    int64 `json:"cooking_cents" binding:"min=0"`
	LightingCents   int64 `json:"lighting_cents" binding:"min=0"`
	WaterSewerCents int64 `json:"water_sewer_cents" binding:"min=0"`
	TrashCents      int64 `json:"trash_cents" binding:"min=0"`
	TotalCents      int64 `json:"total_cents" binding:"required,min=0"`

	EffectiveDate string `json:"effective_date" binding:"required"`
}

type CalculateRentRequest struct {
	AnnualIncomeCents     int64 `json:"annual_income_cents" binding:"required,min=0"`
	UtilityAllowanceCents int64 `json:"utility_allowance_cents" binding:"min=0"`
	ContractRentCents     int64 `json:"contract_rent_cents" binding:"required,min=0"`
}

// ListAllowances 獲取水電補貼標準
func (h *AllowanceHandler) ListAllowances(c *gin.Context) {
	allowances, err := h.Repo.List(c.Request.Context(), c.Query("property_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": allowances})
}

// GetCurrentAllowance 取目前生效的補貼標準
func (h *AllowanceHandler) GetCurrentAllowance(c *gin.Context) {
	propertyID := c.Query("property_id")
	if propertyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 property_id"})
		return
	}
	bedroomCount, err := strconv.Atoi(c.DefaultQuery("bedroom_count", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bedroom_count 需為整數"})
		return
	}

	allowance, err := h.Repo.Current(c.Request.Context(), propertyID, bedroomCount, time.Now())
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "查無生效的補貼標準"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": allowance})
}

// CreateAllowance 新增補貼標準
func (h *AllowanceHandler) CreateAllowance(c *gin.Context) {
	var req CreateAllowanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	effectiveDate, err := time.Parse(dateLayout, req.EffectiveDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "effective_date 格式錯誤，需為 YYYY-MM-DD"})
		return
	}

	allowance := domain.UtilityAllowance{
		OrgID:           req.OrgID,
		PropertyID:      req.PropertyID,
		BedroomCount:    req.BedroomCount,
		HeatingCents:    req.HeatingCents,
		CookingCents:    req.CookingCents,
		LightingCents:   req.LightingCents,
		WaterSewerCents: req.WaterSewerCents,
		TrashCents:      req.TrashCents,
		TotalCents:      req.TotalCents,
		EffectiveDate:   effectiveDate,
	}

	if err := h.Repo.Create(c.Request.Context(), &allowance); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": allowance})
}

// CalculateRent HUD 租金試算 (30% 規則)
func (h *AllowanceHandler) CalculateRent(c *gin.Context) {
	var req CalculateRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.RentCalc.Calculate(req.AnnualIncomeCents, req.UtilityAllowanceCents, req.ContractRentCents)
	c.JSON(http.StatusOK, gin.H{"data": result})
}
