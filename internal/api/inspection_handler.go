package api

import (
	"net/http"
	"strconv"
	"time"

	"hud-compliance/internal/domain"
	"hud-compliance/internal/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InspectionHandler struct {
	Repo repository.InspectionRepository
}

func NewInspectionHandler(repo repository.InspectionRepository) *InspectionHandler {
	return &InspectionHandler{Repo: repo}
}

type CreateInspectionRequest struct {
	OrgID        string `json:"org_id" binding:"required"`
	PropertyID   string `json:"property_id" binding:"required"`
	PropertyName string `json:"property_name"`

	InspectionDate string `json:"inspection_date" binding:"required"`
	InspectionType string `json:"inspection_type" binding:"required,oneof=initial annual complaint follow_up"`
	OverallScore   int    `json:"overall_score" binding:"min=0,max=100"`
	Status         string `json:"status" binding:"required,oneof=passed failed conditional pending"`

	DeficienciesCount    int    `json:"deficiencies_count" binding:"min=0"`
	CriticalDeficiencies int    `json:"critical_deficiencies" binding:"min=0"`
	ReportURL            string `json:"report_url" binding:"omitempty,url"`
	NextInspectionDate   string `json:"next_inspection_date"`
}

type UpdateInspectionRequest struct {
	OverallScore       *int    `json:"overall_score" binding:"omitempty,min=0,max=100"`
	Status             *string `json:"status" binding:"omitempty,oneof=passed failed conditional pending"`
	DeficienciesCount  *int    `json:"deficiencies_count" binding:"omitempty,min=0"`
	ReportURL          *string `json:"report_url" binding:"omitempty,url"`
	NextInspectionDate *string `json:"next_inspection_date"`
}

// ListInspections 獲取檢查紀錄 (可依物業篩選)
func (h *InspectionHandler) ListInspections(c *gin.Context) {
	inspections, err := h.Repo.List(c.Request.Context(), c.Query("property_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inspections})
}

// ListUpcoming 獲取即將到來的檢查 (預設 60 天)
func (h *InspectionHandler) ListUpcoming(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "60"))

	inspections, err := h.Repo.ListUpcoming(c.Request.Context(), time.Now(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inspections, "days": days})
}

// CreateInspection 新增檢查紀錄
func (h *InspectionHandler) CreateInspection(c *gin.Context) {
	var req CreateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inspectionDate, err := time.Parse(dateLayout, req.InspectionDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "inspection_date 格式錯誤，需為 YYYY-MM-DD"})
		return
	}

	var nextDate time.Time
	if req.NextInspectionDate != "" {
		nextDate, err = time.Parse(dateLayout, req.NextInspectionDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "next_inspection_date 格式錯誤，需為 YYYY-MM-DD"})
			return
		}
	}

	inspection := domain.REACInspection{
		OrgID:                req.OrgID,
		PropertyID:           req.PropertyID,
		PropertyName:         req.PropertyName,
		InspectionDate:       inspectionDate,
		InspectionType:       req.InspectionType,
		OverallScore:         req.OverallScore,
		Status:               req.Status,
		DeficienciesCount:    req.DeficienciesCount,
		CriticalDeficiencies: req.CriticalDeficiencies,
		ReportURL:            req.ReportURL,
		NextInspectionDate:   nextDate,
	}

	if err := h.Repo.Create(c.Request.Context(), &inspection); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": inspection})
}

// UpdateInspection 部分更新
func (h *InspectionHandler) UpdateInspection(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return
	}

	var req UpdateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := bson.M{}
	if req.OverallScore != nil {
		fields["overall_score"] = *req.OverallScore
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.DeficienciesCount != nil {
		fields["deficiencies_count"] = *req.DeficienciesCount
	}
	if req.ReportURL != nil {
		fields["report_url"] = *req.ReportURL
	}
	if req.NextInspectionDate != nil {
		nextDate, err := time.Parse(dateLayout, *req.NextInspectionDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "next_inspection_date 格式錯誤，需為 YYYY-MM-DD"})
			return
		}
		fields["next_inspection_date"] = nextDate
	}

	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "沒有可更新的欄位"})
		return
	}

	if err := h.Repo.Update(c.Request.Context(), id, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "更新完成"})
}
