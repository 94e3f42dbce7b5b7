package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"hud-compliance/internal/domain"
	"hud-compliance/internal/repository"
	"hud-compliance/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	Evaluator   *service.EvaluatorService
	Notifier    *service.NotifierService
	Certs       repository.CertificationRepository
	Inspections repository.InspectionRepository
	Settings    repository.SettingsRepository
}

func NewDashboardHandler(
	evaluator *service.EvaluatorService,
	notifier *service.NotifierService,
	certs repository.CertificationRepository,
	inspections repository.InspectionRepository,
	settings repository.SettingsRepository,
) *DashboardHandler {
	return &DashboardHandler{
		Evaluator:   evaluator,
		Notifier:    notifier,
		Certs:       certs,
		Inspections: inspections,
		Settings:    settings,
	}
}

// evaluate 兩個 collection 都撈完才跑評估，"now" 只取一次確保一致
func (h *DashboardHandler) evaluate(c *gin.Context) (*domain.EvaluationResult, error) {
	ctx := c.Request.Context()

	certs, err := h.Certs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	inspections, err := h.Inspections.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := h.Evaluator.Evaluate(certs, inspections, time.Now())
	return &result, nil
}

// GetDashboard 獲取儀表板數據 (指標 + 告警 + 列表)
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	result, err := h.evaluate(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.Warnings > 0 {
		logrus.Warnf("儀表板評估發現 %d 筆資料品質問題", result.Warnings)
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// ExportCertifications 匯出 CSV
func (h *DashboardHandler) ExportCertifications(c *gin.Context) {
	result, err := h.evaluate(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment;filename=certifications_report.csv")
	c.Writer.Write([]byte("\xEF\xBB\xBF")) // BOM

	writer := csv.NewWriter(c.Writer)
	writer.Write([]string{"Tenant", "Property", "Unit", "Type", "Status", "Effective Date", "Expiration Date", "Days Left", "Urgency"})
	for _, row := range result.CertificationRows {
		writer.Write([]string{
			row.TenantName,
			row.PropertyName,
			row.UnitNumber,
			row.CertType,
			row.Status,
			row.EffectiveDate.Format("2006-01-02"),
			row.ExpirationDate.Format("2006-01-02"),
			fmt.Sprintf("%d", row.DaysUntilExpiry),
			row.Urgency,
		})
	}
	writer.Flush()
}

// GetSettings 獲取系統設定
func (h *DashboardHandler) GetSettings(c *gin.Context) {
	settings, err := h.Settings.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": settings})
}

// SaveSettings 儲存系統設定
func (h *DashboardHandler) SaveSettings(c *gin.Context) {
	var settings domain.NotificationSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Settings.SaveSettings(c.Request.Context(), settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logrus.Infof("設定已更新 | Webhook: %v | 排程: %v", settings.WebhookEnabled, settings.EvaluateEnabled)
	c.JSON(http.StatusOK, gin.H{"message": "設定已儲存"})
}

// TestWebhook 測試通知
func (h *DashboardHandler) TestWebhook(c *gin.Context) {
	var req struct {
		WebhookURL string `json:"webhook_url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Notifier.SendTestMessage(c.Request.Context(), req.WebhookURL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "測試訊息發送成功"})
}
