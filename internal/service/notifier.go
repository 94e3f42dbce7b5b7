package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hud-compliance/internal/domain"
	"hud-compliance/internal/repository"

	"github.com/sirupsen/logrus"
)

type NotifierService struct {
	Certs    repository.CertificationRepository
	Settings repository.SettingsRepository
}

func NewNotifierService(certs repository.CertificationRepository, settings repository.SettingsRepository) *NotifierService {
	return &NotifierService{Certs: certs, Settings: settings}
}

// WebhookPayload 定義通用的訊息格式 (相容 Slack/Teams/Discord)
type WebhookPayload struct {
	Text string `json:"text"` // Slack, Discord 常用
}

// SendTestMessage 發送測試訊息
func (n *NotifierService) SendTestMessage(ctx context.Context, webhookURL string) error {
	return n.send(webhookURL, "🔔 這是一條來自 HUD Compliance 的測試告警訊息！")
}

// CheckAndNotify 檢查單張認證並發送告警 (核心邏輯)
func (n *NotifierService) CheckAndNotify(ctx context.Context, cert domain.TenantIncomeCertification, urgency string, daysLeft int) {
	// 1. 只對 overdue / expiring_soon 發送
	if urgency != domain.UrgencyOverdue && urgency != domain.UrgencyExpiringSoon {
		return
	}

	// 2. 防騷擾檢查 (24小時內不重複發)
	if time.Since(cert.LastAlertTime) < 24*time.Hour {
		return
	}

	// 3. 獲取 Webhook 設定
	settings, err := n.Settings.GetSettings(ctx)
	if err != nil || !settings.WebhookEnabled || settings.WebhookURL == "" {
		return // 沒設定就不發
	}
	if !settings.NotifyOnExpiry {
		return
	}

	// 4. 組裝訊息
	var msg string
	if urgency == domain.UrgencyOverdue {
		msg = fmt.Sprintf("⚠️ [認證告警] 租客: %s (%s %s) \n狀態: %s \n認證已過期 %d 天，請立即處理",
			cert.TenantName, cert.PropertyName, cert.UnitNumber, cert.Status, -daysLeft)
	} else {
		msg = fmt.Sprintf("⏰ [認證告警] 租客: %s (%s %s) \n狀態: %s \n認證剩餘 %d 天到期，請安排重新認證",
			cert.TenantName, cert.PropertyName, cert.UnitNumber, cert.Status, daysLeft)
	}

	// 5. 發送，成功才更新 LastAlertTime
	logrus.Infof("正在發送告警: %s / %s", cert.TenantName, cert.PropertyName)
	if err := n.send(settings.WebhookURL, msg); err == nil {
		n.Certs.UpdateAlertTime(ctx, cert.ID)
	} else {
		logrus.Errorf("發送告警失敗: %v", err)
	}
}

// 底層發送邏輯
func (n *NotifierService) send(url, message string) error {
	payload := WebhookPayload{Text: message}
	jsonBytes, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(jsonBytes))
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook 回應錯誤代碼: %d", resp.StatusCode)
	}
	return nil
}
