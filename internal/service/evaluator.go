package service

import (
	"math"
	"time"

	"hud-compliance/internal/domain"
)

// ExpiringWindowDays 到期警示窗口，HUD 認證固定 30 天 (不開放設定)
const ExpiringWindowDays = 30

// UnknownPropertyName 缺少物業名稱時的顯示預設值
const UnknownPropertyName = "Unknown Property"

// EvaluatorService 純計算，不碰 DB、不讀系統時間
// "now" 一律由呼叫端傳入，確保結果可重現、可測試
type EvaluatorService struct{}

func NewEvaluatorService() *EvaluatorService {
	return &EvaluatorService{}
}

// ComputeExpirationDate 認證有效期固定一年：同月同日、年份 +1
// 2/29 經 AddDate 正規化後落在 3/1 (採 roll-forward，不做 clamp)
func (e *EvaluatorService) ComputeExpirationDate(effectiveDate time.Time) time.Time {
	return effectiveDate.AddDate(1, 0, 0)
}

// DaysUntilExpiry 不足一天以一天計 (過期前 0.1 天仍算「剩 1 天」)
func DaysUntilExpiry(expirationDate, now time.Time) int {
	return int(math.Ceil(expirationDate.Sub(now).Hours() / 24))
}

// ClassifyUrgency 把認證分到三個互斥的緊急程度之一
//   - overdue:       過期日 < now 且狀態不是 approved
//   - expiring_soon: now <= 過期日 <= now+30 天 (上界含)
//   - current:       其餘 (含 approved 但已過期者、日期無效者)
//
// 邊界：過期日剛好等於 now 不算 overdue (嚴格小於)
func (e *EvaluatorService) ClassifyUrgency(cert domain.TenantIncomeCertification, now time.Time) (string, int) {
	if cert.EffectiveDate.IsZero() {
		// 日期無效，不進任何日期相關的 bucket (由 Evaluate 統計 warning)
		return domain.UrgencyCurrent, 0
	}

	expirationDate := e.ComputeExpirationDate(cert.EffectiveDate)
	daysLeft := DaysUntilExpiry(expirationDate, now)

	if expirationDate.Before(now) && cert.Status != domain.CertStatusApproved {
		return domain.UrgencyOverdue, daysLeft
	}
	if !expirationDate.Before(now) && !expirationDate.After(now.AddDate(0, 0, ExpiringWindowDays)) {
		return domain.UrgencyExpiringSoon, daysLeft
	}
	return domain.UrgencyCurrent, daysLeft
}

// Evaluate 一次算完儀表板需要的所有東西：指標、告警、列表資料
// 每次呼叫都重新計算，輸出之間沒有共享狀態，可以安全併發呼叫
func (e *EvaluatorService) Evaluate(certs []domain.TenantIncomeCertification, inspections []domain.REACInspection, now time.Time) domain.EvaluationResult {
	result := domain.EvaluationResult{
		Alerts:            []domain.ComplianceAlert{},
		CertificationRows: make([]domain.CertificationSummaryRow, 0, len(certs)),
		InspectionRows:    make([]domain.InspectionSummaryRow, 0, len(inspections)),
	}

	overdueCount := 0
	expiringCount := 0
	pendingCount := 0
	currentCount := 0 // 過期日還在未來的認證數，算 compliance rate 用

	for _, cert := range certs {
		if cert.EffectiveDate.IsZero() {
			result.Warnings++
		}

		urgency, daysLeft := e.ClassifyUrgency(cert, now)
		switch urgency {
		case domain.UrgencyOverdue:
			overdueCount++
		case domain.UrgencyExpiringSoon:
			expiringCount++
		}

		if cert.Status == domain.CertStatusPending {
			pendingCount++
		}

		var expirationDate time.Time
		if !cert.EffectiveDate.IsZero() {
			expirationDate = e.ComputeExpirationDate(cert.EffectiveDate)
			if expirationDate.After(now) {
				currentCount++
			}
		}

		propertyName := cert.PropertyName
		if propertyName == "" {
			propertyName = UnknownPropertyName
		}

		result.CertificationRows = append(result.CertificationRows, domain.CertificationSummaryRow{
			ID:              cert.ID.Hex(),
			TenantName:      cert.TenantName,
			PropertyName:    propertyName,
			UnitNumber:      cert.UnitNumber,
			CertType:        cert.CertType,
			Status:          cert.Status,
			EffectiveDate:   cert.EffectiveDate,
			ExpirationDate:  expirationDate,
			DaysUntilExpiry: daysLeft,
			Urgency:         urgency,
		})
	}

	// 檢查紀錄：找最近一次的分數 + 統計 30 天內的排程
	lastScore := 0
	var lastDate time.Time
	upcomingCount := 0
	windowEnd := now.AddDate(0, 0, ExpiringWindowDays)

	for _, inspection := range inspections {
		valid := !inspection.InspectionDate.IsZero() &&
			inspection.OverallScore >= 0 && inspection.OverallScore <= 100
		if !valid {
			// 資料品質問題：不進任何日期相關的統計，只記 warning
			result.Warnings++
		} else {
			// 同日期時先出現的優先 (嚴格大於才覆蓋)
			if inspection.InspectionDate.After(lastDate) {
				lastDate = inspection.InspectionDate
				lastScore = inspection.OverallScore
			}
			// 窗口為 now (不含) ~ now+30 天 (含)
			if inspection.InspectionDate.After(now) && !inspection.InspectionDate.After(windowEnd) {
				upcomingCount++
			}
		}

		propertyName := inspection.PropertyName
		if propertyName == "" {
			propertyName = UnknownPropertyName
		}

		result.InspectionRows = append(result.InspectionRows, domain.InspectionSummaryRow{
			ID:                inspection.ID.Hex(),
			PropertyName:      propertyName,
			InspectionDate:    inspection.InspectionDate,
			InspectionType:    inspection.InspectionType,
			OverallScore:      inspection.OverallScore,
			Status:            inspection.Status,
			DeficienciesCount: inspection.DeficienciesCount,
		})
	}

	complianceRate := 0.0
	if len(certs) > 0 {
		complianceRate = float64(currentCount) / float64(len(certs)) * 100
	}

	result.Metrics = domain.DashboardMetrics{
		TotalCertifications: len(certs),
		ExpiringSoon:        expiringCount,
		PendingSubmissions:  pendingCount,
		LastInspectionScore: lastScore,
		ComplianceRate:      complianceRate,
	}

	// 告警順序固定：overdue -> expiring_soon -> upcoming_inspection
	// count 為 0 的不產生
	if overdueCount > 0 {
		result.Alerts = append(result.Alerts, domain.ComplianceAlert{
			ID:              "alert-overdue",
			Kind:            domain.AlertKindOverdue,
			Title:           "Overdue Certifications",
			Description:     "Certifications past their expiration date that require immediate attention",
			Count:           overdueCount,
			SuggestedAction: "Review Now",
		})
	}
	if expiringCount > 0 {
		result.Alerts = append(result.Alerts, domain.ComplianceAlert{
			ID:              "alert-expiring-soon",
			Kind:            domain.AlertKindExpiringSoon,
			Title:           "Certifications Expiring Soon",
			Description:     "Certifications expiring within the next 30 days",
			Count:           expiringCount,
			SuggestedAction: "Schedule Recertification",
		})
	}
	if upcomingCount > 0 {
		result.Alerts = append(result.Alerts, domain.ComplianceAlert{
			ID:              "alert-upcoming-inspection",
			Kind:            domain.AlertKindUpcomingInspection,
			Title:           "Upcoming REAC Inspections",
			Description:     "Inspections scheduled within the next 30 days",
			Count:           upcomingCount,
			SuggestedAction: "Prepare Property",
		})
	}

	return result
}
