package domain

import "time"

// 緊急程度分類 (每張認證一定落在其中一個，不重疊)
const (
	UrgencyOverdue      = "overdue"
	UrgencyExpiringSoon = "expiring_soon"
	UrgencyCurrent      = "current"
)

// 告警類型
const (
	AlertKindOverdue            = "overdue"
	AlertKindExpiringSoon       = "expiring_soon"
	AlertKindUpcomingInspection = "upcoming_inspection"
)

// ComplianceAlert 儀表板告警，每次評估重新計算，不落地
type ComplianceAlert struct {
	ID              string `json:"id"` // 固定字串，僅供前端列表 key 使用
	Kind            string `json:"kind"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Count           int    `json:"count"`
	SuggestedAction string `json:"suggested_action"`
}

type DashboardMetrics struct {
	TotalCertifications int     `json:"total_certifications"`
	ExpiringSoon        int     `json:"expiring_soon"`
	PendingSubmissions  int     `json:"pending_submissions"`
	LastInspectionScore int     `json:"last_inspection_score"` // 最近一次 REAC 分數，無資料為 0
	ComplianceRate      float64 `json:"compliance_rate"`       // 0-100
}

// CertificationSummaryRow 列表顯示用的扁平資料
type CertificationSummaryRow struct {
	ID              string    `json:"id"`
	TenantName      string    `json:"tenant_name"`
	PropertyName    string    `json:"property_name"`
	UnitNumber      string    `json:"unit_number"`
	CertType        string    `json:"cert_type"`
	Status          string    `json:"status"`
	EffectiveDate   time.Time `json:"effective_date"`
	ExpirationDate  time.Time `json:"expiration_date"`
	DaysUntilExpiry int       `json:"days_until_expiry"`
	Urgency         string    `json:"urgency"`
}

type InspectionSummaryRow struct {
	ID                string    `json:"id"`
	PropertyName      string    `json:"property_name"`
	InspectionDate    time.Time `json:"inspection_date"`
	InspectionType    string    `json:"inspection_type"`
	OverallScore      int       `json:"overall_score"`
	Status            string    `json:"status"`
	DeficienciesCount int       `json:"deficiencies_count"`
}

// EvaluationResult 一次評估的完整輸出 (純值，無狀態)
type EvaluationResult struct {
	Metrics           DashboardMetrics          `json:"metrics"`
	Alerts            []ComplianceAlert         `json:"alerts"`
	CertificationRows []CertificationSummaryRow `json:"certification_rows"`
	InspectionRows    []InspectionSummaryRow    `json:"inspection_rows"`
	Warnings          int                       `json:"warnings"` // 資料品質問題的筆數 (日期無效、分數超界)
}
