package service

import (
	"testing"
	"time"

	"hud-compliance/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func cert(effective time.Time, status string) domain.TenantIncomeCertification {
	return domain.TenantIncomeCertification{
		TenantName:    "Jane Doe",
		PropertyName:  "Maple Court",
		UnitNumber:    "3B",
		CertType:      domain.CertTypeAnnual,
		Status:        status,
		EffectiveDate: effective,
	}
}

func TestComputeExpirationDate(t *testing.T) {
	e := NewEvaluatorService()

	tests := []struct {
		name      string
		effective time.Time
		want      time.Time
	}{
		{
			name:      "normal date",
			effective: date(2023, time.June, 15),
			want:      date(2024, time.June, 15),
		},
		{
			name:      "year boundary",
			effective: date(2023, time.December, 31),
			want:      date(2024, time.December, 31),
		},
		{
			// AddDate 正規化：2/29 + 1 年 = 3/1 (roll-forward)
			name:      "leap day rolls forward",
			effective: date(2024, time.February, 29),
			want:      date(2025, time.March, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ComputeExpirationDate(tt.effective))
		})
	}
}

func TestDaysUntilExpiry(t *testing.T) {
	now := date(2024, time.June, 10)

	tests := []struct {
		name       string
		expiration time.Time
		want       int
	}{
		{"five days out", date(2024, time.June, 15), 5},
		{"same instant", now, 0},
		{"fraction of a day rounds up", now.Add(2 * time.Hour), 1},
		{"past expiration is negative", date(2024, time.June, 5), -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntilExpiry(tt.expiration, now))
		})
	}
}

func TestClassifyUrgency(t *testing.T) {
	e := NewEvaluatorService()
	now := date(2024, time.June, 10)

	tests := []struct {
		name        string
		cert        domain.TenantIncomeCertification
		wantUrgency string
		wantDays    int
	}{
		{
			name:        "expiring in five days",
			cert:        cert(date(2023, time.June, 15), domain.CertStatusPending),
			wantUrgency: domain.UrgencyExpiringSoon,
			wantDays:    5,
		},
		{
			name:        "pending past expiration is overdue",
			cert:        cert(date(2023, time.May, 1), domain.CertStatusPending),
			wantUrgency: domain.UrgencyOverdue,
		},
		{
			// approved 的認證即使過期也不算 overdue
			name:        "approved past expiration is not overdue",
			cert:        cert(date(2023, time.May, 1), domain.CertStatusApproved),
			wantUrgency: domain.UrgencyCurrent,
		},
		{
			name:        "far future is current",
			cert:        cert(date(2024, time.June, 1), domain.CertStatusPending),
			wantUrgency: domain.UrgencyCurrent,
		},
		{
			// 過期日剛好等於 now：嚴格小於才算 overdue，落在 expiring_soon
			name:        "expires exactly now",
			cert:        cert(date(2023, time.June, 10), domain.CertStatusPending),
			wantUrgency: domain.UrgencyExpiringSoon,
			wantDays:    0,
		},
		{
			// 剛好 30 天：上界含
			name:        "exactly thirty days out",
			cert:        cert(date(2023, time.July, 10), domain.CertStatusPending),
			wantUrgency: domain.UrgencyExpiringSoon,
			wantDays:    30,
		},
		{
			name:        "thirty one days out is current",
			cert:        cert(date(2023, time.July, 11), domain.CertStatusPending),
			wantUrgency: domain.UrgencyCurrent,
			wantDays:    31,
		},
		{
			name:        "invalid effective date is current",
			cert:        cert(time.Time{}, domain.CertStatusPending),
			wantUrgency: domain.UrgencyCurrent,
			wantDays:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urgency, days := e.ClassifyUrgency(tt.cert, now)
			assert.Equal(t, tt.wantUrgency, urgency)
			if tt.wantDays != 0 || tt.wantUrgency == domain.UrgencyExpiringSoon {
				assert.Equal(t, tt.wantDays, days)
			}
		})
	}
}

// 三個 bucket 互斥且完備：任何認證都恰好落在其中一個
func TestClassifyUrgencyExhaustive(t *testing.T) {
	e := NewEvaluatorService()
	now := date(2024, time.June, 10)

	statuses := []string{
		domain.CertStatusPending, domain.CertStatusApproved,
		domain.CertStatusRejected, domain.CertStatusSubmitted,
	}
	dates := []time.Time{
		{}, // 無效日期
		date(2022, time.January, 1),
		date(2023, time.May, 1),
		date(2023, time.June, 10),
		date(2023, time.June, 15),
		date(2023, time.July, 10),
		date(2024, time.June, 1),
		date(2025, time.January, 1),
	}

	for _, status := range statuses {
		for _, effective := range dates {
			urgency, _ := e.ClassifyUrgency(cert(effective, status), now)
			assert.Contains(t, []string{
				domain.UrgencyOverdue, domain.UrgencyExpiringSoon, domain.UrgencyCurrent,
			}, urgency)
		}
	}
}

func TestEvaluateScenarioA(t *testing.T) {
	// effective 2023-06-15, pending, now 2024-06-10 -> 剩 5 天，expiring_soon
	e := NewEvaluatorService()
	now := date(2024, time.June, 10)

	result := e.Evaluate(
		[]domain.TenantIncomeCertification{cert(date(2023, time.June, 15), domain.CertStatusPending)},
		nil, now,
	)

	require.Len(t, result.CertificationRows, 1)
	row := result.CertificationRows[0]
	assert.Equal(t, date(2024, time.June, 15), row.ExpirationDate)
	assert.Equal(t, 5, row.DaysUntilExpiry)
	assert.Equal(t, domain.UrgencyExpiringSoon, row.Urgency)

	require.Len(t, result.Alerts, 1)
	assert.Equal(t, domain.AlertKindExpiringSoon, result.Alerts[0].Kind)
	assert.Equal(t, 1, result.Alerts[0].Count)

	assert.Equal(t, 1, result.Metrics.ExpiringSoon)
	assert.Equal(t, 1, result.Metrics.PendingSubmissions)
}

func TestEvaluateScenarioB(t *testing.T) {
	// approved 且過期 5 天：不是 overdue，但也不計入合規率
	e := NewEvaluatorService()
	now := date(2024, time.June, 20)

	result := e.Evaluate(
		[]domain.TenantIncomeCertification{cert(date(2023, time.June, 15), domain.CertStatusApproved)},
		nil, now,
	)

	require.Len(t, result.CertificationRows, 1)
	assert.Equal(t, domain.UrgencyCurrent, result.CertificationRows[0].Urgency)
	assert.Empty(t, result.Alerts)
	assert.Equal(t, 0.0, result.Metrics.ComplianceRate)
}

func TestEvaluateScenarioC(t *testing.T) {
	// pending 且過期 5 天：overdue，發一組告警
	e := NewEvaluatorService()
	now := date(2024, time.June, 20)

	result := e.Evaluate(
		[]domain.TenantIncomeCertification{cert(date(2023, time.June, 15), domain.CertStatusPending)},
		nil, now,
	)

	require.Len(t, result.Alerts, 1)
	assert.Equal(t, domain.AlertKindOverdue, result.Alerts[0].Kind)
	assert.Equal(t, 1, result.Alerts[0].Count)
	assert.Equal(t, domain.UrgencyOverdue, result.CertificationRows[0].Urgency)
}

func TestEvaluateScenarioDEmptyInput(t *testing.T) {
	e := NewEvaluatorService()

	result := e.Evaluate(nil, nil, date(2024, time.June, 10))

	assert.Equal(t, domain.DashboardMetrics{}, result.Metrics)
	assert.Empty(t, result.Alerts)
	assert.Empty(t, result.CertificationRows)
	assert.Empty(t, result.InspectionRows)
	assert.Zero(t, result.Warnings)
}

func TestEvaluateScenarioELastInspectionScore(t *testing.T) {
	e := NewEvaluatorService()
	now := date(2024, time.June, 10)

	inspections := []domain.REACInspection{
		{PropertyName: "Maple Court", InspectionDate: date(2024, time.January, 1), OverallScore: 85, Status: domain.InspectionStatusPassed},
		{PropertyName: "Maple Court", InspectionDate: date(2024, time.March, 1), OverallScore: 92, Status: domain.InspectionStatusPassed},
	}

	result := e.Evaluate(nil, inspections, now)
	assert.Equal(t, 92, result.Metrics.LastInspectionScore)
}

func TestEvaluateLastScoreTieBreak(t *testing.T) {
	// 同日期時先出現的優先
	e := NewEvaluatorService()
	now := date(2024, time.June, 10)

	inspections := []domain.REACInspection{
		{InspectionDate: date(2024, time.March, 1), OverallScore: 85, Status: domain.InspectionStatusPassed},
		{InspectionDate: date(2024, time.March, 1), OverallScore: 92, Status: domain.InspectionStatusPassed},
	}

	result := e.Evaluate(nil, inspections, now)
	assert.Equal(t, 85, result.Metrics.LastInspectionScore)
}

func TestEvaluateUpcomingInspectionWindow(t *testing.T) {
	e := NewEvaluatorService()
	now := date(2024, time.June, 10)

	inspections := []domain.REACInspection{
		// 剛好在 now：不含下界，不算 upcoming
		{InspectionDate: now, OverallScore: 80, Status: domain.InspectionStatusPending},
		// 剛好 30 天：含上界
		{InspectionDate: date(2024, time.July, 10), OverallScore: 80, Status: domain.InspectionStatusPending},
		// 31 天：超出窗口
		{InspectionDate: date(2024, time.July, 11), OverallScore: 80, Status: domain.InspectionStatusPending},
	}

	result := e.Evaluate(nil, inspections, now)

	require.Len(t, result.Alerts, 1)
	assert.Equal(t, domain.AlertKindUpcomingInspection, result.Alerts[0].Kind)
	assert.Equal(t, 1, result.Alerts[0].Count)
}

func TestEvaluateDataIntegrityWarnings(t *testing.T) {
	e := NewEvaluatorService()
	now := date(2024, time.June, 10)

	certs := []domain.TenantIncomeCertification{
		cert(time.Time{}, domain.CertStatusPending), // 日期無效
	}
	inspections := []domain.REACInspection{
		{InspectionDate: date(2024, time.June, 20), OverallScore: 150, Status: domain.InspectionStatusPassed}, // 分數超界
		{InspectionDate: time.Time{}, OverallScore: 80, Status: domain.InspectionStatusPassed},                // 日期無效
	}

	result := e.Evaluate(certs, inspections, now)

	assert.Equal(t, 3, result.Warnings)
	// 無效資料不進任何 bucket
	assert.Empty(t, result.Alerts)
	assert.Equal(t, 0, result.Metrics.LastInspectionScore)
	assert.Equal(t, 0.0, result.Metrics.ComplianceRate)
}

func TestEvaluateComplianceRateBounds(t *testing.T) {
	e := NewEvaluatorService()
	now := date(2024, time.June, 10)

	certs := []domain.TenantIncomeCertification{
		cert(date(2024, time.January, 1), domain.CertStatusApproved), // 未過期
		cert(date(2023, time.January, 1), domain.CertStatusPending),  // 已過期
	}

	result := e.Evaluate(certs, nil, now)

	assert.GreaterOrEqual(t, result.Metrics.ComplianceRate, 0.0)
	assert.LessOrEqual(t, result.Metrics.ComplianceRate, 100.0)
	assert.Equal(t, 50.0, result.Metrics.ComplianceRate)
}

func TestEvaluateAlertsNeverZeroCount(t *testing.T) {
	e := NewEvaluatorService()
	now := date(2024, time.June, 10)

	certs := []domain.TenantIncomeCertification{
		cert(date(2023, time.May, 1), domain.CertStatusPending),   // overdue
		cert(date(2023, time.June, 15), domain.CertStatusPending), // expiring soon
		cert(date(2024, time.June, 1), domain.CertStatusApproved), // current
	}

	result := e.Evaluate(certs, nil, now)

	require.Len(t, result.Alerts, 2)
	for _, alert := range result.Alerts {
		assert.Greater(t, alert.Count, 0)
	}
	// 順序固定：overdue 在前
	assert.Equal(t, domain.AlertKindOverdue, result.Alerts[0].Kind)
	assert.Equal(t, domain.AlertKindExpiringSoon, result.Alerts[1].Kind)
}

func TestEvaluateIdempotent(t *testing.T) {
	e := NewEvaluatorService()
	now := date(2024, time.June, 10)

	certs := []domain.TenantIncomeCertification{
		cert(date(2023, time.June, 15), domain.CertStatusPending),
		cert(date(2023, time.May, 1), domain.CertStatusRejected),
	}
	inspections := []domain.REACInspection{
		{InspectionDate: date(2024, time.June, 20), OverallScore: 88, Status: domain.InspectionStatusPassed},
	}

	first := e.Evaluate(certs, inspections, now)
	second := e.Evaluate(certs, inspections, now)

	assert.Equal(t, first, second)
}

func TestEvaluateUnknownPropertyDefault(t *testing.T) {
	e := NewEvaluatorService()
	now := date(2024, time.June, 10)

	c := cert(date(2024, time.January, 1), domain.CertStatusApproved)
	c.PropertyName = ""

	result := e.Evaluate([]domain.TenantIncomeCertification{c}, nil, now)

	require.Len(t, result.CertificationRows, 1)
	assert.Equal(t, UnknownPropertyName, result.CertificationRows[0].PropertyName)
}
