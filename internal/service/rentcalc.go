package service

// RentCalcService HUD 租金計算 (30% of adjusted monthly income)
// 金額一律用 cents 運算，避免浮點誤差
type RentCalcService struct{}

func NewRentCalcService() *RentCalcService {
	return &RentCalcService{}
}

type RentCalculation struct {
	TenantRentCents       int64   `json:"tenant_rent_cents"`
	SubsidyCents          int64   `json:"subsidy_cents"`
	ContractRentCents     int64   `json:"contract_rent_cents"`
	UtilityAllowanceCents int64   `json:"utility_allowance_cents"`
	MonthlyIncomeCents    int64   `json:"monthly_income_cents"`
	RentToIncomeRatio     float64 `json:"rent_to_income_ratio"` // 百分比
}

// Calculate 租客負擔 = 月收入 30% 扣掉水電補貼 (不低於 0)
// 補貼金額 = 合約租金 - 租客負擔 (不低於 0)
func (s *RentCalcService) Calculate(annualIncomeCents, utilityAllowanceCents, contractRentCents int64) RentCalculation {
	monthlyIncome := annualIncomeCents / 12
	tenantPortion := monthlyIncome * 30 / 100

	tenantRent := tenantPortion - utilityAllowanceCents
	if tenantRent < 0 {
		tenantRent = 0
	}

	subsidy := contractRentCents - tenantRent
	if subsidy < 0 {
		subsidy = 0
	}

	ratio := 0.0
	if monthlyIncome > 0 {
		ratio = float64(tenantRent) / float64(monthlyIncome) * 100
	}

	return RentCalculation{
		TenantRentCents:       tenantRent,
		SubsidyCents:          subsidy,
		ContractRentCents:     contractRentCents,
		UtilityAllowanceCents: utilityAllowanceCents,
		MonthlyIncomeCents:    monthlyIncome,
		RentToIncomeRatio:     ratio,
	}
}
