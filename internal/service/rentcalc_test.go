package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRent(t *testing.T) {
	s := NewRentCalcService()

	tests := []struct {
		name           string
		annualIncome   int64
		utility        int64
		contractRent   int64
		wantTenantRent int64
		wantSubsidy    int64
	}{
		{
			// 年收入 $24,000 -> 月收入 $2,000 -> 30% = $600，扣補貼 $100 = $500
			name:           "standard case",
			annualIncome:   2400000,
			utility:        10000,
			contractRent:   120000,
			wantTenantRent: 50000,
			wantSubsidy:    70000,
		},
		{
			// 補貼大於 30% 收入：租客負擔下限 0
			name:           "utility exceeds tenant portion",
			annualIncome:   120000, // 月收入 $100, 30% = $30
			utility:        50000,
			contractRent:   100000,
			wantTenantRent: 0,
			wantSubsidy:    100000,
		},
		{
			// 租客負擔高於合約租金：補貼下限 0
			name:           "tenant portion exceeds contract rent",
			annualIncome:   12000000, // 月收入 $10,000, 30% = $3,000
			utility:        0,
			contractRent:   100000,
			wantTenantRent: 300000,
			wantSubsidy:    0,
		},
		{
			name:           "zero income",
			annualIncome:   0,
			utility:        0,
			contractRent:   100000,
			wantTenantRent: 0,
			wantSubsidy:    100000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Calculate(tt.annualIncome, tt.utility, tt.contractRent)
			assert.Equal(t, tt.wantTenantRent, got.TenantRentCents)
			assert.Equal(t, tt.wantSubsidy, got.SubsidyCents)
			assert.Equal(t, tt.contractRent, got.ContractRentCents)
		})
	}
}

func TestCalculateRentRatio(t *testing.T) {
	s := NewRentCalcService()

	// $2,000 月收入、$500 租客負擔 -> 25%
	got := s.Calculate(2400000, 10000, 120000)
	assert.InDelta(t, 25.0, got.RentToIncomeRatio, 0.001)

	// 零收入不除以零
	got = s.Calculate(0, 0, 100000)
	assert.Equal(t, 0.0, got.RentToIncomeRatio)
}
