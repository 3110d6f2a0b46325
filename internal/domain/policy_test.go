package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCancellationPolicy_ResolveTier(t *testing.T) {
	policy := DefaultCancellationPolicy()

	tests := []struct {
		name            string
		hoursUntilEvent float64
		wantPenalty     float64
		wantAllowed     bool
	}{
		{name: "50 hours before is free", hoursUntilEvent: 50, wantPenalty: 0, wantAllowed: true},
		{name: "exactly 48 hours is free", hoursUntilEvent: 48, wantPenalty: 0, wantAllowed: true},
		{name: "30 hours costs 25 percent", hoursUntilEvent: 30, wantPenalty: 25, wantAllowed: true},
		{name: "15 hours costs 50 percent", hoursUntilEvent: 15, wantPenalty: 50, wantAllowed: true},
		{name: "10 hours falls to default tier", hoursUntilEvent: 10, wantPenalty: 100, wantAllowed: false},
		{name: "past the event falls to default tier", hoursUntilEvent: -2, wantPenalty: 100, wantAllowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := policy.ResolveTier(tt.hoursUntilEvent)
			assert.Equal(t, tt.wantPenalty, tier.PenaltyPercentage)
			assert.Equal(t, tt.wantAllowed, tier.AllowCancellation)
		})
	}
}

func TestModificationPolicy_SurchargeFor(t *testing.T) {
	policy := DefaultModificationPolicy()

	assert.Equal(t, 0.0, policy.SurchargeFor(8))
	assert.Equal(t, 0.0, policy.SurchargeFor(6))
	assert.Equal(t, 10.0, policy.SurchargeFor(5.5))
	assert.Equal(t, 10.0, policy.SurchargeFor(0.5))
}
