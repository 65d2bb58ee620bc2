package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidely/GuideBookingService/internal/domain"
)

func mustDefaultPolicy(t *testing.T, kind domain.PolicyKind) domain.CancellationPolicy {
	t.Helper()
	p, ok := domain.DefaultPolicy(kind)
	require.True(t, ok)
	return p
}

func TestComputeRefund_Tiers(t *testing.T) {
	tests := []struct {
		name            string
		kind            domain.PolicyKind
		hoursUntilStart float64
		amountPaid      int64
		wantRefund      int64
		wantFee         int64
	}{
		{
			name:            "flexible more than 24h - full refund",
			kind:            domain.PolicyFlexible,
			hoursUntilStart: 48,
			amountPaid:      10000,
			wantRefund:      10000,
			wantFee:         0,
		},
		{
			name:            "flexible exactly 24h - full refund",
			kind:            domain.PolicyFlexible,
			hoursUntilStart: 24,
			amountPaid:      10000,
			wantRefund:      10000,
			wantFee:         0,
		},
		{
			name:            "flexible under 24h - half refund",
			kind:            domain.PolicyFlexible,
			hoursUntilStart: 5,
			amountPaid:      10000,
			wantRefund:      5000,
			wantFee:         5000,
		},
		{
			name:            "moderate at 50h with 250 paid - scenario B",
			kind:            domain.PolicyModerate,
			hoursUntilStart: 50,
			amountPaid:      25000,
			wantRefund:      12500,
			wantFee:         12500,
		},
		{
			name:            "moderate over a week - full refund",
			kind:            domain.PolicyModerate,
			hoursUntilStart: 200,
			amountPaid:      25000,
			wantRefund:      25000,
			wantFee:         0,
		},
		{
			name:            "moderate last minute - nothing back",
			kind:            domain.PolicyModerate,
			hoursUntilStart: 10,
			amountPaid:      25000,
			wantRefund:      0,
			wantFee:         25000,
		},
		{
			name:            "strict two weeks out - full refund",
			kind:            domain.PolicyStrict,
			hoursUntilStart: 336,
			amountPaid:      40000,
			wantRefund:      40000,
			wantFee:         0,
		},
		{
			name:            "strict one week out - half refund",
			kind:            domain.PolicyStrict,
			hoursUntilStart: 170,
			amountPaid:      40000,
			wantRefund:      20000,
			wantFee:         20000,
		},
		{
			name:            "super strict 30 days out - half refund",
			kind:            domain.PolicySuperStrict,
			hoursUntilStart: 800,
			amountPaid:      40000,
			wantRefund:      20000,
			wantFee:         20000,
		},
		{
			name:            "super strict under 30 days - nothing back",
			kind:            domain.PolicySuperStrict,
			hoursUntilStart: 700,
			amountPaid:      40000,
			wantRefund:      0,
			wantFee:         40000,
		},
		{
			name:            "non refundable - always nothing",
			kind:            domain.PolicyNonRefundable,
			hoursUntilStart: 10000,
			amountPaid:      40000,
			wantRefund:      0,
			wantFee:         40000,
		},
		{
			name:            "slot already started - worst tier",
			kind:            domain.PolicyFlexible,
			hoursUntilStart: -3,
			amountPaid:      10000,
			wantRefund:      5000,
			wantFee:         5000,
		},
		{
			name:            "moderate already started - nothing back",
			kind:            domain.PolicyModerate,
			hoursUntilStart: -1,
			amountPaid:      10000,
			wantRefund:      0,
			wantFee:         10000,
		},
		{
			name:            "zero paid - zero everything",
			kind:            domain.PolicyModerate,
			hoursUntilStart: 10,
			amountPaid:      0,
			wantRefund:      0,
			wantFee:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeRefund(mustDefaultPolicy(t, tt.kind), tt.hoursUntilStart, tt.amountPaid)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRefund, got.RefundCents)
			assert.Equal(t, tt.wantFee, got.FeeCents)
			assert.Equal(t, tt.amountPaid, got.RefundCents+got.FeeCents)
		})
	}
}

func TestComputeRefund_UnknownPolicy(t *testing.T) {
	_, err := ComputeRefund(domain.CancellationPolicy{Kind: "velvet"}, 100, 10000)
	require.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestComputeRefund_NegativeAmount(t *testing.T) {
	_, err := ComputeRefund(mustDefaultPolicy(t, domain.PolicyFlexible), 100, -1)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestComputeRefund_CustomTiersOverrideDefaults(t *testing.T) {
	custom := domain.CancellationPolicy{
		Kind: domain.PolicyFlexible,
		Tiers: []domain.PolicyTier{
			{MinHoursBefore: 72, RefundPercent: 100},
			{MinHoursBefore: 0, RefundPercent: 10},
		},
	}

	got, err := ComputeRefund(custom, 48, 10000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.RefundCents)
}

// Чем ближе к началу слота, тем меньше возврат - для любого вида политики
func TestComputeRefund_Monotonicity(t *testing.T) {
	hours := []float64{1000, 720, 400, 336, 200, 168, 100, 48, 24, 10, 0}

	for kind := range domain.DefaultPolicyTiers {
		p := mustDefaultPolicy(t, kind)

		prev := int64(-1)
		for i := len(hours) - 1; i >= 0; i-- {
			got, err := ComputeRefund(p, hours[i], 100000)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got.RefundCents, prev,
				"kind=%s hours=%v", kind, hours[i])
			prev = got.RefundCents
		}
	}
}
