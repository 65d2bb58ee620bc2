package domain

// PolicyKind cancellation policy family of a guide
type PolicyKind string

const (
	PolicyFlexible      PolicyKind = "flexible"
	PolicyModerate      PolicyKind = "moderate"
	PolicyStrict        PolicyKind = "strict"
	PolicySuperStrict   PolicyKind = "super_strict"
	PolicyNonRefundable PolicyKind = "non_refundable"
)

// PolicyTier one refund tier: cancelling at least MinHoursBefore hours
// before the slot starts refunds RefundPercent of the amount paid.
type PolicyTier struct {
	MinHoursBefore float64
	RefundPercent  int
}

// CancellationPolicy ordered refund tiers of a guide. Tiers are sorted by
// MinHoursBefore descending and end with a catch-all tier at 0 hours.
type CancellationPolicy struct {
	Kind  PolicyKind
	Tiers []PolicyTier
}

// DefaultPolicyTiers is the stock tier table per policy kind. The boundaries
// are deliberately asymmetric across kinds (flexible has a single 24h split,
// the others use multi-day tiers); treat them as configuration, a guide's
// stored policy takes precedence.
var DefaultPolicyTiers = map[PolicyKind][]PolicyTier{
	PolicyFlexible: {
		{MinHoursBefore: 24, RefundPercent: 100},
		{MinHoursBefore: 0, RefundPercent: 50},
	},
	PolicyModerate: {
		{MinHoursBefore: 168, RefundPercent: 100},
		{MinHoursBefore: 48, RefundPercent: 50},
		{MinHoursBefore: 0, RefundPercent: 0},
	},
	PolicyStrict: {
		{MinHoursBefore: 336, RefundPercent: 100},
		{MinHoursBefore: 168, RefundPercent: 50},
		{MinHoursBefore: 0, RefundPercent: 0},
	},
	PolicySuperStrict: {
		{MinHoursBefore: 720, RefundPercent: 50},
		{MinHoursBefore: 0, RefundPercent: 0},
	},
	PolicyNonRefundable: {
		{MinHoursBefore: 0, RefundPercent: 0},
	},
}

// DefaultPolicy returns the stock policy for the given kind.
// The second return value is false for an unknown kind.
func DefaultPolicy(kind PolicyKind) (CancellationPolicy, bool) {
	tiers, ok := DefaultPolicyTiers[kind]
	if !ok {
		return CancellationPolicy{}, false
	}
	return CancellationPolicy{Kind: kind, Tiers: tiers}, true
}
