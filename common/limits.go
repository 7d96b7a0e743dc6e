package common

// Protocol parameters shared by the settlement contracts. All rates are
// expressed in basis points of RateDenominator.
const (
	// MinReputation is the lowest composite score a stored reputation
	// record may carry. It doubles as the eligibility threshold for
	// certificates and insurance.
	MinReputation = 100
	// MaxReputation is the highest composite score a stored reputation
	// record may carry.
	MaxReputation = 1000

	// ReputationMultiplier limits loan principal: composite score must be
	// at least principal * ReputationMultiplier.
	ReputationMultiplier = 10

	// BaseLendingRate is the interest rate for borrowers with composite
	// score below PreferredRateThreshold. Preferred borrowers pay half.
	BaseLendingRate = 500
	// PreferredRateThreshold is the composite score from which the halved
	// lending rate applies.
	PreferredRateThreshold = 5 * MinReputation

	// InsurancePremiumRate prices coverage: premium is
	// coverage * InsurancePremiumRate / RateDenominator.
	InsurancePremiumRate = 50

	// DefaultProtocolFeeRate is the initial market protocol fee rate.
	DefaultProtocolFeeRate = 100

	// RateDenominator is the divisor for all basis point rates.
	RateDenominator = 10000
)
