package risk

// FeatureCount is the width of the feature vector the model was
// trained against.
const FeatureCount = 10

// Risk levels, ordered by severity
const (
	RiskLevelLow      = "LOW"
	RiskLevelMedium   = "MEDIUM"
	RiskLevelHigh     = "HIGH"
	RiskLevelCritical = "CRITICAL"
)

// Recommended actions
const (
	ActionApprove             = "APPROVE"
	ActionReview              = "REVIEW"
	ActionRequestVerification = "REQUEST_VERIFICATION"
	ActionDecline             = "DECLINE"
)

// Rule thresholds (amount thresholds are exclusive greater-than)
const (
	veryHighAmountThreshold = 5000.0
	highAmountThreshold     = 1000.0
	avgRatioHighTier        = 5.0
	avgRatioLowTier         = 3.0
	lateNightStartHour      = 22 // exclusive
	lateNightEndHour        = 6  // exclusive
)

// Velocity tiers, typed to match the counter store's running count
const (
	velocityExtremeTier  int64 = 20
	velocityHighTier     int64 = 10
	velocityElevatedTier int64 = 5
)

// Rule score deltas
const (
	deltaVeryHighAmount   = 25.0
	deltaHighAmount       = 15.0
	deltaBlacklistedIP    = 30.0
	deltaAmount5xAverage  = 20.0
	deltaAmount3xAverage  = 10.0
	deltaUnusualLocation  = 12.0
	deltaUnusualMerchant  = 8.0
	deltaVelocityExtreme  = 25.0
	deltaVelocityHigh     = 15.0
	deltaVelocityElevated = 8.0
	deltaLateNight        = 10.0
	deltaDigitalWallet    = 5.0
	deltaNoFingerprint    = 8.0
)

// Reasons attached to the assessment, one per rule that fires
const (
	ReasonVeryHighAmount   = "Very high transaction amount"
	ReasonHighAmount       = "High transaction amount"
	ReasonBlacklistedIP    = "Blacklisted IP address"
	ReasonAmount5xAverage  = "Amount 5x higher than user average"
	ReasonAmount3xAverage  = "Amount 3x higher than user average"
	ReasonUnusualLocation  = "Transaction from unusual location"
	ReasonUnusualMerchant  = "Unusual merchant category for user"
	ReasonVelocityExtreme  = "Extremely high transaction velocity (20+ today)"
	ReasonVelocityHigh     = "High transaction velocity (10+ today)"
	ReasonVelocityElevated = "Elevated transaction velocity"
	ReasonLateNight        = "Late night transaction"
	ReasonDigitalWallet    = "Digital wallet payment (slightly higher risk)"
	ReasonNoFingerprint    = "No device fingerprint provided"
	ReasonAnomalousPattern = "ML model detected anomalous transaction pattern"
)

// Payment methods with dedicated rules
const PaymentMethodDigitalWallet = "digital_wallet"

// ML scoring policy. The fallback is deliberately moderate rather than
// zero so a broken model never silently masks all risk.
const (
	mlFallbackScore       = 20.0
	mlOnlyReasonThreshold = 40.0
)

// Confidence policy
const (
	baseConfidence      = 0.3
	ruleConfidenceBoost = 0.2
)

// Classification bands (half-open; a boundary belongs to the upper
// band). The level and action scales are intentionally different.
const (
	mediumLevelAt   = 25.0
	highLevelAt     = 50.0
	criticalLevelAt = 75.0

	reviewActionAt       = 30.0
	verificationActionAt = 55.0
	declineActionAt      = 80.0
)

// Velocity counter keying
const velocityKeyPrefix = "user_transactions:"
