package risk

import "time"

// Transaction is the immutable scoring input. The engine never assigns
// it an identity; the caller threads a transaction ID through Assess.
type Transaction struct {
	UserID            string  `json:"user_id"`
	Amount            float64 `json:"amount"`
	MerchantCategory  string  `json:"merchant_category"`
	Location          string  `json:"location"`
	PaymentMethod     string  `json:"payment_method"`
	DeviceFingerprint string  `json:"device_fingerprint,omitempty"`
	IPAddress         string  `json:"ip_address,omitempty"`
}

// UserProfile is the engine's read-only view of a user's spending
// baseline. A nil profile (unknown user) degrades feature quality, it
// never fails scoring.
type UserProfile struct {
	AvgTransactionAmount float64
	PreferredLocations   []string
	PreferredMerchants   []string
	AccountAgeDays       int
}

// PrefersLocation reports whether loc is one of the user's usual
// transaction locations.
func (p *UserProfile) PrefersLocation(loc string) bool {
	for _, l := range p.PreferredLocations {
		if l == loc {
			return true
		}
	}
	return false
}

// PrefersMerchant reports whether category is one of the user's usual
// merchant categories.
func (p *UserProfile) PrefersMerchant(category string) bool {
	for _, m := range p.PreferredMerchants {
		if m == category {
			return true
		}
	}
	return false
}

// RiskAssessment is the engine's output, immutable once produced.
// Reasons are informational (the score is authoritative) but reflect
// every rule and velocity tier that fired, in evaluation order.
type RiskAssessment struct {
	TransactionID     string   `json:"transaction_id"`
	RiskScore         float64  `json:"risk_score"`
	RiskLevel         string   `json:"risk_level"`
	Confidence        float64  `json:"confidence"`
	Reasons           []string `json:"reasons"`
	RecommendedAction string   `json:"recommended_action"`
}

// FeatureVector is the fixed-length numeric encoding fed to the
// anomaly model. The layout is frozen: the trained model was fit
// against exactly this encoding.
type FeatureVector [FeatureCount]float64

// Config tunes engine behavior. Zero values fall back to defaults.
type Config struct {
	// ExternalCallTimeout bounds each collaborator round trip
	// (velocity counter). On timeout the sub-score degrades to zero
	// instead of blocking the assessment.
	ExternalCallTimeout time.Duration

	// Clock supplies the evaluation time. Defaults to time.Now.
	// Injected so tests can fix the clock.
	Clock func() time.Time
}
