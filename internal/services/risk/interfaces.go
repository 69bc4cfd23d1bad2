package risk

import (
	"context"
	"time"
)

// AnomalyModel is the trained outlier detector. DecisionFunction
// returns one score per input row; by convention negative values mean
// more anomalous. The model may be absent (nil) entirely.
type AnomalyModel interface {
	DecisionFunction(features [][]float64) ([]float64, error)
}

// FeatureScaler normalizes raw feature rows before model inference.
// Paired with the model; may be absent (nil) entirely.
type FeatureScaler interface {
	Transform(features [][]float64) ([][]float64, error)
}

// CounterStore provides the atomic increment-with-expiry primitive
// backing the velocity check. The returned count is post-increment.
type CounterStore interface {
	IncrementAndGet(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// UserProfileStore looks up a user's spending baseline. Absence is a
// valid state: implementations return (nil, nil) for unknown users.
type UserProfileStore interface {
	Get(ctx context.Context, userID string) (*UserProfile, error)
}

// BlacklistStore answers IP denylist membership checks.
type BlacklistStore interface {
	Contains(ctx context.Context, ip string) (bool, error)
}

// Service is the engine's public surface: one synchronous operation
// that always produces an assessment for valid input.
type Service interface {
	Assess(ctx context.Context, tx Transaction, transactionID string) (*RiskAssessment, error)
}
