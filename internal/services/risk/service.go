// Package risk implements the transaction risk scoring engine. It
// fuses a trained anomaly model, an ordered additive rule table, and a
// velocity check into a single 0-100 score with an audit trail of
// reasons. Every collaborator enters through an injected interface;
// the engine itself holds no global state and never blocks a decision
// on infrastructure failure.
package risk

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"
)

const defaultExternalCallTimeout = 2 * time.Second

type service struct {
	profiles  UserProfileStore
	blacklist BlacklistStore
	counters  CounterStore
	model     AnomalyModel
	scaler    FeatureScaler
	config    Config
	now       func() time.Time
}

// NewService creates the scoring engine. Profile and blacklist stores
// are required; the counter store, model, and scaler may be nil, in
// which case the corresponding signal contributes zero.
func NewService(profiles UserProfileStore, blacklist BlacklistStore, counters CounterStore, model AnomalyModel, scaler FeatureScaler, cfg Config) Service {
	if profiles == nil {
		panic("profile store is required")
	}
	if blacklist == nil {
		panic("blacklist store is required")
	}
	if cfg.ExternalCallTimeout <= 0 {
		cfg.ExternalCallTimeout = defaultExternalCallTimeout
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	return &service{
		profiles:  profiles,
		blacklist: blacklist,
		counters:  counters,
		model:     model,
		scaler:    scaler,
		config:    cfg,
		now:       now,
	}
}

// Assess scores one transaction. It always produces an assessment for
// valid input: collaborator failures degrade signal quality instead of
// failing the request, because failing open (always classify, err
// toward review) is safer for a fraud system than failing closed.
//
// Time-derived signals use the evaluation time, not any timestamp on
// the transaction, so the same payload can score differently across a
// day or late-night boundary. That matches the behavior the model was
// trained against.
func (s *service) Assess(ctx context.Context, tx Transaction, transactionID string) (*RiskAssessment, error) {
	if err := validate(tx); err != nil {
		return nil, err
	}

	at := s.now()
	profile := s.lookupProfile(ctx, tx.UserID)

	features := extractFeatures(tx, profile, at)
	mlScore := s.anomalyScore(features)
	ruleScore, reasons := s.evaluateRules(ctx, tx, profile, at)

	return s.fuse(transactionID, mlScore, ruleScore, reasons), nil
}

// fuse combines the ML and rule contributions into the final
// assessment: capped score, confidence, risk level, and action.
func (s *service) fuse(transactionID string, mlScore, ruleScore float64, ruleReasons []string) *RiskAssessment {
	finalScore := clamp(mlScore+ruleScore, 0, 100)

	reasons := ruleReasons
	if mlScore > mlOnlyReasonThreshold && len(ruleReasons) == 0 {
		// Pure-anomaly case: no rule corroboration, but the decision
		// still needs an explanation.
		reasons = append(reasons, ReasonAnomalousPattern)
	}

	confidence := finalScore/100 + baseConfidence
	if len(ruleReasons) > 0 {
		// Rule corroboration increases confidence.
		confidence += ruleConfidenceBoost
	}
	confidence = clamp(confidence, 0, 1)

	return &RiskAssessment{
		TransactionID:     transactionID,
		RiskScore:         round2(finalScore),
		RiskLevel:         riskLevelFor(finalScore),
		Confidence:        round2(confidence),
		Reasons:           reasons,
		RecommendedAction: actionFor(finalScore),
	}
}

// lookupProfile returns the user's baseline, or nil when the user is
// unknown or the store errors. Either way scoring proceeds.
func (s *service) lookupProfile(ctx context.Context, userID string) *UserProfile {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		log.Printf("profile lookup failed for user %s: %v", userID, err)
		return nil
	}
	return profile
}

func validate(tx Transaction) error {
	if tx.UserID == "" {
		return fmt.Errorf("%w: user_id must be provided", ErrInvalidTransaction)
	}
	if tx.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidTransaction)
	}
	return nil
}

// riskLevelFor maps a final score to its risk band. Boundaries belong
// to the upper band: exactly 25.0 is MEDIUM.
func riskLevelFor(score float64) string {
	switch {
	case score < mediumLevelAt:
		return RiskLevelLow
	case score < highLevelAt:
		return RiskLevelMedium
	case score < criticalLevelAt:
		return RiskLevelHigh
	default:
		return RiskLevelCritical
	}
}

// actionFor maps a final score to the recommended action. The action
// scale is deliberately offset from the risk-level scale.
func actionFor(score float64) string {
	switch {
	case score < reviewActionAt:
		return ActionApprove
	case score < verificationActionAt:
		return ActionReview
	case score < declineActionAt:
		return ActionRequestVerification
	default:
		return ActionDecline
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
