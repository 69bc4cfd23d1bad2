package risk

// anomalyScore converts the trained model's decision value for one
// feature vector into a 0-100 risk contribution.
//
// Missing model or scaler is a degraded mode, not a failure: the ML
// contribution is simply zero. A model that errors at inference time
// (corrupt parameters, shape mismatch) substitutes a fixed moderate
// fallback instead, so a broken model never masks all risk.
func (s *service) anomalyScore(features FeatureVector) float64 {
	if s.model == nil || s.scaler == nil {
		return 0
	}

	matrix := [][]float64{features[:]}

	scaled, err := s.scaler.Transform(matrix)
	if err != nil {
		return mlFallbackScore
	}

	raw, err := s.model.DecisionFunction(scaled)
	if err != nil || len(raw) == 0 {
		return mlFallbackScore
	}

	// Negative decision values mean anomalous; map into [0,100].
	return clamp((0.5-raw[0])*50, 0, 100)
}
