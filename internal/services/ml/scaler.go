// Package ml loads the pre-trained anomaly model and feature scaler
// from exported parameter files and runs inference in-process. Nothing
// here trains anything; training happens offline and only the fitted
// parameters ship with the service.
package ml

import (
	"fmt"
)

// StandardScaler applies the z-score normalization fitted at training
// time: (x - mean) / scale, per feature column.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform normalizes each row of the feature matrix. The row width
// must match the width the scaler was fitted with.
func (s *StandardScaler) Transform(features [][]float64) ([][]float64, error) {
	out := make([][]float64, len(features))
	for i, row := range features {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("feature row has %d columns, scaler was fitted with %d", len(row), len(s.Mean))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			div := s.Scale[j]
			if div == 0 {
				// A zero-variance feature scales to zero offset.
				div = 1
			}
			scaled[j] = (v - s.Mean[j]) / div
		}
		out[i] = scaled
	}
	return out, nil
}

func (s *StandardScaler) validate() error {
	if len(s.Mean) == 0 {
		return fmt.Errorf("scaler has no fitted parameters")
	}
	if len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("scaler mean/scale width mismatch: %d vs %d", len(s.Mean), len(s.Scale))
	}
	return nil
}
