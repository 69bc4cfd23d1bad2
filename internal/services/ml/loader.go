package ml

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFraudModel reads the exported model and scaler parameter files.
// A missing or unreadable file is the documented degraded mode: the
// caller runs rules-only scoring with a nil model.
func LoadFraudModel(modelPath, scalerPath string) (*IsolationForest, *StandardScaler, error) {
	model, err := loadModel(modelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load model: %w", err)
	}
	scaler, err := loadScaler(scalerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load scaler: %w", err)
	}
	return model, scaler, nil
}

func loadModel(path string) (*IsolationForest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var model IsolationForest
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := model.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &model, nil
}

func loadScaler(path string) (*StandardScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var scaler StandardScaler
	if err := json.Unmarshal(data, &scaler); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := scaler.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &scaler, nil
}
