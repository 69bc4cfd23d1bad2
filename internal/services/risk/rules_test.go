package risk

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalRules(t *testing.T, svc Service, tx Transaction, profile *UserProfile, at time.Time) (float64, []string) {
	t.Helper()
	s, ok := svc.(*service)
	require.True(t, ok)
	return s.evaluateRules(context.Background(), tx, profile, at)
}

func TestRules_VeryHighAmountOnly(t *testing.T) {
	// amount=6000, no profile, no blacklist hit, fingerprint present,
	// card payment, 14:00: only the amount rule fires. Profile-relative
	// rules must not fire without a profile.
	svc := newTestService(nil)
	tx := Transaction{
		UserID:            "user_001",
		Amount:            6000,
		MerchantCategory:  "electronics",
		Location:          "Boston",
		PaymentMethod:     "card",
		DeviceFingerprint: "fp-abc",
	}

	score, reasons := evalRules(t, svc, tx, nil, middayWeekday)

	assert.Equal(t, 25.0, score)
	assert.Equal(t, []string{ReasonVeryHighAmount}, reasons)
}

func TestRules_CombinedScenario(t *testing.T) {
	// amount=200 vs avg=100 (2x, below the 3x tier), unpreferred
	// location, preferred merchant, 23:00, digital wallet, velocity 12.
	svc := newTestService(func(d *testDeps) {
		d.counters = &fakeCounter{fixed: 12}
	})
	profile := &UserProfile{
		AvgTransactionAmount: 100,
		PreferredLocations:   []string{"New York"},
		PreferredMerchants:   []string{"grocery"},
		AccountAgeDays:       365,
	}
	tx := Transaction{
		UserID:            "user_001",
		Amount:            200,
		MerchantCategory:  "grocery",
		Location:          "Lagos",
		PaymentMethod:     PaymentMethodDigitalWallet,
		DeviceFingerprint: "fp-abc",
	}
	at := time.Date(2025, 3, 12, 23, 0, 0, 0, time.UTC)

	score, reasons := evalRules(t, svc, tx, profile, at)

	assert.Equal(t, 42.0, score)
	assert.Equal(t, []string{
		ReasonUnusualLocation,
		ReasonVelocityHigh,
		ReasonLateNight,
		ReasonDigitalWallet,
	}, reasons)
}

func TestRules_AmountTiers(t *testing.T) {
	svc := newTestService(nil)

	tests := []struct {
		amount     float64
		wantScore  float64
		wantReason string
	}{
		{1000, 0, ""},
		{1000.01, 15, ReasonHighAmount},
		{5000, 15, ReasonHighAmount},
		{5000.01, 25, ReasonVeryHighAmount},
	}

	for _, tt := range tests {
		tx := Transaction{UserID: "u", Amount: tt.amount, DeviceFingerprint: "fp"}
		score, reasons := evalRules(t, svc, tx, nil, middayWeekday)
		assert.Equal(t, tt.wantScore, score, "amount %v", tt.amount)
		if tt.wantReason == "" {
			assert.Empty(t, reasons)
		} else {
			assert.Equal(t, []string{tt.wantReason}, reasons)
		}
	}
}

func TestRules_AverageRatioTiersAreExclusive(t *testing.T) {
	svc := newTestService(nil)
	profile := &UserProfile{
		AvgTransactionAmount: 100,
		PreferredLocations:   []string{"NY"},
		PreferredMerchants:   []string{"grocery"},
	}

	tests := []struct {
		amount      float64
		wantReasons []string
	}{
		{250, nil},
		{301, []string{ReasonAmount3xAverage}},
		{500, []string{ReasonAmount3xAverage}},
		{501, []string{ReasonAmount5xAverage}},
	}

	for _, tt := range tests {
		tx := Transaction{UserID: "u", Amount: tt.amount, MerchantCategory: "grocery", Location: "NY", DeviceFingerprint: "fp"}
		_, reasons := evalRules(t, svc, tx, profile, middayWeekday)
		if tt.wantReasons == nil {
			assert.Empty(t, reasons, "amount %v", tt.amount)
		} else {
			assert.Equal(t, tt.wantReasons, reasons, "amount %v", tt.amount)
		}
	}
}

func TestRules_VelocityTiers(t *testing.T) {
	tests := []struct {
		count       int64
		wantScore   float64
		wantReasons []string
	}{
		{1, 0, nil},
		{5, 0, nil},
		{6, 8, []string{ReasonVelocityElevated}},
		{10, 8, []string{ReasonVelocityElevated}},
		{11, 15, []string{ReasonVelocityHigh}},
		{20, 15, []string{ReasonVelocityHigh}},
		{21, 25, []string{ReasonVelocityExtreme}},
	}

	for _, tt := range tests {
		svc := newTestService(func(d *testDeps) {
			d.counters = &fakeCounter{fixed: tt.count}
		})
		tx := Transaction{UserID: "u", Amount: 10, DeviceFingerprint: "fp"}
		score, reasons := evalRules(t, svc, tx, nil, middayWeekday)
		assert.Equal(t, tt.wantScore, score, "count %d", tt.count)
		if tt.wantReasons == nil {
			assert.Empty(t, reasons, "count %d", tt.count)
		} else {
			assert.Equal(t, tt.wantReasons, reasons, "count %d", tt.count)
		}
	}
}

func TestRules_BlacklistedIP(t *testing.T) {
	svc := newTestService(func(d *testDeps) {
		d.blacklist = &fakeBlacklist{ips: map[string]bool{"192.168.1.100": true}}
	})

	tx := Transaction{UserID: "u", Amount: 10, DeviceFingerprint: "fp", IPAddress: "192.168.1.100"}
	score, reasons := evalRules(t, svc, tx, nil, middayWeekday)
	assert.Equal(t, 30.0, score)
	assert.Equal(t, []string{ReasonBlacklistedIP}, reasons)

	// Absent IP skips the lookup entirely.
	tx.IPAddress = ""
	score, reasons = evalRules(t, svc, tx, nil, middayWeekday)
	assert.Equal(t, 0.0, score)
	assert.Empty(t, reasons)
}

func TestRules_MissingFingerprint(t *testing.T) {
	svc := newTestService(nil)
	tx := Transaction{UserID: "u", Amount: 10}
	score, reasons := evalRules(t, svc, tx, nil, middayWeekday)
	assert.Equal(t, 8.0, score)
	assert.Equal(t, []string{ReasonNoFingerprint}, reasons)
}

func TestRules_CollaboratorFailuresDegrade(t *testing.T) {
	// Counter store down: no velocity contribution, everything else
	// still scores.
	svc := newTestService(func(d *testDeps) {
		d.counters = &fakeCounter{err: errors.New("connection refused")}
		d.blacklist = &fakeBlacklist{err: errors.New("db down")}
	})

	tx := Transaction{UserID: "u", Amount: 2000, DeviceFingerprint: "fp", IPAddress: "1.2.3.4"}
	score, reasons := evalRules(t, svc, tx, nil, middayWeekday)

	assert.Equal(t, 15.0, score)
	assert.Equal(t, []string{ReasonHighAmount}, reasons)
}

func TestRules_NilCounterStoreSkipsVelocity(t *testing.T) {
	svc := newTestService(func(d *testDeps) {
		d.counters = nil
	})
	tx := Transaction{UserID: "u", Amount: 10, DeviceFingerprint: "fp"}
	score, reasons := evalRules(t, svc, tx, nil, middayWeekday)
	assert.Equal(t, 0.0, score)
	assert.Empty(t, reasons)
}

func TestRules_EverythingFiresAtOnce(t *testing.T) {
	svc := newTestService(func(d *testDeps) {
		d.counters = &fakeCounter{fixed: 25}
		d.blacklist = &fakeBlacklist{ips: map[string]bool{"10.0.0.50": true}}
	})
	profile := &UserProfile{
		AvgTransactionAmount: 100,
		PreferredLocations:   []string{"NY"},
		PreferredMerchants:   []string{"grocery"},
	}
	tx := Transaction{
		UserID:           "u",
		Amount:           6000,
		MerchantCategory: "casino",
		Location:         "Lagos",
		PaymentMethod:    PaymentMethodDigitalWallet,
		IPAddress:        "10.0.0.50",
	}
	at := time.Date(2025, 3, 15, 23, 30, 0, 0, time.UTC)

	score, reasons := evalRules(t, svc, tx, profile, at)

	// 25 + 30 + 20 + 12 + 8 + 25 + 10 + 5 + 8
	assert.Equal(t, 143.0, score)
	assert.Equal(t, []string{
		ReasonVeryHighAmount,
		ReasonBlacklistedIP,
		ReasonAmount5xAverage,
		ReasonUnusualLocation,
		ReasonUnusualMerchant,
		ReasonVelocityExtreme,
		ReasonLateNight,
		ReasonDigitalWallet,
		ReasonNoFingerprint,
	}, reasons)
}
