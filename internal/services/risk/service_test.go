package risk

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quietTx fires no rules under the defaults of newTestService.
var quietTx = Transaction{
	UserID:            "user_001",
	Amount:            50,
	MerchantCategory:  "grocery",
	Location:          "New York",
	PaymentMethod:     "card",
	DeviceFingerprint: "fp-abc",
}

func TestAssess_RejectsMalformedTransaction(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.Assess(context.Background(), Transaction{UserID: "", Amount: 10}, "tx-1")
	assert.ErrorIs(t, err, ErrInvalidTransaction)

	_, err = svc.Assess(context.Background(), Transaction{UserID: "u", Amount: -1}, "tx-2")
	assert.ErrorIs(t, err, ErrInvalidTransaction)
}

func TestAssess_NoModelNoRules(t *testing.T) {
	// Model and scaler absent, nothing fires: the floor case.
	svc := newTestService(nil)

	got, err := svc.Assess(context.Background(), quietTx, "tx-1")
	require.NoError(t, err)

	assert.Equal(t, "tx-1", got.TransactionID)
	assert.Equal(t, 0.0, got.RiskScore)
	assert.Equal(t, RiskLevelLow, got.RiskLevel)
	assert.Equal(t, ActionApprove, got.RecommendedAction)
	assert.Equal(t, 0.3, got.Confidence)
	assert.Empty(t, got.Reasons)
}

func TestAssess_ModelErrorFallsBackToModerateScore(t *testing.T) {
	// A broken model contributes the fixed 20.0 fallback, never zero.
	svc := newTestService(func(d *testDeps) {
		d.model = &fakeModel{err: errors.New("shape mismatch")}
		d.scaler = &fakeScaler{}
	})

	got, err := svc.Assess(context.Background(), quietTx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.RiskScore)

	// Same fallback when the scaler is the broken half.
	svc = newTestService(func(d *testDeps) {
		d.model = &fakeModel{score: 0.4}
		d.scaler = &fakeScaler{err: errors.New("width mismatch")}
	})
	got, err = svc.Assess(context.Background(), quietTx, "tx-2")
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.RiskScore)
}

func TestAssess_MLScoreNormalization(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		wantRisk float64
	}{
		{"typical inlier", 0.3, 10.0},
		{"boundary", 0.5, 0.0},
		{"strong inlier clamps to zero", 2.0, 0.0},
		{"anomalous", -0.5, 50.0},
		{"extreme anomaly clamps to 100", -3.0, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(func(d *testDeps) {
				d.model = &fakeModel{score: tt.raw}
				d.scaler = &fakeScaler{}
			})
			got, err := svc.Assess(context.Background(), quietTx, "tx-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantRisk, got.RiskScore)
		})
	}
}

func TestAssess_MLOnlyReasonAugmentation(t *testing.T) {
	// Elevated ML score with no rule corroboration still produces an
	// explanation.
	svc := newTestService(func(d *testDeps) {
		d.model = &fakeModel{score: -0.5} // mlScore 50
		d.scaler = &fakeScaler{}
	})

	got, err := svc.Assess(context.Background(), quietTx, "tx-1")
	require.NoError(t, err)

	assert.Equal(t, 50.0, got.RiskScore)
	assert.Equal(t, []string{ReasonAnomalousPattern}, got.Reasons)
	// No rule fired, so no rule confidence boost: 50/100 + 0.3.
	assert.Equal(t, 0.8, got.Confidence)
	assert.Equal(t, RiskLevelHigh, got.RiskLevel)
	assert.Equal(t, ActionReview, got.RecommendedAction)
}

func TestAssess_RuleCorroborationBoostsConfidence(t *testing.T) {
	svc := newTestService(nil)

	tx := quietTx
	tx.Amount = 2000 // High amount: rule score 15

	got, err := svc.Assess(context.Background(), tx, "tx-1")
	require.NoError(t, err)

	assert.Equal(t, 15.0, got.RiskScore)
	// 15/100 + 0.3 + 0.2 rule boost.
	assert.Equal(t, 0.65, got.Confidence)
}

func TestAssess_ScoreAndConfidenceStayInBounds(t *testing.T) {
	svc := newTestService(func(d *testDeps) {
		d.model = &fakeModel{score: -3.0} // mlScore clamps to 100
		d.counters = &fakeCounter{fixed: 25}
		d.scaler = &fakeScaler{}
	})

	tx := Transaction{
		UserID:        "u",
		Amount:        9000,
		Location:      "Lagos",
		PaymentMethod: PaymentMethodDigitalWallet,
	}
	got, err := svc.Assess(context.Background(), tx, "tx-1")
	require.NoError(t, err)

	assert.Equal(t, 100.0, got.RiskScore)
	assert.Equal(t, 1.0, got.Confidence)
	assert.Equal(t, RiskLevelCritical, got.RiskLevel)
	assert.Equal(t, ActionDecline, got.RecommendedAction)
}

func TestRiskLevelBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, RiskLevelLow},
		{24.99, RiskLevelLow},
		{25, RiskLevelMedium},
		{49.99, RiskLevelMedium},
		{50, RiskLevelHigh},
		{74.99, RiskLevelHigh},
		{75, RiskLevelCritical},
		{100, RiskLevelCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, riskLevelFor(tt.score), "score %v", tt.score)
	}
}

func TestActionBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, ActionApprove},
		{29.99, ActionApprove},
		{30, ActionReview},
		{54.99, ActionReview},
		{55, ActionRequestVerification},
		{79.99, ActionRequestVerification},
		{80, ActionDecline},
		{100, ActionDecline},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, actionFor(tt.score), "score %v", tt.score)
	}
}

func TestAssess_MonotonicInAmount(t *testing.T) {
	svc := newTestService(nil)

	amounts := []float64{0, 10, 500, 1000.01, 3000, 5000.01, 8000, 50000}
	prev := -1.0
	for _, amount := range amounts {
		tx := quietTx
		tx.Amount = amount
		got, err := svc.Assess(context.Background(), tx, "tx-1")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.RiskScore, prev, "amount %v", amount)
		prev = got.RiskScore
	}
}

func TestAssess_Idempotent(t *testing.T) {
	// Unchanged counter, profile, and clock: identical output.
	profile := &UserProfile{
		AvgTransactionAmount: 100,
		PreferredLocations:   []string{"NY"},
		PreferredMerchants:   []string{"grocery"},
	}
	svc := newTestService(func(d *testDeps) {
		d.profiles = &fakeProfileStore{profile: profile}
		d.counters = &fakeCounter{fixed: 7}
	})

	tx := Transaction{UserID: "u", Amount: 450, MerchantCategory: "casino", Location: "Lagos", DeviceFingerprint: "fp"}

	first, err := svc.Assess(context.Background(), tx, "tx-1")
	require.NoError(t, err)
	second, err := svc.Assess(context.Background(), tx, "tx-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssess_ProfileStoreFailureScoresWithoutProfile(t *testing.T) {
	svc := newTestService(func(d *testDeps) {
		d.profiles = &fakeProfileStore{err: errors.New("db down")}
	})

	tx := quietTx
	tx.Amount = 6000
	got, err := svc.Assess(context.Background(), tx, "tx-1")
	require.NoError(t, err)

	assert.Equal(t, 25.0, got.RiskScore)
	assert.Equal(t, []string{ReasonVeryHighAmount}, got.Reasons)
}

func TestAssess_VelocityKeyAndExpiry(t *testing.T) {
	counter := &fakeCounter{fixed: 1}
	at := time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)
	svc := newTestService(func(d *testDeps) {
		d.counters = counter
		d.clock = fixedClock(at)
	})

	_, err := svc.Assess(context.Background(), quietTx, "tx-1")
	require.NoError(t, err)

	assert.Equal(t, 1, counter.calls)
	assert.Equal(t, "user_transactions:user_001:2025-03-12", counter.lastKey)
	// Expires at the next UTC midnight.
	assert.Equal(t, 10*time.Hour, counter.lastTTL)
}

func TestAssess_ConcurrentVelocityCountsAreGapFree(t *testing.T) {
	counter := &fakeCounter{}
	svc := newTestService(func(d *testDeps) {
		d.counters = counter
	})

	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Assess(context.Background(), quietTx, "tx-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Exactly one increment per Assess, no lost updates.
	assert.Equal(t, n, counter.calls)
	assert.Equal(t, int64(n), counter.counts["user_transactions:user_001:2025-03-12"])
}

func TestAssess_RoundsToTwoDecimals(t *testing.T) {
	svc := newTestService(func(d *testDeps) {
		d.model = &fakeModel{score: 0.2345} // mlScore (0.5-0.2345)*50 = 13.275
		d.scaler = &fakeScaler{}
	})

	got, err := svc.Assess(context.Background(), quietTx, "tx-1")
	require.NoError(t, err)

	assert.InDelta(t, 13.28, got.RiskScore, 0.006)
	assert.Equal(t, round2(got.RiskScore), got.RiskScore, "score must carry at most 2 decimals")
	// Confidence from the unrounded score: 13.275/100 + 0.3.
	assert.InDelta(t, 0.43, got.Confidence, 0.006)
	assert.Equal(t, round2(got.Confidence), got.Confidence, "confidence must carry at most 2 decimals")
}
