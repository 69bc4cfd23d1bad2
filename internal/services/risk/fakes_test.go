package risk

import (
	"context"
	"sync"
	"time"
)

type fakeProfileStore struct {
	profile *UserProfile
	err     error
}

func (f *fakeProfileStore) Get(_ context.Context, _ string) (*UserProfile, error) {
	return f.profile, f.err
}

type fakeBlacklist struct {
	ips map[string]bool
	err error
}

func (f *fakeBlacklist) Contains(_ context.Context, ip string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.ips[ip], nil
}

// fakeCounter counts increments per key under a lock, mirroring the
// atomic semantics the real store provides server-side. A fixed value
// can be pinned for tier tests, and an error can be injected.
type fakeCounter struct {
	mu      sync.Mutex
	counts  map[string]int64
	fixed   int64
	err     error
	calls   int
	lastKey string
	lastTTL time.Duration
}

func (f *fakeCounter) IncrementAndGet(_ context.Context, key string, ttl time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastKey = key
	f.lastTTL = ttl
	if f.err != nil {
		return 0, f.err
	}
	if f.fixed != 0 {
		return f.fixed, nil
	}
	if f.counts == nil {
		f.counts = make(map[string]int64)
	}
	f.counts[key]++
	return f.counts[key], nil
}

type fakeModel struct {
	score float64
	err   error
}

func (m *fakeModel) DecisionFunction(features [][]float64) ([]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	scores := make([]float64, len(features))
	for i := range scores {
		scores[i] = m.score
	}
	return scores, nil
}

type fakeScaler struct {
	err error
}

func (s *fakeScaler) Transform(features [][]float64) ([][]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return features, nil
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// newTestService builds an engine with quiet defaults: no profile, no
// blacklist hits, velocity count pinned to 1, no model.
func newTestService(overrides func(*testDeps)) Service {
	deps := &testDeps{
		profiles:  &fakeProfileStore{},
		blacklist: &fakeBlacklist{ips: map[string]bool{}},
		counters:  &fakeCounter{fixed: 1},
		clock:     fixedClock(middayWeekday),
	}
	if overrides != nil {
		overrides(deps)
	}
	return NewService(deps.profiles, deps.blacklist, deps.counters, deps.model, deps.scaler, Config{
		Clock: deps.clock,
	})
}

type testDeps struct {
	profiles  UserProfileStore
	blacklist BlacklistStore
	counters  CounterStore
	model     AnomalyModel
	scaler    FeatureScaler
	clock     func() time.Time
}
