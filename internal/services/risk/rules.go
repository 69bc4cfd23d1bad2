package risk

import (
	"context"
	"log"
	"time"
)

// evaluateRules applies the heuristic rule table and returns the
// additive rule score plus one reason per rule that fired, in
// evaluation order: amount, blacklist, profile-relative, velocity,
// time of day, payment method, device fingerprint.
//
// No rule early-exits; a transaction can trigger every rule at once.
// The amount-vs-average and velocity families are tiered: only the
// highest qualifying tier within each fires. Collaborator failures
// (blacklist lookup, counter store) degrade to a zero contribution
// and never block the decision.
func (s *service) evaluateRules(ctx context.Context, tx Transaction, profile *UserProfile, at time.Time) (float64, []string) {
	var score float64
	reasons := make([]string, 0, 4)

	if tx.Amount > veryHighAmountThreshold {
		score += deltaVeryHighAmount
		reasons = append(reasons, ReasonVeryHighAmount)
	} else if tx.Amount > highAmountThreshold {
		score += deltaHighAmount
		reasons = append(reasons, ReasonHighAmount)
	}

	if tx.IPAddress != "" {
		hit, err := s.blacklist.Contains(ctx, tx.IPAddress)
		if err != nil {
			log.Printf("blacklist lookup failed for %s: %v", tx.IPAddress, err)
		} else if hit {
			score += deltaBlacklistedIP
			reasons = append(reasons, ReasonBlacklistedIP)
		}
	}

	if profile != nil {
		if tx.Amount > profile.AvgTransactionAmount*avgRatioHighTier {
			score += deltaAmount5xAverage
			reasons = append(reasons, ReasonAmount5xAverage)
		} else if tx.Amount > profile.AvgTransactionAmount*avgRatioLowTier {
			score += deltaAmount3xAverage
			reasons = append(reasons, ReasonAmount3xAverage)
		}

		if !profile.PrefersLocation(tx.Location) {
			score += deltaUnusualLocation
			reasons = append(reasons, ReasonUnusualLocation)
		}

		if !profile.PrefersMerchant(tx.MerchantCategory) {
			score += deltaUnusualMerchant
			reasons = append(reasons, ReasonUnusualMerchant)
		}
	}

	if s.counters != nil {
		count, err := s.countToday(ctx, tx.UserID, at)
		if err != nil {
			// Counter store unavailable: score without a velocity signal
			// rather than blocking the transaction decision.
			log.Printf("velocity check failed for user %s: %v", tx.UserID, err)
		} else if count > velocityExtremeTier {
			score += deltaVelocityExtreme
			reasons = append(reasons, ReasonVelocityExtreme)
		} else if count > velocityHighTier {
			score += deltaVelocityHigh
			reasons = append(reasons, ReasonVelocityHigh)
		} else if count > velocityElevatedTier {
			score += deltaVelocityElevated
			reasons = append(reasons, ReasonVelocityElevated)
		}
	}

	if isLateNight(at.Hour()) {
		score += deltaLateNight
		reasons = append(reasons, ReasonLateNight)
	}

	if tx.PaymentMethod == PaymentMethodDigitalWallet {
		score += deltaDigitalWallet
		reasons = append(reasons, ReasonDigitalWallet)
	}

	if tx.DeviceFingerprint == "" {
		score += deltaNoFingerprint
		reasons = append(reasons, ReasonNoFingerprint)
	}

	return score, reasons
}
