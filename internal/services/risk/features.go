package risk

import (
	"math"
	"time"
)

// Feature vector layout. Frozen: the anomaly model was trained against
// exactly this encoding, including the deliberately coarse string
// length proxies at positions 4 and 5.
const (
	featAmount          = 0 // raw transaction amount
	featHourOfDay       = 1 // hour of evaluation time, 0-23
	featIsWeekend       = 2 // 1 if Saturday/Sunday
	featIsLateNight     = 3 // 1 if hour < 6 or hour > 22
	featMerchantLen     = 4 // merchant category string length (proxy)
	featLocationLen     = 5 // location string length (proxy)
	featAmountDeviation = 6 // |amount-avg|/avg, capped at 5.0, 0 without profile
	featLocationRisk    = 7 // 1 if location not preferred, 0 without profile
	featMerchantRisk    = 8 // 1 if merchant not preferred, 0 without profile
	featAccountAge      = 9 // account age in years, capped at 2.0
)

const (
	amountDeviationCap = 5.0
	accountAgeYearsCap = 2.0
	daysPerYear        = 365.0
)

// extractFeatures builds the fixed-length feature vector for one
// transaction. It always succeeds: a missing profile leaves the
// profile-derived features at their neutral zero values.
func extractFeatures(tx Transaction, profile *UserProfile, at time.Time) FeatureVector {
	hour := at.Hour()
	weekday := at.Weekday()

	var f FeatureVector
	f[featAmount] = tx.Amount
	f[featHourOfDay] = float64(hour)
	f[featIsWeekend] = boolFeature(weekday == time.Saturday || weekday == time.Sunday)
	f[featIsLateNight] = boolFeature(isLateNight(hour))
	f[featMerchantLen] = float64(len(tx.MerchantCategory))
	f[featLocationLen] = float64(len(tx.Location))

	if profile == nil {
		return f
	}

	if profile.AvgTransactionAmount > 0 {
		deviation := math.Abs(tx.Amount-profile.AvgTransactionAmount) / profile.AvgTransactionAmount
		f[featAmountDeviation] = math.Min(deviation, amountDeviationCap)
	}
	f[featLocationRisk] = boolFeature(!profile.PrefersLocation(tx.Location))
	f[featMerchantRisk] = boolFeature(!profile.PrefersMerchant(tx.MerchantCategory))
	f[featAccountAge] = math.Min(float64(profile.AccountAgeDays)/daysPerYear, accountAgeYearsCap)

	return f
}

func isLateNight(hour int) bool {
	return hour < lateNightEndHour || hour > lateNightStartHour
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
