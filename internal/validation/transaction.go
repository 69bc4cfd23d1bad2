package validation

import "frauddetect/internal/services/risk"

// CheckTransaction validates an incoming transaction before scoring.
// Malformed input is the one condition that surfaces to the caller;
// the engine assumes validated input past this point.
func CheckTransaction(v *Validator, tx risk.Transaction) {
	v.Check(tx.UserID != "", "user_id", "must be provided")
	v.Check(tx.Amount >= 0, "amount", "must not be negative")
	v.Check(tx.MerchantCategory != "", "merchant_category", "must be provided")
	v.Check(tx.Location != "", "location", "must be provided")
	v.Check(tx.PaymentMethod != "", "payment_method", "must be provided")
}
