// Package models defines the core domain models for Billwise.
//
// # Models
//
//   - Biller: an organization a user pays (utility, card issuer, landlord)
//   - Bill: an amount owed to a Biller, with a derived balance and status
//   - Payment: one amount applied against a Bill
//   - PaymentHistory: an immutable snapshot written each time a payment is applied
//
// Every record carries an OwnerID. Stores filter every read and write by it, so
// records belonging to another owner behave as if they did not exist.
//
// # Derived fields
//
// Bill.Balance and Bill.Status are maintained by the reconciliation code in
// internal/reconcile and are never set directly by callers, except that an edit
// may override Status explicitly.
//
// # Relationships
//
// Relationships are ID strings. Bill.Biller is populated by the store on reads
// for convenience; it is never written through.
package models

import "time"

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate formats t as YYYY-MM-DD. The zero time formats as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Today truncates now to a UTC calendar date.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
