package models

import "time"

// Bucket is the urgency classification used to prioritize follow-up.
type Bucket string

const (
	BucketPaid        Bucket = "paid"
	BucketContentious Bucket = "contentious"
	BucketCritical    Bucket = "critical" // more than 30 days
	BucketMedium      Bucket = "medium"   // more than 15 days
	BucketRecent      Bucket = "recent"
)

// AgingBucket classifies a debt at ref. Precedence: paid, then
// contentious, then elapsed days. Pure function of the debt and ref.
func AgingBucket(d *Debt, ref time.Time) Bucket {
	if d.Balance <= 0 || d.IsPaid() {
		return BucketPaid
	}
	if d.Status == StatusContentious {
		return BucketContentious
	}
	switch days := d.DaysSince(ref); {
	case days > 30:
		return BucketCritical
	case days > 15:
		return BucketMedium
	default:
		return BucketRecent
	}
}
