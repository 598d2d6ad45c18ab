package util

import (
	"testing"
	"time"
)

func TestRangeDaysBack(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)
	from, to := RangeDaysBack(now, 30)
	if from != "2025-05-16" {
		t.Fatalf("from = %s", from)
	}
	if to != "2025-06-15" {
		t.Fatalf("to = %s", to)
	}
}

func TestDayStringUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 01:00 on the 16th in UTC+9 is still the 15th in UTC
	got := DayString(time.Date(2025, 6, 16, 1, 0, 0, 0, loc))
	if got != "2025-06-15" {
		t.Fatalf("got %s", got)
	}
}

func TestTimeBucketStableWithinBucket(t *testing.T) {
	a := time.Date(2025, 6, 15, 10, 5, 0, 0, time.UTC)
	b := time.Date(2025, 6, 15, 10, 55, 0, 0, time.UTC)
	c := time.Date(2025, 6, 15, 11, 5, 0, 0, time.UTC)
	if TimeBucket(a, time.Hour) != TimeBucket(b, time.Hour) {
		t.Fatalf("same hour must share a bucket")
	}
	if TimeBucket(a, time.Hour) == TimeBucket(c, time.Hour) {
		t.Fatalf("different hours must differ")
	}
}
