package util

import "time"

// ISODate is the day-resolution format the upstream provider expects in
// from/to query parameters.
const ISODate = "2006-01-02"

// DayString formats t as an ISO YYYY-MM-DD string in UTC.
func DayString(t time.Time) string {
	return t.UTC().Format(ISODate)
}

// RangeDaysBack returns (from, to) ISO day strings covering the last
// `days` days ending at now.
func RangeDaysBack(now time.Time, days int) (string, string) {
	return DayString(now.AddDate(0, 0, -days)), DayString(now)
}

// TimeBucket truncates t to the bucket size and renders it for dedup
// keys. A signal alerted once per bucket is not re-sent until the
// bucket rolls over.
func TimeBucket(t time.Time, size time.Duration) string {
	return t.UTC().Truncate(size).Format(time.RFC3339)
}
