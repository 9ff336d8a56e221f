package utils

import "time"

// Korea Standard Time (+09:00)
var kstLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
		return loc
	}
	return time.FixedZone("KST", 9*3600)
}()

// NowKST is the current wall clock in Asia/Seoul. Season fallback uses it.
func NowKST() time.Time { return time.Now().In(kstLoc) }

func NowUnixSeconds() int64 { return time.Now().Unix() }

func FormatRFC3339KST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(kstLoc).Format(time.RFC3339)
}
