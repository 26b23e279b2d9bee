package trackers

import "time"

const stampLayout = "20060102"

// Stamp is the fixed-width YYYYMMDD key of one cache file.
type Stamp string

// StampFor renders the local calendar day of t.
func StampFor(t time.Time) Stamp {
	return Stamp(t.Format(stampLayout))
}

// Today computes the stamp once from the supplied clock. Callers thread the
// result through both the read and the write path so a run that crosses
// midnight still uses a single file.
func Today(now func() time.Time) Stamp {
	if now == nil {
		now = time.Now
	}
	return StampFor(now())
}

// FileName returns the cache file name for the stamp.
func (s Stamp) FileName() string {
	return "btl-" + string(s) + ".txt"
}
