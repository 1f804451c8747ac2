// Package civiltime resolves instants into wall-clock parts in the
// program's single civil timezone (UTC+6, no daylight saving).
package civiltime

import (
	"fmt"
	"time"
)

// OffsetSeconds is the fixed UTC offset of the civil zone.
const OffsetSeconds = 6 * 60 * 60

// Location is shared by every civil-time computation in the service, so the
// window gate and the ledger date key can never disagree.
var Location = time.FixedZone("Asia/Dhaka", OffsetSeconds)

// Parts is the civil breakdown of an instant.
type Parts struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"` // 1-12
	Day        int    `json:"day"`   // 1-31
	Hour       int    `json:"hour"`  // 0-23
	Minute     int    `json:"minute"`
	Second     int    `json:"second"`
	DateString string `json:"dateString"` // YYYY-MM-DD
	TimeString string `json:"timeString"` // HH:mm:ss
}

// Resolve converts t to civil time.
func Resolve(t time.Time) Parts {
	local := t.In(Location)
	p := Parts{
		Year:   local.Year(),
		Month:  int(local.Month()),
		Day:    local.Day(),
		Hour:   local.Hour(),
		Minute: local.Minute(),
		Second: local.Second(),
	}
	p.DateString = fmt.Sprintf("%04d-%02d-%02d", p.Year, p.Month, p.Day)
	p.TimeString = fmt.Sprintf("%02d:%02d:%02d", p.Hour, p.Minute, p.Second)
	return p
}

// Now resolves the current instant.
func Now() Parts {
	return Resolve(time.Now())
}
