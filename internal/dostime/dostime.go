// Package dostime converts between time.Time and the packed MS-DOS time and
// date fields stored in ZIP headers.
//
// The packed time holds hour<<11 | minute<<5 | second/2 and the packed date
// holds (year-1980)<<9 | month<<5 | day. Seconds have two-second resolution.
package dostime

import "time"

const (
	minYear = 1980
	maxYear = minYear + 127
)

// Pack returns the packed time and date fields for t, using t's location.
// Instants outside 1980-01-01 00:00:00 .. 2107-12-31 23:59:58 are clamped.
func Pack(t time.Time) (packedTime, packedDate uint16) {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	switch {
	case year < minYear:
		year, month, day = minYear, time.January, 1
		hour, minute, sec = 0, 0, 0
	case year > maxYear:
		year, month, day = maxYear, time.December, 31
		hour, minute, sec = 23, 59, 58
	}

	//nolint:gosec // all fields are bounded after clamping
	packedTime = uint16(hour<<11 | minute<<5 | sec/2)
	//nolint:gosec // all fields are bounded after clamping
	packedDate = uint16((year-minYear)<<9 | int(month)<<5 | day)
	return packedTime, packedDate
}

// Unpack decodes packed time and date fields into a time in loc.
// A nil loc means UTC. Out-of-range fields are normalized by time.Date.
func Unpack(packedTime, packedDate uint16, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(
		minYear+int(packedDate>>9),
		time.Month(packedDate>>5&0x0f),
		int(packedDate&0x1f),
		int(packedTime>>11),
		int(packedTime>>5&0x3f),
		int(packedTime&0x1f)*2,
		0,
		loc,
	)
}
