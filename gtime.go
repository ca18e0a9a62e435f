// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// GPS time as carried in the log header (week, seconds of week)
type GTime struct {
	Week int
	Sec  float64
}

// Read GPS week and seconds from the header fields of a split record.
// ok is false when the header does not carry a usable time.
func parseGTime(parts []string) (gt GTime, ok bool) {
	if len(parts) <= FldSec {
		return gt, false
	}
	week, err := strconv.Atoi(strings.TrimSpace(parts[FldWeek]))
	if err != nil || week <= 0 {
		return gt, false
	}
	sec, err := strconv.ParseFloat(strings.TrimSpace(parts[FldSec]), 64)
	if err != nil || sec < 0 {
		return gt, false
	}
	return GTime{Week: week, Sec: sec}, true
}

func (p GTime) IsZero() bool {
	return p.Week == 0 && p.Sec == 0
}

// Time in the GPS time scale
func (p GTime) ToTime() time.Time {
	o := time.Date(1980, 1, 6, 0, 0, 0, 0, time.UTC).Unix() // GPS time starts from 1980/1/6 00:00:00
	i := int64(math.Trunc(p.Sec))
	t := int64(3600*24*7*p.Week) + i + o
	n := int64((p.Sec - float64(i)) * 1e9)
	return time.Unix(t, n).UTC()
}

// Time in UTC (leap seconds removed)
func (p GTime) UTC() time.Time {
	return p.ToTime().Add(-LS * time.Second)
}

// Seconds from b to p
func (p GTime) Sub(b GTime) float64 {
	return float64(p.Week-b.Week)*3600*24*7 + p.Sec - b.Sec
}

// Same epoch within tol seconds
func (p GTime) Near(b GTime, tol float64) bool {
	return math.Abs(p.Sub(b)) <= tol
}
