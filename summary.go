// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tzneal/coordconv"
	"golang.org/x/exp/slices"
)

// Overview of one log
type Summary struct {
	NumPos   int
	NumVel   int
	Start    GTime // Zero when the records have no time
	End      GTime
	StartPos PosLLH
	EndPos   PosLLH
	Length   float64 // 3D path length over the converted points [m]
	MinSpeed float64
	MaxSpeed float64
	AvgSpeed float64
	StartUTM *UTM // nil when the conversion fails (polar regions)
	EndUTM   *UTM
	Aligned  error // Result of Log.Aligned
}

// Tolerance when pairing position and velocity epochs [s]
const alignTol = 0.5

func Summarize(lg *Log, tr *Transform) *Summary {
	s := &Summary{
		NumPos: len(lg.Pos),
		NumVel: len(lg.Vel),
	}
	if len(lg.Pos) > 0 {
		first, last := lg.Pos[0], lg.Pos[len(lg.Pos)-1]
		s.Start, s.End = first.Time, last.Time
		s.StartPos, s.EndPos = first.Pos, last.Pos
		s.Length = PathLength(tr.ToXYZs(lg.Geodetic()))
		s.StartUTM = toUTM(first.Pos)
		s.EndUTM = toUTM(last.Pos)
	}
	if v := lg.Speeds(); len(v) > 0 {
		s.MinSpeed = slices.Min(v)
		s.MaxSpeed = slices.Max(v)
		sum := 0.0
		for _, x := range v {
			sum += x
		}
		s.AvgSpeed = sum / float64(len(v))
	}
	s.Aligned = lg.Aligned(alignTol)
	return s
}

func (s *Summary) Duration() time.Duration {
	if s.Start.IsZero() || s.End.IsZero() {
		return 0
	}
	return time.Duration(s.End.Sub(s.Start) * float64(time.Second))
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "positions : %d\n", s.NumPos)
	fmt.Fprintf(&sb, "speeds    : %d\n", s.NumVel)
	if !s.Start.IsZero() {
		fmt.Fprintf(&sb, "start     : %s\n", formatGTime(s.Start))
	}
	if !s.End.IsZero() {
		fmt.Fprintf(&sb, "end       : %s\n", formatGTime(s.End))
	}
	if d := s.Duration(); d != 0 {
		fmt.Fprintf(&sb, "duration  : %s\n", d)
	}
	if s.NumPos > 0 {
		fmt.Fprintf(&sb, "start pos : %s\n", s.StartPos)
		fmt.Fprintf(&sb, "end pos   : %s\n", s.EndPos)
	}
	fmt.Fprintf(&sb, "length    : %.3f m\n", s.Length)
	if s.NumVel > 0 {
		fmt.Fprintf(&sb, "speed     : min %.3f, max %.3f, mean %.3f m/s\n", s.MinSpeed, s.MaxSpeed, s.AvgSpeed)
	}
	if s.StartUTM != nil {
		fmt.Fprintf(&sb, "start utm : %s\n", s.StartUTM)
	}
	if s.EndUTM != nil {
		fmt.Fprintf(&sb, "end utm   : %s\n", s.EndUTM)
	}
	if s.Aligned != nil {
		fmt.Fprintf(&sb, "alignment : %s\n", s.Aligned)
	} else {
		sb.WriteString("alignment : ok\n")
	}
	return sb.String()
}

func formatGTime(t GTime) string {
	return fmt.Sprintf("%s(UTC) (week%d %7.1fs)(GPST)", t.UTC().Format("2006/01/02 15:04:05.000"), t.Week, t.Sec)
}

// UTM grid position
type UTM struct {
	Zone       int
	Hemisphere rune // 'N' or 'S'
	Easting    float64
	Northing   float64
}

func (u *UTM) String() string {
	return fmt.Sprintf("zone %d%c, easting %.0f, northing %.0f", u.Zone, u.Hemisphere, u.Easting, u.Northing)
}

func toUTM(llh PosLLH) *UTM {
	ll := s2.LatLng{
		Lat: s1.Angle(ToRad(llh.Lat)),
		Lng: s1.Angle(ToRad(llh.Lon)),
	}
	u, err := coordconv.DefaultUTMConverter.ConvertFromGeodetic(ll, 0)
	if err != nil {
		PrintD(1, "utm conversion failed: %s\n", err)
		return nil
	}
	h := 'N'
	if u.Hemisphere == coordconv.HemisphereSouth {
		h = 'S'
	}
	return &UTM{Zone: int(u.Zone), Hemisphere: h, Easting: u.Easting, Northing: u.Northing}
}
