// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

import (
	"fmt"
	"math"
)

//-------------------------------------------------------------------
// Ellipsoid / Transform
//-------------------------------------------------------------------

// Earth model used for the geodetic <-> cartesian conversion
type Ellipsoid struct {
	A  float64 // Semi-major axis [m]
	E2 float64 // Eccentricity squared
}

// Radius of curvature in the prime vertical at latitude lat [rad]
func (ell Ellipsoid) N(lat float64) float64 {
	s := math.Sin(lat)
	return ell.A / math.Sqrt(1-ell.E2*s*s)
}

// Semi-minor axis
func (ell Ellipsoid) B() float64 {
	return ell.A * math.Sqrt(1-ell.E2)
}

// Geodetic to cartesian conversion.
// AltOffset is subtracted from the altitude before use. Logs from the
// receiver carry a fixed 16.600 m correction; set NoAltOffset to skip it.
type Transform struct {
	Ellipsoid
	AltOffset float64
}

const NoAltOffset = 0.0

func NewTransform(a, e2, altOffset float64) *Transform {
	return &Transform{
		Ellipsoid: Ellipsoid{A: a, E2: e2},
		AltOffset: altOffset,
	}
}

func DefaultTransform() *Transform {
	return NewTransform(Re, E2, Hof)
}

func (t *Transform) ToXYZ(llh PosLLH) PosXYZ {
	lat := ToRad(llh.Lat)
	lon := ToRad(llh.Lon)
	h := llh.Hei - t.AltOffset

	n := t.N(lat)
	return PosXYZ{
		X: (n + h) * math.Cos(lat) * math.Cos(lon),
		Y: (n + h) * math.Cos(lat) * math.Sin(lon),
		Z: ((1-t.E2)*n + h) * math.Sin(lat),
	}
}

// Convert all points in order
func (t *Transform) ToXYZs(llhs []PosLLH) []PosXYZ {
	xyzs := make([]PosXYZ, len(llhs))
	for i, llh := range llhs {
		xyzs[i] = t.ToXYZ(llh)
	}
	return xyzs
}

// Inverse of ToXYZ. The altitude offset is added back.
func (t *Transform) ToLLH(pos PosXYZ) PosLLH {
	llh := pos.toLLH(t.Ellipsoid)
	llh.Hei += t.AltOffset
	return llh
}

//-------------------------------------------------------------------
// PosLLH
//-------------------------------------------------------------------

// Latitude and longitude in degrees, altitude in meters
type PosLLH struct {
	Lat float64
	Lon float64
	Hei float64
}

func (llh PosLLH) LatLon() LatLon {
	return LatLon{llh.Lat, llh.Lon}
}

func (llh PosLLH) String() string {
	return fmt.Sprintf("%.8f %.8f %.4f", llh.Lat, llh.Lon, llh.Hei)
}

// Latitude / longitude pair [deg]
type LatLon [2]float64

//-------------------------------------------------------------------
// PosXYZ
//-------------------------------------------------------------------

type PosXYZ struct {
	X float64
	Y float64
	Z float64
}

func (pos PosXYZ) toLLH(ell Ellipsoid) PosLLH {
	// In case of origin
	if pos.X == 0 && pos.Y == 0 && pos.Z == 0 {
		return PosLLH{Lat: 0, Lon: 0, Hei: -ell.A}
	}

	a := ell.A
	b := ell.B()

	// Parameters for coordinate transformation (Bowring)
	h := a*a - b*b
	p := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y)
	t := math.Atan2(pos.Z*a, p*b)
	sint := math.Sin(t)
	cost := math.Cos(t)

	lat := math.Atan2(pos.Z+h/b*sint*sint*sint, p-h/a*cost*cost*cost)
	lon := math.Atan2(pos.Y, pos.X)
	n := ell.N(lat)

	// Height from the polar axis distance breaks down near the poles
	var hei float64
	if math.Abs(math.Cos(lat)) > 1e-10 {
		hei = p/math.Cos(lat) - n
	} else {
		hei = math.Abs(pos.Z) - n*(1-ell.E2)
	}
	return PosLLH{Lat: ToDeg(lat), Lon: ToDeg(lon), Hei: hei}
}

// Local east/north/up offsets of pos seen from base
func (pos PosXYZ) ToENU(base PosXYZ, ell Ellipsoid) PosENU {
	// Relative position from the reference location
	x := pos.X - base.X
	y := pos.Y - base.Y
	z := pos.Z - base.Z

	// Latitude and longitude of the reference location
	llh := base.toLLH(ell)
	s1 := math.Sin(ToRad(llh.Lon))
	c1 := math.Cos(ToRad(llh.Lon))
	s2 := math.Sin(ToRad(llh.Lat))
	c2 := math.Cos(ToRad(llh.Lat))

	// Rotate the relative position to convert to ENU coordinates
	return PosENU{
		E: -x*s1 + y*c1,
		N: -x*c1*s2 - y*s1*s2 + z*c2,
		U: x*c1*c2 + y*s1*c2 + z*s2,
	}
}

// Project a track onto the local plane at base
func ToENUs(xyzs []PosXYZ, base PosXYZ, ell Ellipsoid) []PosENU {
	enus := make([]PosENU, len(xyzs))
	for i, p := range xyzs {
		enus[i] = p.ToENU(base, ell)
	}
	return enus
}

//-------------------------------------------------------------------
// PosENU
//-------------------------------------------------------------------

type PosENU struct {
	E float64
	N float64
	U float64
}
