// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestToXYZEquator(t *testing.T) {
	tr := DefaultTransform()
	xyz := tr.ToXYZ(PosLLH{Lat: 0, Lon: 0, Hei: 16.600})
	assert.InDelta(t, 6378137.0, xyz.X, 1e-6)
	assert.InDelta(t, 0, xyz.Y, 1e-6)
	assert.InDelta(t, 0, xyz.Z, 1e-6)
}

func TestToXYZPole(t *testing.T) {
	tr := DefaultTransform()
	xyz := tr.ToXYZ(PosLLH{Lat: 90, Lon: 0, Hei: 16.600})
	want := (1 - E2) * Re / math.Sqrt(1-E2)
	assert.InDelta(t, 0, xyz.X, 1e-6)
	assert.InDelta(t, 0, xyz.Y, 1e-6)
	assert.InEpsilon(t, want, xyz.Z, 1e-6)
}

func TestToXYZEast(t *testing.T) {
	// 90 degrees east puts the point on the y axis
	tr := DefaultTransform()
	xyz := tr.ToXYZ(PosLLH{Lat: 0, Lon: 90, Hei: 116.600})
	assert.InDelta(t, 0, xyz.X, 1e-6)
	assert.InDelta(t, Re+100, xyz.Y, 1e-6)
	assert.InDelta(t, 0, xyz.Z, 1e-6)
}

func TestToXYZNoAltOffset(t *testing.T) {
	llh := PosLLH{Lat: 51.0795, Lon: -114.1315, Hei: 1100}
	with := DefaultTransform().ToXYZ(llh)
	without := NewTransform(Re, E2, NoAltOffset).ToXYZ(llh)

	// Both variants differ by 16.6 m along the ellipsoid normal
	assert.InDelta(t, Hof, EucDist(with, without), 1e-6)
}

func TestToXYZNaN(t *testing.T) {
	xyz := DefaultTransform().ToXYZ(PosLLH{Lat: math.NaN(), Lon: 10, Hei: 0})
	assert.True(t, math.IsNaN(xyz.X))
	assert.True(t, math.IsNaN(xyz.Y))
	assert.True(t, math.IsNaN(xyz.Z))
}

func TestToXYZDeterministic(t *testing.T) {
	tr := DefaultTransform()
	rapid.Check(t, func(t *rapid.T) {
		llh := PosLLH{
			Lat: rapid.Float64Range(-90, 90).Draw(t, "lat"),
			Lon: rapid.Float64Range(-180, 180).Draw(t, "lon"),
			Hei: rapid.Float64Range(-500, 10000).Draw(t, "hei"),
		}
		a := tr.ToXYZ(llh)
		b := tr.ToXYZ(llh)
		if math.Float64bits(a.X) != math.Float64bits(b.X) ||
			math.Float64bits(a.Y) != math.Float64bits(b.Y) ||
			math.Float64bits(a.Z) != math.Float64bits(b.Z) {
			t.Fatalf("different results for %v: %v, %v", llh, a, b)
		}
	})
}

func TestToLLHRoundTrip(t *testing.T) {
	tr := DefaultTransform()
	rapid.Check(t, func(t *rapid.T) {
		llh := PosLLH{
			Lat: rapid.Float64Range(-89.9, 89.9).Draw(t, "lat"),
			Lon: rapid.Float64Range(-179.9, 179.9).Draw(t, "lon"),
			Hei: rapid.Float64Range(-500, 10000).Draw(t, "hei"),
		}
		got := tr.ToLLH(tr.ToXYZ(llh))
		if math.Abs(got.Lat-llh.Lat) > 1e-8 || math.Abs(got.Lon-llh.Lon) > 1e-8 || math.Abs(got.Hei-llh.Hei) > 1e-3 {
			t.Fatalf("round trip %v -> %v", llh, got)
		}
	})
}

func TestToLLHPole(t *testing.T) {
	tr := DefaultTransform()
	got := tr.ToLLH(tr.ToXYZ(PosLLH{Lat: 90, Lon: 0, Hei: 500}))
	assert.InDelta(t, 90, got.Lat, 1e-9)
	assert.InDelta(t, 500, got.Hei, 1e-3)
}

func TestToENU(t *testing.T) {
	tr := DefaultTransform()
	base := tr.ToXYZ(PosLLH{Lat: 51.0795, Lon: -114.1315, Hei: 1100})
	up := tr.ToXYZ(PosLLH{Lat: 51.0795, Lon: -114.1315, Hei: 1200})
	north := tr.ToXYZ(PosLLH{Lat: 51.0805, Lon: -114.1315, Hei: 1100})

	enus := ToENUs([]PosXYZ{base, up, north}, base, tr.Ellipsoid)
	assert.Equal(t, PosENU{}, enus[0])
	assert.InDelta(t, 0, enus[1].E, 1e-6)
	assert.InDelta(t, 0, enus[1].N, 1e-6)
	assert.InDelta(t, 100, enus[1].U, 1e-6)
	assert.InDelta(t, 0, enus[2].E, 1e-6)
	assert.InDelta(t, 111.2, enus[2].N, 0.2) // 0.001 deg of latitude
	assert.Less(t, enus[2].U, 0.0)
}

func TestPosLLHString(t *testing.T) {
	llh := PosLLH{Lat: 51.0795, Lon: -114.1315, Hei: 1100.5}
	assert.Equal(t, "51.07950000 -114.13150000 1100.5000", llh.String())
}
