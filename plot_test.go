// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Plotter keeping what it was asked to draw
type recPlotter struct {
	calls  []string
	raw    []PosENU
	smooth []PosENU
	speeds []float64
	fail   string
}

func (p *recPlotter) Raw(enu []PosENU, fn string) error {
	p.raw = enu
	return p.record("raw", fn)
}

func (p *recPlotter) Smoothed(raw, smooth []PosENU, fn string) error {
	p.smooth = smooth
	return p.record("smoothed", fn)
}

func (p *recPlotter) Velocity(enu []PosENU, speeds []float64, fn string) error {
	p.speeds = speeds
	return p.record("velocity", fn)
}

func (p *recPlotter) record(kind, fn string) error {
	p.calls = append(p.calls, kind+":"+fn)
	if p.fail == kind {
		return errors.New("disk full")
	}
	return nil
}

var testFiles = PlotFiles{Raw: "r.png", Smoothed: "s.png", Velocity: "v.png"}

func TestPlots(t *testing.T) {
	lg := calgaryLog(t, 1, 2, 3)
	p := &recPlotter{}
	files, err := Plots(lg, DefaultTransform(), 3, 1, p, testFiles)
	require.NoError(t, err)
	assert.Equal(t, []string{"r.png", "s.png", "v.png"}, files)
	assert.Equal(t, []string{"raw:r.png", "smoothed:s.png", "velocity:v.png"}, p.calls)

	// First point is the origin of the plane, the track runs north
	require.Len(t, p.raw, 3)
	assert.Equal(t, PosENU{}, p.raw[0])
	assert.InDelta(t, 55.6, p.raw[1].N, 0.5)
	assert.InDelta(t, 0, p.raw[2].E, 1e-3)
	require.Len(t, p.smooth, 3)
	for i := range p.raw {
		assert.InDelta(t, p.raw[i].N, p.smooth[i].N, 1e-3)
	}
	assert.Equal(t, []float64{1, 2, 3}, p.speeds)
}

func TestPlotsSpeedMismatch(t *testing.T) {
	p := &recPlotter{}
	files, err := Plots(calgaryLog(t, 1, 2), DefaultTransform(), 3, 1, p, testFiles)
	assert.ErrorIs(t, err, ErrSpeedCount)
	assert.Equal(t, []string{"r.png", "s.png"}, files)
}

func TestPlotsFilterError(t *testing.T) {
	p := &recPlotter{}
	files, err := Plots(calgaryLog(t, 1, 2, 3), DefaultTransform(), 21, 3, p, testFiles)
	var fpe *FilterParameterError
	assert.ErrorAs(t, err, &fpe)
	assert.Equal(t, []string{"r.png"}, files)
	assert.Equal(t, []string{"raw:r.png"}, p.calls)
}

func TestPlotsPlotterError(t *testing.T) {
	p := &recPlotter{fail: "raw"}
	files, err := Plots(calgaryLog(t, 1, 2, 3), DefaultTransform(), 3, 1, p, testFiles)
	assert.ErrorContains(t, err, "disk full")
	assert.Empty(t, files)
}

func TestPlotsEmpty(t *testing.T) {
	_, err := Plots(&Log{}, DefaultTransform(), 3, 1, &recPlotter{}, testFiles)
	assert.ErrorIs(t, err, ErrEmptyTrack)
}

func TestPlotFilesIn(t *testing.T) {
	f := testFiles.In("out")
	assert.Equal(t, PlotFiles{Raw: filepath.Join("out", "r.png"), Smoothed: filepath.Join("out", "s.png"), Velocity: filepath.Join("out", "v.png")}, f)
}

func TestPNGPlotter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping image rendering in short mode")
	}
	dir := t.TempDir()
	files := PlotFiles{Raw: "Raw_Data.png", Smoothed: "SavitzyGolay.png", Velocity: "Velocity_Colored_Plot.png"}.In(dir)

	got, err := Plots(calgaryLog(t, 1, 2, 3), DefaultTransform(), 3, 1, NewPNGPlotter(12, 8), files)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, fn := range got {
		b, err := os.ReadFile(fn)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")), "%s is not a PNG", fn)
	}

	// Constant speeds still get a usable color scale
	fn := filepath.Join(dir, "flat.png")
	require.NoError(t, NewPNGPlotter(12, 8).Velocity([]PosENU{{}, {E: 1}}, []float64{2, 2}, fn))

	err = NewPNGPlotter(12, 8).Velocity([]PosENU{{}}, []float64{1, 2}, fn)
	assert.ErrorIs(t, err, ErrSpeedCount)
}
