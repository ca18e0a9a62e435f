// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

import (
	"fmt"
	"image/color"
	"path/filepath"

	"golang.org/x/exp/slices"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Plotting surface for a track projected onto the local east/north plane
type Plotter interface {
	Raw(enu []PosENU, fn string) error
	Smoothed(raw, smooth []PosENU, fn string) error
	Velocity(enu []PosENU, speeds []float64, fn string) error
}

// Image file names of one plot request
type PlotFiles struct {
	Raw      string
	Smoothed string
	Velocity string
}

// Draw the raw, smoothed and velocity colored plots of a log.
// Files already written are returned together with any error.
func Plots(lg *Log, tr *Transform, window, order int, p Plotter, files PlotFiles) ([]string, error) {
	if len(lg.Pos) == 0 {
		return nil, ErrEmptyTrack
	}
	done := []string{}

	// Convert to cartesian and project on the plane of the first point
	xyz := tr.ToXYZs(lg.Geodetic())
	base := xyz[0]
	enu := ToENUs(xyz, base, tr.Ellipsoid)

	if err := p.Raw(enu, files.Raw); err != nil {
		return done, fmt.Errorf("failed to plot raw data: %w", err)
	}
	done = append(done, files.Raw)

	sm, err := SavGolXYZ(xyz, window, order)
	if err != nil {
		return done, fmt.Errorf("failed to smooth track: %w", err)
	}
	if err := p.Smoothed(enu, ToENUs(sm, base, tr.Ellipsoid), files.Smoothed); err != nil {
		return done, fmt.Errorf("failed to plot smoothed data: %w", err)
	}
	done = append(done, files.Smoothed)

	speeds := lg.Speeds()
	if len(speeds) != len(enu) {
		return done, fmt.Errorf("%w: %d positions, %d speeds", ErrSpeedCount, len(enu), len(speeds))
	}
	if err := p.Velocity(enu, speeds, files.Velocity); err != nil {
		return done, fmt.Errorf("failed to plot velocity: %w", err)
	}
	done = append(done, files.Velocity)
	return done, nil
}

// Plot files in the given directory
func (f PlotFiles) In(dir string) PlotFiles {
	return PlotFiles{
		Raw:      filepath.Join(dir, f.Raw),
		Smoothed: filepath.Join(dir, f.Smoothed),
		Velocity: filepath.Join(dir, f.Velocity),
	}
}

//-------------------------------------------------------------------
// PNGPlotter
//-------------------------------------------------------------------

// Plotter writing images with gonum/plot. The format follows the file extension.
type PNGPlotter struct {
	Width  vg.Length
	Height vg.Length
}

func NewPNGPlotter(widthCm, heightCm float64) *PNGPlotter {
	return &PNGPlotter{
		Width:  vg.Length(widthCm) * vg.Centimeter,
		Height: vg.Length(heightCm) * vg.Centimeter,
	}
}

var (
	colBlue  = color.RGBA{B: 255, A: 255}
	colGreen = color.RGBA{G: 160, A: 255}
	colRed   = color.RGBA{R: 255, A: 90}
)

func (pp *PNGPlotter) Raw(enu []PosENU, fn string) error {
	p := newPlanPlot("Trajectory Plot (Raw Data)")
	xys := toXYs(enu)

	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.LineStyle.Width = vg.Points(1)
	l.LineStyle.Color = colBlue

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = colGreen
	s.GlyphStyle.Radius = vg.Points(1.5)
	s.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(l, s)
	p.Legend.Add("Path", l)
	p.Legend.Add("Points", s)
	return p.Save(pp.Width, pp.Height, fn)
}

func (pp *PNGPlotter) Smoothed(raw, smooth []PosENU, fn string) error {
	p := newPlanPlot("Trajectory with Savitzky-Golay Smoothing")

	s, err := plotter.NewScatter(toXYs(raw))
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = colRed
	s.GlyphStyle.Radius = vg.Points(1.5)
	s.GlyphStyle.Shape = draw.CircleGlyph{}

	l, err := plotter.NewLine(toXYs(smooth))
	if err != nil {
		return err
	}
	l.LineStyle.Width = vg.Points(2)
	l.LineStyle.Color = colBlue

	p.Add(s, l)
	p.Legend.Add("Raw Points", s)
	p.Legend.Add("Post-Processed Path", l)
	return p.Save(pp.Width, pp.Height, fn)
}

func (pp *PNGPlotter) Velocity(enu []PosENU, speeds []float64, fn string) error {
	if len(enu) != len(speeds) {
		return ErrSpeedCount
	}
	p := newPlanPlot("Trajectory with Velocity-Dependent Colors")

	cm := moreland.SmoothBlueRed()
	lo, hi := slices.Min(speeds), slices.Max(speeds)
	if hi <= lo {
		hi = lo + 1
	}
	cm.SetMax(hi)
	cm.SetMin(lo)

	s, err := plotter.NewScatter(toXYs(enu))
	if err != nil {
		return err
	}
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  speedColor(cm, speeds[i]),
			Radius: vg.Points(2),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(s)

	// Legend entries for the ends of the color scale
	for _, v := range []float64{lo, hi} {
		g := draw.GlyphStyle{Color: speedColor(cm, v), Radius: vg.Points(3), Shape: draw.CircleGlyph{}}
		p.Legend.Add(fmt.Sprintf("%.3f m/s", v), glyphThumb(g))
	}
	return p.Save(pp.Width, pp.Height, fn)
}

func newPlanPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "East [m]"
	p.Y.Label.Text = "North [m]"
	p.Add(plotter.NewGrid())
	return p
}

func toXYs(enu []PosENU) plotter.XYs {
	xys := make(plotter.XYs, len(enu))
	for i, e := range enu {
		xys[i].X = e.E
		xys[i].Y = e.N
	}
	return xys
}

func speedColor(cm palette.ColorMap, v float64) color.Color {
	c, err := cm.At(v)
	if err != nil {
		return color.Black
	}
	return c
}

// Legend thumbnail drawing a single glyph
type glyphThumb draw.GlyphStyle

func (g glyphThumb) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(draw.GlyphStyle(g), c.Center())
}
