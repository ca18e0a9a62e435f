// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

import (
	"fmt"
	"os"
	"time"

	"github.com/lestrrat-go/strftime"
)

// Menu selection (0: exit, 1: map link, 2: plots, 3: export, 4: summary)
type Selector int

const (
	SelExit Selector = iota
	SelMapLink
	SelPlots
	SelExport
	SelSummary
)

var selectorNames = map[Selector]string{
	SelExit:    "Exit Program",
	SelMapLink: "Google Maps Plot Visualization",
	SelPlots:   "Plots including Raw, Processed, and Velocity Route Map",
	SelExport:  "Export track (GPX, GeoJSON)",
	SelSummary: "Track summary",
}

// Selectors in menu order
var Selectors = []Selector{SelMapLink, SelPlots, SelExport, SelSummary, SelExit}

func ParseSelector(s string) (Selector, error) {
	switch s {
	case "0":
		return SelExit, nil
	case "1":
		return SelMapLink, nil
	case "2":
		return SelPlots, nil
	case "3":
		return SelExport, nil
	case "4":
		return SelSummary, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
}

func (p *Selector) Set(s string) error {
	sel, err := ParseSelector(s)
	if err != nil {
		return err
	}
	*p = sel
	return nil
}

func (p Selector) String() string {
	if n, ok := selectorNames[p]; ok {
		return n
	}
	return "UNKNOWN!"
}

// What one menu action produced
type Result struct {
	Sel     Selector
	URL     string   // Map link
	Files   []string // Files written
	Summary *Summary
	Exit    bool
}

// Everything an action needs. Session holds no state between actions.
type Session struct {
	Path    string // Log file, read again for every action
	Config  *Config
	Plotter Plotter
	OpenURL func(url string) error // Opens the map link; nil leaves it to the caller
	Now     func() time.Time
}

// Run one menu action
func Dispatch(sel Selector, s *Session) (*Result, error) {
	if _, ok := selectorNames[sel]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSelector, int(sel))
	}
	res := &Result{Sel: sel}
	if sel == SelExit {
		res.Exit = true
		return res, nil
	}

	cfg := s.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}

	lg, err := ReadLogFile(s.Path)
	if err != nil {
		return nil, err
	}
	if err := lg.Aligned(alignTol); err != nil {
		PrintW("positions and speeds are not aligned: %s\n", err)
	}
	tr := cfg.NewTransform()

	switch sel {
	case SelMapLink:
		res.URL = RouteURL(cfg.MapLink.BaseURL, lg.LatLon())
		if s.OpenURL != nil && *cfg.MapLink.OpenBrowser {
			if err := s.OpenURL(res.URL); err != nil {
				return res, fmt.Errorf("failed to open map link: %w", err)
			}
		}

	case SelPlots:
		dir, err := s.outputDir(cfg)
		if err != nil {
			return nil, err
		}
		p := s.Plotter
		if p == nil {
			p = NewPNGPlotter(cfg.Output.WidthCm, cfg.Output.HeightCm)
		}
		files := PlotFiles{
			Raw:      cfg.Output.RawFile,
			Smoothed: cfg.Output.SmoothedFile,
			Velocity: cfg.Output.VelocityFile,
		}
		res.Files, err = Plots(lg, tr, cfg.Smoothing.Window, *cfg.Smoothing.PolyOrder, p, files.In(dir))
		if err != nil {
			return res, err
		}

	case SelExport:
		dir, err := s.outputDir(cfg)
		if err != nil {
			return nil, err
		}
		res.Files, err = Export(lg, dir, cfg.Output.GPXFile, cfg.Output.GeoJSONFile)
		if err != nil {
			return res, err
		}

	case SelSummary:
		res.Summary = Summarize(lg, tr)
	}
	return res, nil
}

// Output directory with strftime patterns expanded, created when missing
func (s *Session) outputDir(cfg *Config) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	dir, err := strftime.Format(cfg.Output.Dir, now())
	if err != nil {
		return "", fmt.Errorf("invalid output directory pattern %q: %w", cfg.Output.Dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return dir, nil
}
