// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tkrajina/gpxgo/gpx"
)

// Write the positions as a GPX track with one segment.
// Points get a timestamp when the record carries GPS time.
func WriteGPX(w io.Writer, lg *Log) error {
	g := &gpx.GPX{}
	g.Creator = "gnssviz"
	g.Name = filepath.Base(lg.Path)

	seg := gpx.GPXTrackSegment{}
	for _, r := range lg.Pos {
		var pt gpx.GPXPoint
		pt.Latitude = r.Pos.Lat
		pt.Longitude = r.Pos.Lon
		pt.Elevation = *gpx.NewNullableFloat64(r.Pos.Hei)
		if !r.Time.IsZero() {
			pt.Timestamp = r.Time.UTC()
		}
		seg.Points = append(seg.Points, pt)
	}
	trk := gpx.GPXTrack{Name: g.Name}
	trk.Segments = append(trk.Segments, seg)
	g.Tracks = append(g.Tracks, trk)

	b, err := g.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("failed to encode GPX: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// Write the positions as a GeoJSON feature collection holding one LineString
func WriteGeoJSON(w io.Writer, lg *Log) error {
	ls := make(orb.LineString, 0, len(lg.Pos))
	alt := make([]float64, 0, len(lg.Pos))
	for _, r := range lg.Pos {
		ls = append(ls, orb.Point{r.Pos.Lon, r.Pos.Lat})
		alt = append(alt, r.Pos.Hei)
	}

	f := geojson.NewFeature(ls)
	f.Properties["name"] = filepath.Base(lg.Path)
	f.Properties["altitudes"] = alt
	if len(lg.Pos) > 0 && !lg.Pos[0].Time.IsZero() {
		f.Properties["start"] = lg.Pos[0].Time.UTC()
		f.Properties["end"] = lg.Pos[len(lg.Pos)-1].Time.UTC()
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(f)
	b, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// Write both exports into dir and return the file names
func Export(lg *Log, dir, gpxFn, geojsonFn string) ([]string, error) {
	if len(lg.Pos) == 0 {
		return nil, ErrEmptyTrack
	}
	files := []string{}
	for _, e := range []struct {
		fn    string
		write func(io.Writer, *Log) error
	}{
		{filepath.Join(dir, gpxFn), WriteGPX},
		{filepath.Join(dir, geojsonFn), WriteGeoJSON},
	} {
		if err := writeFile(e.fn, lg, e.write); err != nil {
			return files, err
		}
		files = append(files, e.fn)
	}
	return files, nil
}

func writeFile(fn string, lg *Log, write func(io.Writer, *Log) error) error {
	f, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f, lg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
