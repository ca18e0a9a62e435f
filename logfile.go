// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Receiver ASCII logs (#PDPPOSA / #BESTPOSA / #PDPVELA).
//
// Records are comma separated including the header part, so that
//
//	#BESTPOSA,COM1,0,83.5,FINESTEERING,1419,336208.000,02000040,6145,2724;SOL_COMPUTED,SINGLE,51.116,-114.038,1064.95,...
//
// carries the latitude, longitude and altitude at fields 11, 12 and 13,
// and #PDPVELA carries the horizontal speed at field 13.

// Read buffer size. Lines longer than this arrive in several chunks.
const readBufSize = 64 * 1024

// One position record
type PosRecord struct {
	Time GTime // Zero when the header has no time
	Pos  PosLLH
	Line int
}

// One velocity record
type VelRecord struct {
	Time  GTime
	Speed float64 // Horizontal speed [m/s]
	Line  int
}

// Position and velocity records of one log file in file order.
// Pos[i] and Vel[i] are assumed to belong to the same epoch; nothing in the
// file guarantees it (see Aligned).
type Log struct {
	Path string
	Pos  []PosRecord
	Vel  []VelRecord
}

// [lat, lon] of every position record
func (p *Log) LatLon() []LatLon {
	ll := make([]LatLon, len(p.Pos))
	for i, r := range p.Pos {
		ll[i] = r.Pos.LatLon()
	}
	return ll
}

// [lat, lon, alt] of every position record
func (p *Log) Geodetic() []PosLLH {
	llh := make([]PosLLH, len(p.Pos))
	for i, r := range p.Pos {
		llh[i] = r.Pos
	}
	return llh
}

// Speed of every velocity record
func (p *Log) Speeds() []float64 {
	v := make([]float64, len(p.Vel))
	for i, r := range p.Vel {
		v[i] = r.Speed
	}
	return v
}

// Check that positions and speeds can be paired by index.
// Epochs are compared only where both records carry a time.
func (p *Log) Aligned(tol float64) error {
	if len(p.Pos) != len(p.Vel) {
		return fmt.Errorf("%w: %d positions, %d speeds", ErrSpeedCount, len(p.Pos), len(p.Vel))
	}
	for i := range p.Pos {
		tp, tv := p.Pos[i].Time, p.Vel[i].Time
		if tp.IsZero() || tv.IsZero() {
			continue
		}
		if !tp.Near(tv, tol) {
			return fmt.Errorf("record %d: position line %d at %.3f s, velocity line %d at %.3f s", i, p.Pos[i].Line, tp.Sec, p.Vel[i].Line, tv.Sec)
		}
	}
	return nil
}

// Read a log. Any malformed position or velocity record aborts the read.
// Untagged lines are skipped whatever their length.
func ReadLog(r io.Reader) (*Log, error) {

	lg := &Log{
		Pos: make([]PosRecord, 0),
		Vel: make([]VelRecord, 0),
	}

	br := bufio.NewReaderSize(r, readBufSize)
	ln := 0
	for {
		line, ok, err := readTagged(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ln++
		if !ok {
			continue
		}

		switch {
		case strings.HasPrefix(line, TagPdpPos) || strings.HasPrefix(line, TagBestPos):
			rec, err := parsePos(line, ln)
			if err != nil {
				return nil, err
			}
			lg.Pos = append(lg.Pos, rec)
			PrintD(2, "pos line=%d lat=%.9f lon=%.9f hei=%.4f\n", ln, rec.Pos.Lat, rec.Pos.Lon, rec.Pos.Hei)

		case strings.HasPrefix(line, TagPdpVel):
			rec, err := parseVel(line, ln)
			if err != nil {
				return nil, err
			}
			lg.Vel = append(lg.Vel, rec)
			PrintD(2, "vel line=%d speed=%.4f\n", ln, rec.Speed)
		}
	}

	PrintD(1, "read %d lines: %d positions, %d speeds\n", ln, len(lg.Pos), len(lg.Vel))
	return lg, nil
}

// Read the next line. ok is false for lines without a record tag; their
// content is discarded chunk by chunk without being kept in memory.
// err is io.EOF only when no line is left.
func readTagged(br *bufio.Reader) (line string, ok bool, err error) {
	chunk, more, err := br.ReadLine()
	if err != nil {
		return "", false, err
	}
	ok = hasTag(chunk)

	var buf []byte
	if ok {
		buf = append(buf, chunk...)
	}
	for more {
		chunk, more, err = br.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", false, err
		}
		if ok {
			buf = append(buf, chunk...)
		}
	}
	return string(buf), ok, nil
}

func hasTag(b []byte) bool {
	for _, t := range []string{TagPdpPos, TagBestPos, TagPdpVel} {
		if bytes.HasPrefix(b, []byte(t)) {
			return true
		}
	}
	return false
}

// Open, read and close a log file
func ReadLogFile(fn string) (*Log, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, &FileAccessError{Path: fn, Err: err}
	}
	defer f.Close()

	// Errors other than malformed records come from reading the file
	lg, err := ReadLog(f)
	if err != nil {
		var mre *MalformedRecordError
		if errors.As(err, &mre) {
			return nil, err
		}
		return nil, &FileAccessError{Path: fn, Err: err}
	}
	lg.Path = fn
	return lg, nil
}

func parsePos(line string, ln int) (PosRecord, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	tag := recordTag(parts[0])

	var rec PosRecord
	var err error
	if rec.Pos.Lat, err = parseField(parts, FldLat, tag, ln); err != nil {
		return rec, err
	}
	if rec.Pos.Lon, err = parseField(parts, FldLon, tag, ln); err != nil {
		return rec, err
	}
	if rec.Pos.Hei, err = parseField(parts, FldHei, tag, ln); err != nil {
		return rec, err
	}
	rec.Time, _ = parseGTime(parts)
	rec.Line = ln
	return rec, nil
}

func parseVel(line string, ln int) (VelRecord, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	tag := recordTag(parts[0])

	var rec VelRecord
	var err error
	if rec.Speed, err = parseField(parts, FldSpeed, tag, ln); err != nil {
		return rec, err
	}
	rec.Time, _ = parseGTime(parts)
	rec.Line = ln
	return rec, nil
}

func parseField(parts []string, i int, tag string, ln int) (float64, error) {
	if i >= len(parts) {
		return 0, &MalformedRecordError{
			Line:  ln,
			Tag:   tag,
			Field: i,
			Err:   fmt.Errorf("record has %d fields", len(parts)),
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
	if err != nil {
		return 0, &MalformedRecordError{Line: ln, Tag: tag, Field: i, Err: err}
	}
	return v, nil
}

// Tag of the first field without a trailing port or header suffix
func recordTag(f string) string {
	for _, t := range []string{TagBestPos, TagPdpPos, TagPdpVel} {
		if strings.HasPrefix(f, t) {
			return t
		}
	}
	return f
}
