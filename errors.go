// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSelector = errors.New("invalid selector")
	ErrSpeedCount      = errors.New("number of speeds does not match number of positions")
	ErrEmptyTrack      = errors.New("no position records")
)

// The log file could not be opened or read
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot access %s: %s", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// A tagged record is too short or carries a non-numeric value
type MalformedRecordError struct {
	Line  int    // 1-based line number
	Tag   string // Record tag such as #PDPPOSA
	Field int    // Field index that failed
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record at line %d, field %d: %s", e.Tag, e.Line, e.Field, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// Smoothing filter parameters do not fit the data
type FilterParameterError struct {
	Window int
	Order  int
	Len    int
	Reason string
}

func (e *FilterParameterError) Error() string {
	return fmt.Sprintf("invalid filter parameters (window=%d, order=%d, len=%d): %s", e.Window, e.Order, e.Len, e.Reason)
}
