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
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// ------------------------------------
// Mini functions
// ------------------------------------

func SQ(x float64) float64 {
	return x * x
}

func EucDist(a, b PosXYZ) float64 {
	return math.Sqrt(SQ(a.X-b.X) + SQ(a.Y-b.Y) + SQ(a.Z-b.Z))
}

// Sum of the distances between consecutive points
func PathLength(xyzs []PosXYZ) float64 {
	d := 0.0
	for i := 1; i < len(xyzs); i++ {
		d += EucDist(xyzs[i-1], xyzs[i])
	}
	return d
}

func ToDeg(rad float64) float64 {
	return rad / PI * 180.0
}

func ToRad(deg float64) float64 {
	return deg * PI / 180.0
}

// ------------------------------------
// Logging
// ------------------------------------

var Logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "gnssviz",
	Level:  log.InfoLevel,
})

// Debug display level
var DBG_ int

// Set the debug display level (0: OFF, 1: display, 2: detailed)
func SetDebug(v int) {
	DBG_ = v
	if v >= 1 {
		Logger.SetLevel(log.DebugLevel)
	} else {
		Logger.SetLevel(log.InfoLevel)
	}
}

func SetLogOutput(w io.Writer) {
	Logger.SetOutput(w)
}

func PrintA(format string, a ...any) {
	Logger.Info(line(format, a...))
}

func PrintAIf(cond bool, format string, a ...any) {
	if cond {
		PrintA(format, a...)
	}
}

// Debug display
func PrintD(v int, format string, a ...any) {
	if DBG_ >= v {
		Logger.Debug(line(format, a...))
	}
}

func PrintW(format string, a ...any) {
	Logger.Warn(line(format, a...))
}

func PrintE(err error) {
	Logger.Error("err=" + err.Error())
}

func line(format string, a ...any) string {
	return strings.TrimRight(fmt.Sprintf(format, a...), "\n")
}
