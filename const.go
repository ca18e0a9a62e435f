// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

const (
	PI  = 3.1415926535897932 // Pi
	Re  = 6378137.0          // Semi-major axis of the earth ellipsoid [m]
	E2  = 0.006694           // Eccentricity squared used by the receiver logs
	Hof = 16.600             // Altitude correction subtracted before conversion [m]
	LS  = 18                 // Leap seconds (GPST - UTC)
)

// Log record tags
const (
	TagPdpPos  = "#PDPPOSA"
	TagBestPos = "#BESTPOSA"
	TagPdpVel  = "#PDPVELA"
)

// Field positions in a comma separated record (header fields included)
const (
	FldWeek  = 5  // GPS week
	FldSec   = 6  // Seconds of week
	FldLat   = 11 // Latitude [deg]
	FldLon   = 12 // Longitude [deg]
	FldHei   = 13 // Altitude [m]
	FldSpeed = 13 // Horizontal speed [m/s]
)

// Savitzky-Golay defaults
const (
	SgWindow = 21
	SgOrder  = 3
)

const MapsBaseURL = "https://www.google.com/maps/dir/"
