// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

import (
	"strconv"
	"strings"
)

// Route URL through every point, "base/lat,lon/lat,lon/...".
// Numbers are written as is, nothing is escaped.
func RouteURL(base string, pts []LatLon) string {
	var sb strings.Builder
	sb.WriteString(base)
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(formatCoord(p[0]))
		sb.WriteByte(',')
		sb.WriteString(formatCoord(p[1]))
	}
	return sb.String()
}

// Shortest decimal that reads back to v. Integral values keep ".0".
func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
