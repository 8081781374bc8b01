/*
Copyright © 2024 the nc2gssha authors.
This file is part of nc2gssha.

nc2gssha is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

nc2gssha is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with nc2gssha.  If not, see <http://www.gnu.org/licenses/>.
*/

package nc2gssha

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format is an ASCII raster output format.
type Format int

const (
	// GRASS is the GRASS ASCII grid format read by GSSHA.
	GRASS Format = iota

	// ARC is the ESRI ARC/INFO ASCII grid format.
	ARC
)

// ParseFormat returns the format with the given name, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "grass":
		return GRASS, nil
	case "arc":
		return ARC, nil
	default:
		return GRASS, fmt.Errorf("nc2gssha: invalid output format %q; valid formats are GRASS and ARC", s)
	}
}

func (f Format) String() string {
	if f == ARC {
		return "ARC"
	}
	return "GRASS"
}

// Extension returns the file extension used for rasters in format f.
func (f Format) Extension() string {
	if f == ARC {
		return "asc"
	}
	return "ggd"
}

// RasterHeader describes the extent and resolution of an output raster.
type RasterHeader struct {
	North, South, East, West float64
	Rows, Cols               int
	CellSize, NoData         float64

	// LatType and LonType are the storage types of the coordinates
	// that North/South and East/West/CellSize come from.
	LatType, LonType Type
}

// NewRasterHeader calculates the raster header for the region of axes
// selected by idx. Edges lie half a cell beyond the selected cell
// centers. Rows counts the longitude span and Cols the latitude span.
// Edges of single-precision axes are rounded to single precision after
// each step.
func NewRasterHeader(axes *Axes, idx Indices, noData float64) *RasterHeader {
	lat, lon := precision(axes.LatType), precision(axes.LonType)
	halfHeight := lat(lat(math.Abs(lat(axes.Lat[1]-axes.Lat[0]))) / 2)
	halfWidth := lon(lon(math.Abs(lon(axes.Lon[1]-axes.Lon[0]))) / 2)
	return &RasterHeader{
		North:    lat(axes.Lat[idx.North] + halfHeight),
		South:    lat(axes.Lat[idx.South] - halfHeight),
		East:     lon(axes.Lon[idx.East] + halfWidth),
		West:     lon(axes.Lon[idx.West] - halfWidth),
		Rows:     1 + abs(idx.East-idx.West),
		Cols:     1 + abs(idx.North-idx.South),
		CellSize: lon(halfWidth * 2),
		NoData:   noData,
		LatType:  axes.LatType,
		LonType:  axes.LonType,
	}
}

// precision returns a function that rounds values to the precision of
// typ.
func precision(typ Type) func(float64) float64 {
	if typ == Float {
		return func(v float64) float64 { return float64(float32(v)) }
	}
	return func(v float64) float64 { return v }
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// Render returns the header text for format f, including the
// trailing newline.
func (h *RasterHeader) Render(f Format) string {
	lat := func(v float64) string { return formatNumber(v, h.LatType) }
	lon := func(v float64) string { return formatNumber(v, h.LonType) }
	if f == ARC {
		return fmt.Sprintf("ncols %d\nnrows %d\nxllcorner %s\nyllcorner %s\ncellsize %s\nNODATA_value %s\n",
			h.Cols, h.Rows, lat(h.South), lon(h.West),
			lon(h.CellSize), formatNumber(h.NoData, Double))
	}
	return fmt.Sprintf("north: %s\nsouth: %s\neast: %s\nwest: %s\nrows: %d\ncols: %d\n",
		lat(h.North), lat(h.South), lon(h.East),
		lon(h.West), h.Rows, h.Cols)
}

// formatNumber formats v in the shortest form that parses back to v at
// the precision of typ, without an exponent.
func formatNumber(v float64, typ Type) string {
	if typ == Float {
		return strconv.FormatFloat(v, 'f', -1, 32)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
