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
	"math"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// BoundingBox is a geographic region of interest in degrees.
type BoundingBox struct {
	North, South, East, West float64
}

// wrapped returns a copy of b with negative East and West values
// moved into the 0–360 range.
func (b *BoundingBox) wrapped() *BoundingBox {
	o := *b
	if o.East < 0 {
		o.East += 360
	}
	if o.West < 0 {
		o.West += 360
	}
	return &o
}

// Bounds returns b as a geom.Bounds with X as longitude and Y as
// latitude.
func (b *BoundingBox) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: math.Min(b.West, b.East), Y: math.Min(b.South, b.North)},
		Max: geom.Point{X: math.Max(b.West, b.East), Y: math.Max(b.South, b.North)},
	}
}

// Indices holds the axis indices of the cells nearest to each edge
// of a bounding box.
type Indices struct {
	North, South, East, West int
}

// FindIndices returns the indices of the axis samples nearest to each
// edge of bbox. If bbox is nil, the full extent of the axes is used.
// Negative east and west values have 360 added before matching. A box
// that extends past the dataset is clamped to the nearest samples and
// a warning is logged.
func FindIndices(axes *Axes, bbox *BoundingBox, log logrus.FieldLogger) Indices {
	if bbox == nil {
		return Indices{
			North: len(axes.Lat) - 1,
			South: 0,
			East:  len(axes.Lon) - 1,
			West:  0,
		}
	}
	b := bbox.wrapped()

	extent := axes.Extent()
	bb := b.Bounds()
	fields := logrus.Fields{
		"north": bbox.North, "south": bbox.South, "east": bbox.East, "west": bbox.West,
	}
	if !extent.Overlaps(bb) {
		log.WithFields(fields).Warn("bounding box does not overlap the dataset; using the nearest edge cells")
	} else if bb.Min.X < extent.Min.X || bb.Min.Y < extent.Min.Y ||
		bb.Max.X > extent.Max.X || bb.Max.Y > extent.Max.Y {
		log.WithFields(fields).Warn("bounding box extends past the dataset; clamping to the dataset edges")
	}

	return Indices{
		North: nearest(axes.Lat, b.North),
		South: nearest(axes.Lat, b.South),
		East:  nearest(axes.Lon, b.East),
		West:  nearest(axes.Lon, b.West),
	}
}

// nearest returns the index of the value in axis closest to v. Ties
// go to the lowest index.
func nearest(axis []float64, v float64) int {
	d := make([]float64, len(axis))
	for i, a := range axis {
		d[i] = math.Abs(a - v)
	}
	return floats.MinIdx(d)
}
