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

	"github.com/ctessum/sparse"
)

// selectionKind identifies the role of one dimension of a variable.
type selectionKind int

const (
	timeSel selectionKind = iota
	latSel
	lonSel
	otherSel
)

// selection is the inclusive index range [lo, hi] taken along one
// dimension.
type selection struct {
	kind   selectionKind
	lo, hi int
}

func (s selection) size() int { return s.hi - s.lo + 1 }

// Grid is a two-dimensional slice of a variable at one timestep, in
// the variable's own latitude/longitude dimension order.
type Grid struct {
	*sparse.DenseArray

	// Type is the storage type that determines how values are formatted.
	Type Type

	// masked marks cells that were replaced with the no-data value.
	masked []bool
}

// Masked returns whether the cell at flat index i holds the no-data value.
func (g *Grid) Masked(i int) bool {
	return g.masked != nil && g.masked[i]
}

// Apply replaces every unmasked cell with the result of t. The grid is
// written as 64-bit floating point afterwards.
func (g *Grid) Apply(t *Transform) error {
	for i, v := range g.Elements {
		if g.Masked(i) {
			continue
		}
		o, err := t.Eval(v)
		if err != nil {
			return err
		}
		g.Elements[i] = o
	}
	g.Type = Double
	return nil
}

// plan matches each dimension of variable to a selection.
func plan(ds Dataset, variable string, axes *Axes, timeName string, t int, idx Indices) ([]selection, error) {
	if !hasVariable(ds, variable) {
		return nil, &VariableError{Variable: variable}
	}
	dims := ds.Dimensions(variable)
	lengths := ds.Lengths(variable)
	mismatch := func(format string, args ...interface{}) error {
		return &DimensionMismatchError{Variable: variable, Dimensions: dims, Reason: fmt.Sprintf(format, args...)}
	}

	sels := make([]selection, len(dims))
	count := make(map[selectionKind]int)
	for i, d := range dims {
		switch d {
		case timeName:
			if t < 0 || t >= lengths[i] {
				return nil, &TimestepError{Timestep: t, Count: lengths[i]}
			}
			sels[i] = selection{kind: timeSel, lo: t, hi: t}
		case axes.LatName:
			lo, hi := minMax(idx.South, idx.North)
			if hi >= lengths[i] {
				return nil, mismatch("latitude index %d outside dimension %s of length %d", hi, d, lengths[i])
			}
			sels[i] = selection{kind: latSel, lo: lo, hi: hi}
		case axes.LonName:
			lo, hi := minMax(idx.West, idx.East)
			if hi >= lengths[i] {
				return nil, mismatch("longitude index %d outside dimension %s of length %d", hi, d, lengths[i])
			}
			sels[i] = selection{kind: lonSel, lo: lo, hi: hi}
		default:
			if lengths[i] == 0 {
				return nil, mismatch("dimension %s is empty", d)
			}
			sels[i] = selection{kind: otherSel}
		}
		count[sels[i].kind]++
	}
	for _, c := range []struct {
		kind selectionKind
		name string
	}{{timeSel, timeName}, {latSel, axes.LatName}, {lonSel, axes.LonName}} {
		if count[c.kind] != 1 {
			return nil, mismatch("expected exactly one %s dimension, found %d", c.name, count[c.kind])
		}
	}
	return sels, nil
}

func minMax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}

// Extract reads the latitude/longitude region selected by idx from
// variable at timestep t. Dimensions other than time, latitude and
// longitude are fixed at index 0. Cells matching the variable's fill
// or missing values, or outside its valid range, are set to noData;
// other cells are unpacked with scale_factor and add_offset.
func Extract(ds Dataset, variable string, axes *Axes, timeName string, t int, idx Indices, noData float64) (*Grid, error) {
	sels, err := plan(ds, variable, axes, timeName, t, idx)
	if err != nil {
		return nil, err
	}
	typ := ds.Type(variable)
	if typ == Invalid {
		return nil, fmt.Errorf("nc2gssha: variable %s is not numeric", variable)
	}

	shape := ds.Lengths(variable)
	var data []float64
	if sels[0].kind == timeSel || sels[0].kind == otherSel {
		data, err = ds.ReadSlab(variable, sels[0].lo)
		sels, shape = sels[1:], shape[1:]
	} else {
		data, err = ds.Read(variable)
	}
	if err != nil {
		return nil, err
	}
	if len(data) != product(shape) {
		return nil, fmt.Errorf("nc2gssha: reading %s: got %d values, expected %d", variable, len(data), product(shape))
	}

	var outShape []int
	for _, s := range sels {
		if s.kind == latSel || s.kind == lonSel {
			outShape = append(outShape, s.size())
		}
	}
	g := &Grid{
		DenseArray: sparse.ZerosDense(outShape...),
		Type:       typ,
	}
	gather(data, shape, sels, g.Elements)

	m := newMasker(ds, variable, typ)
	if m.packed() {
		g.Type = Double
	}
	g.masked = m.apply(g.Elements, noData)
	return g, nil
}

// gather copies the cells of data (with the given shape) selected by
// sels into out in row-major order.
func gather(data []float64, shape []int, sels []selection, out []float64) {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	pos := make([]int, len(sels))
	for i, s := range sels {
		pos[i] = s.lo
	}
	for n := range out {
		src := 0
		for i, p := range pos {
			src += p * strides[i]
		}
		out[n] = data[src]
		// Advance the innermost index, carrying outward.
		for i := len(sels) - 1; i >= 0; i-- {
			if pos[i] < sels[i].hi {
				pos[i]++
				break
			}
			pos[i] = sels[i].lo
		}
	}
}
