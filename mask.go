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

import "math"

// masker holds the attributes of a variable that decide which of its
// values are missing and how the rest are unpacked.
type masker struct {
	missing            []float64
	validMin, validMax float64
	scale, offset      float64
	hasScale           bool
	hasOffset          bool
}

func newMasker(ds Dataset, variable string, typ Type) *masker {
	m := &masker{
		validMin: math.Inf(-1),
		validMax: math.Inf(1),
		scale:    1,
	}
	if fill, ok := numericAttribute(ds, variable, "_FillValue"); ok {
		m.missing = append(m.missing, fill[0])
	} else if fill, ok := typ.defaultFill(); ok {
		m.missing = append(m.missing, fill)
	}
	if mv, ok := numericAttribute(ds, variable, "missing_value"); ok {
		m.missing = append(m.missing, mv...)
	}
	// valid_range takes precedence over valid_min and valid_max.
	if vr, ok := numericAttribute(ds, variable, "valid_range"); ok && len(vr) == 2 {
		m.validMin, m.validMax = vr[0], vr[1]
	} else {
		if v, ok := numericAttribute(ds, variable, "valid_min"); ok {
			m.validMin = v[0]
		}
		if v, ok := numericAttribute(ds, variable, "valid_max"); ok {
			m.validMax = v[0]
		}
	}
	if v, ok := numericAttribute(ds, variable, "scale_factor"); ok {
		m.scale, m.hasScale = v[0], true
	}
	if v, ok := numericAttribute(ds, variable, "add_offset"); ok {
		m.offset, m.hasOffset = v[0], true
	}
	return m
}

// packed returns whether values are unpacked with a scale factor or
// offset.
func (m *masker) packed() bool { return m.hasScale || m.hasOffset }

func (m *masker) isMissing(v float64) bool {
	if v < m.validMin || v > m.validMax {
		return true
	}
	for _, mv := range m.missing {
		if sameValue(v, mv) {
			return true
		}
	}
	return false
}

// apply masks and unpacks data in place. Masked cells are set to
// noData. The returned mask is nil if no cell was masked.
func (m *masker) apply(data []float64, noData float64) []bool {
	var mask []bool
	for i, v := range data {
		if m.isMissing(v) {
			if mask == nil {
				mask = make([]bool, len(data))
			}
			mask[i] = true
			data[i] = noData
			continue
		}
		if m.packed() {
			data[i] = v*m.scale + m.offset
		}
	}
	return mask
}
