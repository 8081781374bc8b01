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
	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
)

// VariableInfo summarizes one variable of a dataset.
type VariableInfo struct {
	Name       string
	Dimensions []string
	Lengths    []int
	Type       Type
	Units      string
	LongName   string
}

// Description summarizes a dataset for choosing a variable to convert.
type Description struct {
	Variables []VariableInfo

	// LatName and LonName are the resolved coordinate variables. They
	// are empty if the coordinates could not be resolved.
	LatName, LonName string

	// Extent is the cell-edge extent of the grid, or nil if the
	// coordinates could not be resolved.
	Extent *geom.Bounds

	// Timesteps is the length of the time variable, or 0 if there is none.
	Timesteps int
}

// Describe lists the variables in ds along with the resolved
// coordinates and the number of timesteps. A dataset whose coordinates
// cannot be resolved is still described; the reason is logged.
func Describe(ds Dataset, units *UnitsAllowlist, timeName string, log logrus.FieldLogger) *Description {
	d := new(Description)
	for _, v := range ds.Variables() {
		vi := VariableInfo{
			Name:       v,
			Dimensions: ds.Dimensions(v),
			Lengths:    ds.Lengths(v),
			Type:       ds.Type(v),
		}
		vi.Units, _ = textAttribute(ds, v, "units")
		vi.LongName, _ = textAttribute(ds, v, "long_name")
		d.Variables = append(d.Variables, vi)
	}
	if axes, err := ResolveAxes(ds, units, log); err != nil {
		log.WithError(err).Warn("coordinates not resolved")
	} else {
		d.LatName, d.LonName = axes.LatName, axes.LonName
		d.Extent = axes.Extent()
	}
	if hasVariable(ds, timeName) {
		if l := ds.Lengths(timeName); len(l) > 0 {
			d.Timesteps = l[0]
		}
	}
	return d
}
