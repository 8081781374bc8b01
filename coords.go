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

	"github.com/BurntSushi/toml"
	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
)

// UnitsAllowlist holds the values of the "units" attribute that
// identify latitude and longitude coordinate variables.
type UnitsAllowlist struct {
	Lat []string `toml:"lat"`
	Lon []string `toml:"lon"`
}

// DefaultUnits returns the CF unit spellings for degrees north and
// degrees east.
func DefaultUnits() *UnitsAllowlist {
	return &UnitsAllowlist{
		Lat: []string{"degrees_north", "degree_north", "degree_N", "degrees_N", "degreeN", "degreesN"},
		Lon: []string{"degrees_east", "degree_east", "degree_E", "degrees_E", "degreeE", "degreesE"},
	}
}

// LoadUnits reads a units allowlist from a TOML file with "lat" and
// "lon" string arrays. An axis left empty in the file keeps its
// default spellings.
func LoadUnits(path string) (*UnitsAllowlist, error) {
	u := new(UnitsAllowlist)
	if _, err := toml.DecodeFile(path, u); err != nil {
		return nil, fmt.Errorf("nc2gssha: reading units file: %w", err)
	}
	d := DefaultUnits()
	if len(u.Lat) == 0 {
		u.Lat = d.Lat
	}
	if len(u.Lon) == 0 {
		u.Lon = d.Lon
	}
	return u, nil
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}

// Axes holds the resolved latitude and longitude coordinate
// variables and their cell-center values.
type Axes struct {
	LatName, LonName string
	Lat, Lon         []float64

	// LatType and LonType are the storage types of the coordinate
	// variables. Header edges of Float axes are computed and printed
	// at single precision.
	LatType, LonType Type
}

// ResolveAxes identifies the latitude and longitude variables in ds
// by their units attribute and reads their values. If more than one
// variable matches an axis, the last one in file order is used.
func ResolveAxes(ds Dataset, units *UnitsAllowlist, log logrus.FieldLogger) (*Axes, error) {
	if units == nil {
		units = DefaultUnits()
	}
	a := new(Axes)
	for _, v := range ds.Variables() {
		u, ok := textAttribute(ds, v, "units")
		if !ok {
			continue
		}
		if contains(units.Lat, u) {
			if a.LatName != "" {
				log.WithFields(logrus.Fields{"previous": a.LatName, "variable": v}).
					Warn("more than one latitude variable; using the last")
			}
			a.LatName = v
		}
		if contains(units.Lon, u) {
			if a.LonName != "" {
				log.WithFields(logrus.Fields{"previous": a.LonName, "variable": v}).
					Warn("more than one longitude variable; using the last")
			}
			a.LonName = v
		}
	}
	if a.LatName == "" {
		return nil, &ResolutionError{Axis: "latitude", Reason: "no variable has latitude units"}
	}
	if a.LonName == "" {
		return nil, &ResolutionError{Axis: "longitude", Reason: "no variable has longitude units"}
	}
	var err error
	if a.Lat, err = readAxis(ds, "latitude", a.LatName); err != nil {
		return nil, err
	}
	if a.Lon, err = readAxis(ds, "longitude", a.LonName); err != nil {
		return nil, err
	}
	a.LatType, a.LonType = ds.Type(a.LatName), ds.Type(a.LonName)
	return a, nil
}

func readAxis(ds Dataset, axis, variable string) ([]float64, error) {
	if n := len(ds.Dimensions(variable)); n != 1 {
		return nil, &ResolutionError{Axis: axis, Variable: variable,
			Reason: fmt.Sprintf("coordinate variable has %d dimensions; it must have 1", n)}
	}
	v, err := ds.Read(variable)
	if err != nil {
		return nil, err
	}
	if len(v) < 2 {
		return nil, &ResolutionError{Axis: axis, Variable: variable,
			Reason: fmt.Sprintf("%d values; at least 2 are needed to find the cell size", len(v))}
	}
	return v, nil
}

// Extent returns the bounds of the dataset's grid cell edges, with X
// as longitude and Y as latitude.
func (a *Axes) Extent() *geom.Bounds {
	w, e := edges(a.Lon)
	s, n := edges(a.Lat)
	return &geom.Bounds{
		Min: geom.Point{X: w, Y: s},
		Max: geom.Point{X: e, Y: n},
	}
}

// edges returns the lowest and highest cell edges of axis.
func edges(axis []float64) (lo, hi float64) {
	half := math.Abs(axis[1]-axis[0]) / 2
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range axis {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo - half, hi + half
}
