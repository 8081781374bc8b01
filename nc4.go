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
	"reflect"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// nc4Dataset reads NetCDF-4 (HDF5) files. It can also read the
// classic formats, including CDF-5.
type nc4Dataset struct {
	g       api.Group
	getters map[string]api.VarGetter
	lengths map[string][]int
}

func openNC4(path string) (*nc4Dataset, error) {
	g, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nc2gssha: opening NetCDF-4 file %s: %w", path, err)
	}
	return &nc4Dataset{
		g:       g,
		getters: make(map[string]api.VarGetter),
		lengths: make(map[string][]int),
	}, nil
}

// getter returns the cached VarGetter for variable, or nil if the
// variable does not exist.
func (d *nc4Dataset) getter(variable string) api.VarGetter {
	if vg, ok := d.getters[variable]; ok {
		return vg
	}
	vg, err := d.g.GetVarGetter(variable)
	if err != nil {
		vg = nil
	}
	d.getters[variable] = vg
	return vg
}

func (d *nc4Dataset) Variables() []string { return d.g.ListVariables() }

func (d *nc4Dataset) Dimensions(variable string) []string {
	vg := d.getter(variable)
	if vg == nil {
		return nil
	}
	return vg.Dimensions()
}

// Lengths derives the dimension lengths from the shape of the first
// slab, since the group interface does not expose dimensions.
func (d *nc4Dataset) Lengths(variable string) []int {
	if l, ok := d.lengths[variable]; ok {
		return l
	}
	vg := d.getter(variable)
	if vg == nil {
		return nil
	}
	nDims := len(vg.Dimensions())
	l := make([]int, nDims)
	if nDims > 0 {
		l[0] = int(vg.Len())
		if l[0] > 0 && nDims > 1 {
			if s, err := vg.GetSlice(0, 1); err == nil {
				copy(l[1:], shapeOf(s)[1:])
			}
		}
	}
	d.lengths[variable] = l
	return l
}

func (d *nc4Dataset) Attributes(variable string) []string {
	vg := d.getter(variable)
	if vg == nil {
		return nil
	}
	return vg.Attributes().Keys()
}

func (d *nc4Dataset) Attribute(variable, name string) interface{} {
	vg := d.getter(variable)
	if vg == nil {
		return nil
	}
	a, ok := vg.Attributes().Get(name)
	if !ok {
		return nil
	}
	if s, ok := a.(string); ok {
		return s
	}
	// Single-valued attributes are returned as scalars.
	v := reflect.ValueOf(a)
	if v.Kind() != reflect.Slice {
		s := reflect.MakeSlice(reflect.SliceOf(v.Type()), 1, 1)
		s.Index(0).Set(v)
		a = s.Interface()
	}
	f, err := toFloat64(a, true)
	if err != nil {
		return nil
	}
	return f
}

func (d *nc4Dataset) Type(variable string) Type {
	vg := d.getter(variable)
	if vg == nil {
		return Invalid
	}
	switch vg.GoType() {
	case "int8":
		return Byte
	case "uint8":
		return UByte
	case "int16":
		return Short
	case "uint16":
		return UShort
	case "int32":
		return Int
	case "uint32":
		return UInt
	case "int64":
		return Int64
	case "uint64":
		return UInt64
	case "float32":
		return Float
	case "float64":
		return Double
	default:
		return Invalid
	}
}

func (d *nc4Dataset) Read(variable string) ([]float64, error) {
	vg := d.getter(variable)
	if vg == nil {
		return nil, &VariableError{Variable: variable}
	}
	if d.Type(variable) == Invalid {
		return nil, fmt.Errorf("nc2gssha: variable %s is not numeric", variable)
	}
	v, err := vg.Values()
	if err != nil {
		return nil, fmt.Errorf("nc2gssha: reading NetCDF-4 variable %s: %w", variable, err)
	}
	return flatten(v, make([]float64, 0, product(d.Lengths(variable)))), nil
}

func (d *nc4Dataset) ReadSlab(variable string, index int) ([]float64, error) {
	vg := d.getter(variable)
	if vg == nil {
		return nil, &VariableError{Variable: variable}
	}
	if d.Type(variable) == Invalid {
		return nil, fmt.Errorf("nc2gssha: variable %s is not numeric", variable)
	}
	if index < 0 || int64(index) >= vg.Len() {
		return nil, fmt.Errorf("nc2gssha: reading %s: index %d outside dimension of length %d", variable, index, vg.Len())
	}
	v, err := vg.GetSlice(int64(index), int64(index)+1)
	if err != nil {
		return nil, fmt.Errorf("nc2gssha: reading NetCDF-4 variable %s: %w", variable, err)
	}
	return flatten(v, nil), nil
}

func (d *nc4Dataset) Close() error {
	d.g.Close()
	return nil
}

// shapeOf returns the dimensions of a nested slice, following the
// first element at each level.
func shapeOf(data interface{}) []int {
	var shape []int
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Slice {
		shape = append(shape, v.Len())
		if v.Len() == 0 {
			break
		}
		v = v.Index(0)
	}
	return shape
}

// flatten appends the numbers in a (possibly nested) slice or scalar
// to out in row-major order.
func flatten(data interface{}, out []float64) []float64 {
	return flattenValue(reflect.ValueOf(data), out)
}

func flattenValue(v reflect.Value, out []float64) []float64 {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			out = flattenValue(v.Index(i), out)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out = append(out, float64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		out = append(out, float64(v.Uint()))
	case reflect.Float32, reflect.Float64:
		out = append(out, v.Float())
	}
	return out
}
