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
	"os"

	"github.com/ctessum/cdf"
)

// ncfDataset reads classic and 64-bit offset NetCDF files.
type ncfDataset struct {
	f    *os.File
	nc   *cdf.File
	nRec int
}

func openNCF(path string) (*ncfDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nc2gssha: opening NetCDF file: %w", err)
	}
	nc, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("nc2gssha: opening NetCDF file %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("nc2gssha: opening NetCDF file %s: %w", path, err)
	}
	return &ncfDataset{
		f:    f,
		nc:   nc,
		nRec: int(nc.Header.NumRecs(fi.Size())),
	}, nil
}

func (d *ncfDataset) Variables() []string { return d.nc.Header.Variables() }

func (d *ncfDataset) Dimensions(variable string) []string {
	return d.nc.Header.Dimensions(variable)
}

func (d *ncfDataset) Lengths(variable string) []int {
	l := d.nc.Header.Lengths(variable)
	if len(l) == 0 {
		return nil
	}
	o := make([]int, len(l))
	copy(o, l)
	if d.nc.Header.IsRecordVariable(variable) {
		o[0] = d.nRec
	}
	return o
}

func (d *ncfDataset) Attributes(variable string) []string {
	return d.nc.Header.Attributes(variable)
}

func (d *ncfDataset) Attribute(variable, name string) interface{} {
	a := d.nc.Header.GetAttribute(variable, name)
	switch v := a.(type) {
	case nil:
		return nil
	case string:
		return v
	default:
		f, err := toFloat64(v, false)
		if err != nil {
			return nil
		}
		return f
	}
}

func (d *ncfDataset) Type(variable string) Type {
	switch d.nc.Header.ZeroValue(variable, 0).(type) {
	case []uint8, []int8:
		return Byte
	case []int16:
		return Short
	case []int32:
		return Int
	case []float32:
		return Float
	case []float64:
		return Double
	default:
		return Invalid
	}
}

func (d *ncfDataset) Read(variable string) ([]float64, error) {
	dims := d.Lengths(variable)
	if dims == nil {
		return nil, &VariableError{Variable: variable}
	}
	if !d.nc.Header.IsRecordVariable(variable) {
		r := d.nc.Reader(variable, nil, nil)
		buf := r.Zero(-1)
		if _, err := r.Read(buf); err != nil {
			return nil, fmt.Errorf("nc2gssha: reading NetCDF variable %s: %w", variable, err)
		}
		return toFloat64(buf, false)
	}
	// Records are interleaved with other record variables.
	o := make([]float64, 0, product(dims))
	for i := 0; i < dims[0]; i++ {
		rec, err := d.ReadSlab(variable, i)
		if err != nil {
			return nil, err
		}
		o = append(o, rec...)
	}
	return o, nil
}

func (d *ncfDataset) ReadSlab(variable string, index int) ([]float64, error) {
	dims := d.Lengths(variable)
	if len(dims) == 0 {
		return nil, &VariableError{Variable: variable}
	}
	if index < 0 || index >= dims[0] {
		return nil, fmt.Errorf("nc2gssha: reading %s: index %d outside dimension of length %d", variable, index, dims[0])
	}
	n := product(dims[1:])
	if n == 0 {
		return []float64{}, nil
	}
	start, end := make([]int, len(dims)), make([]int, len(dims))
	start[0], end[0] = index, index+1
	r := d.nc.Reader(variable, start, end)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("nc2gssha: reading NetCDF variable %s: %w", variable, err)
	}
	return toFloat64(buf, false)
}

func (d *ncfDataset) Close() error { return d.f.Close() }
