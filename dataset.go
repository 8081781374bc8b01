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
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
)

// Dataset is a read-only handle to a gridded NetCDF dataset.
type Dataset interface {
	// Variables returns the variable names in file order.
	Variables() []string

	// Dimensions returns the dimension names of variable, outermost first.
	Dimensions(variable string) []string

	// Lengths returns the dimension lengths of variable. The record
	// dimension, if any, reports the number of records in the file.
	Lengths(variable string) []int

	// Attributes returns the attribute names of variable.
	Attributes(variable string) []string

	// Attribute returns the value of the named attribute: a string
	// for text attributes and a []float64 for numeric ones. It returns
	// nil if the attribute does not exist.
	Attribute(variable, name string) interface{}

	// Type returns the storage type of variable.
	Type(variable string) Type

	// Read returns every value of variable, flattened in row-major order.
	Read(variable string) ([]float64, error)

	// ReadSlab returns the values of variable at the given index of its
	// outermost dimension, flattened in row-major order.
	ReadSlab(variable string, index int) ([]float64, error)

	Close() error
}

// Type is the numeric storage type of a NetCDF variable.
type Type int

// These are the supported storage types. Invalid marks variables
// that do not hold numbers, such as character arrays.
const (
	Invalid Type = iota
	Byte
	UByte
	Short
	UShort
	Int
	UInt
	Int64
	UInt64
	Float
	Double
)

func (t Type) String() string {
	switch t {
	case Byte:
		return "byte"
	case UByte:
		return "ubyte"
	case Short:
		return "short"
	case UShort:
		return "ushort"
	case Int:
		return "int"
	case UInt:
		return "uint"
	case Int64:
		return "int64"
	case UInt64:
		return "uint64"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return "invalid"
	}
}

// IsInteger returns whether t is an integer type.
func (t Type) IsInteger() bool {
	return t >= Byte && t <= UInt64
}

// defaultFill returns the NetCDF library default fill value for t.
// Byte types have no default fill value for masking purposes.
func (t Type) defaultFill() (float64, bool) {
	switch t {
	case Short:
		return -32767, true
	case UShort:
		return 65535, true
	case Int:
		return -2147483647, true
	case UInt:
		return 4294967295, true
	case Int64:
		return -9223372036854775806, true
	case UInt64:
		return 18446744073709551614, true
	case Float:
		return float64(float32(9.9692099683868690e+36)), true
	case Double:
		return 9.9692099683868690e+36, true
	default:
		return 0, false
	}
}

// Open opens the NetCDF file at path. Classic and 64-bit offset files
// are read natively; NetCDF-4 (HDF5) and CDF-5 files are read with a
// pure-Go HDF5 reader.
func Open(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nc2gssha: opening dataset: %w", err)
	}
	magic := make([]byte, 4)
	_, err = io.ReadFull(f, magic)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("nc2gssha: reading %s: %w", path, err)
	}
	switch {
	case bytes.Equal(magic, []byte("CDF\x01")), bytes.Equal(magic, []byte("CDF\x02")):
		return openNCF(path)
	case bytes.Equal(magic, []byte("CDF\x05")), bytes.Equal(magic, []byte("\x89HDF")):
		return openNC4(path)
	default:
		return nil, fmt.Errorf("nc2gssha: %s is not a NetCDF file", path)
	}
}

// hasVariable returns whether ds contains variable.
func hasVariable(ds Dataset, variable string) bool {
	for _, v := range ds.Variables() {
		if v == variable {
			return true
		}
	}
	return false
}

// textAttribute returns the named attribute if it is text.
func textAttribute(ds Dataset, variable, name string) (string, bool) {
	s, ok := ds.Attribute(variable, name).(string)
	return s, ok
}

// numericAttribute returns the named attribute if it is numeric
// and non-empty.
func numericAttribute(ds Dataset, variable, name string) ([]float64, bool) {
	v, ok := ds.Attribute(variable, name).([]float64)
	return v, ok && len(v) > 0
}

// product returns the product of dims, which is the number of
// elements in an array with those dimensions.
func product(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// toFloat64 converts a slice of any numeric NetCDF storage type
// into a []float64. NetCDF bytes are signed, so []uint8 data from
// classic files is reinterpreted as int8 unless unsigned is true.
func toFloat64(data interface{}, unsigned bool) ([]float64, error) {
	switch d := data.(type) {
	case []float64:
		return d, nil
	case []float32:
		o := make([]float64, len(d))
		for i, v := range d {
			o[i] = float64(v)
		}
		return o, nil
	case []int8:
		o := make([]float64, len(d))
		for i, v := range d {
			o[i] = float64(v)
		}
		return o, nil
	case []uint8:
		o := make([]float64, len(d))
		for i, v := range d {
			if unsigned {
				o[i] = float64(v)
			} else {
				o[i] = float64(int8(v))
			}
		}
		return o, nil
	case []int16:
		o := make([]float64, len(d))
		for i, v := range d {
			o[i] = float64(v)
		}
		return o, nil
	case []uint16:
		o := make([]float64, len(d))
		for i, v := range d {
			o[i] = float64(v)
		}
		return o, nil
	case []int32:
		o := make([]float64, len(d))
		for i, v := range d {
			o[i] = float64(v)
		}
		return o, nil
	case []uint32:
		o := make([]float64, len(d))
		for i, v := range d {
			o[i] = float64(v)
		}
		return o, nil
	case []int64:
		o := make([]float64, len(d))
		for i, v := range d {
			o[i] = float64(v)
		}
		return o, nil
	case []uint64:
		o := make([]float64, len(d))
		for i, v := range d {
			o[i] = float64(v)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("nc2gssha: unsupported data type %T", data)
	}
}

// sameValue reports whether a and b are equal, treating NaN as equal
// to NaN so that NaN fill values mask NaN cells.
func sameValue(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
