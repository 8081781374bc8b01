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
	"testing"

	"github.com/kr/pretty"
)

func TestNewRasterHeader(t *testing.T) {
	full := Indices{North: 2, South: 0, East: 2, West: 0}
	h := NewRasterHeader(gridAxes(), full, -9999)
	want := &RasterHeader{
		North: 35, South: 5, East: 125, West: 95,
		Rows: 3, Cols: 3,
		CellSize: 10,
		NoData:   -9999,
	}
	if diff := pretty.Diff(h, want); len(diff) != 0 {
		t.Error(diff)
	}
}

func TestRasterHeaderRowsCols(t *testing.T) {
	axes := &Axes{
		Lat: []float64{0, 0.5, 1, 1.5, 2},
		Lon: []float64{10, 10.25, 10.5},
	}
	cases := []struct {
		idx        Indices
		rows, cols int
	}{
		{Indices{North: 4, South: 0, East: 2, West: 0}, 3, 5},
		{Indices{North: 3, South: 1, East: 1, West: 1}, 1, 3},
		{Indices{North: 1, South: 3, East: 0, West: 2}, 3, 3},
	}
	for _, c := range cases {
		h := NewRasterHeader(axes, c.idx, -9999)
		if h.Rows != c.rows || h.Cols != c.cols {
			t.Errorf("%+v: rows %d cols %d; want %d, %d", c.idx, h.Rows, h.Cols, c.rows, c.cols)
		}
		if h.CellSize != 0.25 {
			t.Errorf("%+v: cell size %g", c.idx, h.CellSize)
		}
	}
}

func TestRender(t *testing.T) {
	h := NewRasterHeader(gridAxes(), Indices{North: 2, South: 0, East: 2, West: 0}, -9999)
	cases := []struct {
		f    Format
		want string
	}{
		{GRASS, "north: 35\nsouth: 5\neast: 125\nwest: 95\nrows: 3\ncols: 3\n"},
		{ARC, "ncols 3\nnrows 3\nxllcorner 5\nyllcorner 95\ncellsize 10\nNODATA_value -9999\n"},
	}
	for _, c := range cases {
		if got := h.Render(c.f); got != c.want {
			t.Errorf("%v: got\n%q\nwant\n%q", c.f, got, c.want)
		}
	}

	h = &RasterHeader{North: 0.125, South: -0.375, East: 1e-7, West: 123456789, Rows: 1, Cols: 2}
	want := "north: 0.125\nsouth: -0.375\neast: 0.0000001\nwest: 123456789\nrows: 1\ncols: 2\n"
	if got := h.Render(GRASS); got != want {
		t.Errorf("got %q; want %q", got, want)
	}
}

func TestRenderSinglePrecision(t *testing.T) {
	axes := &Axes{
		Lat:     []float64{float64(float32(10.6)), float64(float32(10.8))},
		Lon:     []float64{100, 110},
		LatType: Float,
		LonType: Double,
	}
	h := NewRasterHeader(axes, Indices{North: 1, South: 0, East: 1, West: 0}, -9999)
	grass := "north: 10.9\nsouth: 10.5\neast: 115\nwest: 95\nrows: 2\ncols: 2\n"
	if got := h.Render(GRASS); got != grass {
		t.Errorf("got %q; want %q", got, grass)
	}
	want := "ncols 2\nnrows 2\nxllcorner 10.5\nyllcorner 95\ncellsize 10\nNODATA_value -9999\n"
	if got := h.Render(ARC); got != want {
		t.Errorf("got %q; want %q", got, want)
	}

	// At double precision the same coordinates carry float32 noise.
	axes.LatType = Double
	if got := NewRasterHeader(axes, Indices{North: 1, South: 0, East: 1, West: 0}, -9999).Render(GRASS); got == grass {
		t.Errorf("double-precision header unexpectedly matched %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	for s, want := range map[string]Format{"GRASS": GRASS, "grass": GRASS, "ARC": ARC, "Arc": ARC} {
		f, err := ParseFormat(s)
		if err != nil {
			t.Errorf("%s: %v", s, err)
		}
		if f != want {
			t.Errorf("%s: got %v", s, f)
		}
	}
	if _, err := ParseFormat("tiff"); err == nil {
		t.Error("expected an error")
	}
	if GRASS.Extension() != "ggd" || ARC.Extension() != "asc" {
		t.Error("wrong extensions")
	}
}
