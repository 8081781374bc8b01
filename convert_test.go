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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

const testHeader = "north: 35\nsouth: 5\neast: 125\nwest: 95\nrows: 3\ncols: 3\n"

func TestConvert(t *testing.T) {
	input := writeTestFile(t)
	zipPath, err := Convert(input, "temp", &Options{Log: testLog()})
	if err != nil {
		t.Fatal(err)
	}
	if zipPath != input+"-temp.zip" {
		t.Errorf("archive %s", zipPath)
	}
	want := map[string]string{
		"temp-20000101000000.ggd": testHeader + "270 271 272\n273 274 275\n276 277 278",
		"temp-20000101060000.ggd": testHeader + "280.5 281.5 282.5\n283.5 -9999 285.5\n286.5 287.5 288.5",
	}
	if diff := pretty.Diff(readZip(t, zipPath), want); len(diff) != 0 {
		t.Error(diff)
	}

	// Only the input and the archive are left behind.
	entries, err := os.ReadDir(filepath.Dir(input))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if diff := pretty.Diff(names, []string{"test.nc", "test.nc-temp.zip"}); len(diff) != 0 {
		t.Errorf("leftover files: %v", diff)
	}
}

func TestConvertOptions(t *testing.T) {
	input := writeTestFile(t)
	noData := -1.0
	out := filepath.Join(t.TempDir(), "out.zip")
	zipPath, err := Convert(input, "temp", &Options{
		Timesteps:   []int{1},
		BoundingBox: &BoundingBox{North: 21, South: 9, East: 111, West: 99},
		NoData:      &noData,
		OutputZip:   out,
		Format:      ARC,
		Transform:   "value - 273",
		Log:         testLog(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if zipPath != out {
		t.Errorf("archive %s", zipPath)
	}
	want := map[string]string{
		"temp-20000101060000.asc": "ncols 2\nnrows 2\nxllcorner 5\nyllcorner 95\ncellsize 10\nNODATA_value -1\n" +
			"7.5 8.5\n10.5 -1",
	}
	if diff := pretty.Diff(readZip(t, zipPath), want); len(diff) != 0 {
		t.Error(diff)
	}
}

func TestConvertScaled(t *testing.T) {
	input := writeTestFile(t)
	zipPath, err := Convert(input, "rh", &Options{
		Timesteps:   []int{0},
		BoundingBox: &BoundingBox{North: 10, South: 10, East: 120, West: 100},
		Log:         testLog(),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"rh-20000101000000.ggd": "north: 15\nsouth: 5\neast: 125\nwest: 95\nrows: 3\ncols: 1\n" +
			"-9999 0.5 1",
	}
	if diff := pretty.Diff(readZip(t, zipPath), want); len(diff) != 0 {
		t.Error(diff)
	}
}

func TestConvertErrors(t *testing.T) {
	input := writeTestFile(t)
	cases := []struct {
		name     string
		variable string
		o        *Options
		check    func(error) bool
	}{
		{
			name:     "missing variable",
			variable: "precip",
			o:        &Options{},
			check:    func(err error) bool { var e *VariableError; return errors.As(err, &e) },
		},
		{
			name:     "missing time variable",
			variable: "temp",
			o:        &Options{TimeName: "t"},
			check:    func(err error) bool { var e *VariableError; return errors.As(err, &e) },
		},
		{
			name:     "timestep out of range",
			variable: "temp",
			o:        &Options{Timesteps: []int{0, 2}},
			check:    func(err error) bool { var e *TimestepError; return errors.As(err, &e) },
		},
		{
			name:     "no coordinates",
			variable: "temp",
			o:        &Options{Units: &UnitsAllowlist{Lat: []string{"x"}, Lon: []string{"y"}}},
			check:    func(err error) bool { var e *ResolutionError; return errors.As(err, &e) },
		},
		{
			name:     "coordinate variable",
			variable: "lat",
			o:        &Options{},
			check:    func(err error) bool { var e *DimensionMismatchError; return errors.As(err, &e) },
		},
		{
			name:     "transform fails after the first raster",
			variable: "temp",
			o:        &Options{Transform: "value > 280 ? 'hot' : value"},
			check:    func(err error) bool { return err != nil && strings.Contains(err.Error(), "not a number") },
		},
		{
			name:     "bad transform",
			variable: "temp",
			o:        &Options{Transform: "value +"},
			check:    func(err error) bool { return err != nil },
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.zip")
			c.o.OutputZip = out
			c.o.Log = testLog()
			_, err := Convert(input, c.variable, c.o)
			if !c.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
			entries, err := os.ReadDir(filepath.Dir(out))
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Errorf("%d files left behind", len(entries))
			}
		})
	}
}

func TestConvertCleanupMidRun(t *testing.T) {
	input := writeTestFile(t)
	work := t.TempDir()
	out := filepath.Join(t.TempDir(), "out.zip")
	_, err := Convert(input, "temp", &Options{
		OutputZip: out,
		WorkDir:   work,
		Transform: "value > 280 ? 'hot' : value",
		Log:       testLog(),
	})
	if err == nil {
		t.Fatal("expected an error from the second timestep")
	}
	for _, dir := range []string{work, filepath.Dir(out)} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("%s: %d files left behind", dir, len(entries))
		}
	}
	entries, err := os.ReadDir(filepath.Dir(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "test.nc" {
		t.Errorf("input directory holds %v", entries)
	}
}

func TestConvertEmptyTimesteps(t *testing.T) {
	input := writeTestFile(t)
	out := filepath.Join(t.TempDir(), "out.zip")
	if _, err := Convert(input, "temp", &Options{OutputZip: out, Timesteps: []int{}, Log: testLog()}); err != nil {
		t.Fatal(err)
	}
	if n := len(readZip(t, out)); n != 2 {
		t.Errorf("%d rasters; want 2", n)
	}
}

func TestConvertWorkDir(t *testing.T) {
	input := writeTestFile(t)
	work := t.TempDir()
	out := filepath.Join(t.TempDir(), "out.zip")
	if _, err := Convert(input, "temp", &Options{OutputZip: out, WorkDir: work, Log: testLog()}); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(work)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("%d rasters left in the working directory", len(entries))
	}
	if _, err := os.Stat(out); err != nil {
		t.Error(err)
	}
}
