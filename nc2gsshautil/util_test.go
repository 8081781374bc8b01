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

package nc2gsshautil

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/cenkalti/backoff"
	"github.com/ctessum/cdf"
	"github.com/klauspost/compress/zip"
	"github.com/sirupsen/logrus"
)

func testLog() logrus.FieldLogger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}

// fastBackOff makes transfers retry once without waiting for the
// duration of the test.
func fastBackOff(t *testing.T) {
	old := newBackOff
	newBackOff = func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 1)
	}
	t.Cleanup(func() { newBackOff = old })
}

// writePrecip writes a classic NetCDF file named precip.nc in dir with
// two hourly timesteps of a 2×2 precipitation grid.
func writePrecip(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "precip.nc")

	h := cdf.NewHeader([]string{"time", "lat", "lon"}, []int{2, 2, 2})
	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddAttribute("time", "units", "hours since 2000-01-01 00:00:00")
	h.AddVariable("lat", []string{"lat"}, []float32{0})
	h.AddAttribute("lat", "units", "degrees_north")
	h.AddVariable("lon", []string{"lon"}, []float32{0})
	h.AddAttribute("lon", "units", "degrees_east")
	h.AddVariable("prcp", []string{"time", "lat", "lon"}, []float32{0})
	h.AddAttribute("prcp", "units", "kg m-2 s-1")
	h.AddAttribute("prcp", "long_name", "precipitation rate")
	h.Define()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	nc, err := cdf.Create(f, h)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []struct {
		name string
		data interface{}
	}{
		{"time", []float64{0, 1}},
		{"lat", []float32{40, 41}},
		{"lon", []float32{250, 251}},
		{"prcp", []float32{1, 2, 3, 4, 5, 6, 7, 8}},
	} {
		if _, err := nc.Writer(v.name, nil, nil).Write(v.data); err != nil {
			t.Fatalf("writing %s: %v", v.name, err)
		}
	}
	return path
}

// zipNames returns the sorted names of the files in a zip archive.
func zipNames(t *testing.T, path string) []string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}
