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
	"math"
	"testing"
	"time"
)

func TestParseTimeUnits(t *testing.T) {
	cases := []struct {
		units string
		step  time.Duration
		ref   time.Time
		ok    bool
	}{
		{"hours since 1900-01-01 00:00:00", time.Hour, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"hours since 1900-01-01 00:00:00.0", time.Hour, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"days since 2000-1-1", 24 * time.Hour, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"seconds since 1970-01-01T00:00:00Z", time.Second, time.Unix(0, 0).UTC(), true},
		{"minutes since 2010-06-15 12:30", time.Minute, time.Date(2010, 6, 15, 12, 30, 0, 0, time.UTC), true},
		{"Hours since 2010-06-15 12:00:00 UTC", time.Hour, time.Date(2010, 6, 15, 12, 0, 0, 0, time.UTC), true},
		{"fortnights since 2000-01-01", 0, time.Time{}, false},
		{"hours", 0, time.Time{}, false},
		{"", 0, time.Time{}, false},
	}
	for _, c := range cases {
		step, ref, ok := parseTimeUnits(c.units)
		if ok != c.ok || step != c.step || !ref.Equal(c.ref) {
			t.Errorf("%q: got %v, %v, %v; want %v, %v, %v", c.units, step, ref, ok, c.step, c.ref, c.ok)
		}
	}
}

func TestReadTimes(t *testing.T) {
	cases := []struct {
		name  string
		attrs map[string]interface{}
		want  []time.Time
	}{
		{
			name:  "CF units",
			attrs: map[string]interface{}{"units": "hours since 2000-01-01 00:00:00"},
			want: []time.Time{
				time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2000, 1, 1, 6, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "seconds since epoch without units",
			want: []time.Time{
				time.Unix(0, 0).UTC(),
				time.Unix(6, 0).UTC(),
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ds := newMemDataset().add("time", []string{"time"}, []int{2}, Double, []float64{0, 6}, c.attrs)
			times, err := readTimes(ds, "time", testLog())
			if err != nil {
				t.Fatal(err)
			}
			if len(times) != len(c.want) {
				t.Fatalf("%d times", len(times))
			}
			for i, tm := range times {
				if !tm.Equal(c.want[i]) {
					t.Errorf("time %d: %v; want %v", i, tm, c.want[i])
				}
			}
		})
	}

	_, err := readTimes(newMemDataset(), "time", testLog())
	var ve *VariableError
	if !errors.As(err, &ve) {
		t.Errorf("got %v; want a VariableError", err)
	}
}

func TestReadTimesLongOffsets(t *testing.T) {
	cases := []struct {
		units  string
		values []float64
		want   []time.Time
	}{
		{
			units:  "days since 0001-01-01 00:00:00",
			values: []float64{730119, 730120, 730119.25},
			want: []time.Time{
				time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC),
				time.Date(2000, 1, 1, 6, 0, 0, 0, time.UTC),
			},
		},
		{
			units:  "hours since 0001-01-01 00:00:00",
			values: []float64{17522856, 17522862},
			want: []time.Time{
				time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2000, 1, 1, 6, 0, 0, 0, time.UTC),
			},
		},
		{
			units:  "days since 1800-01-01",
			values: []float64{-1},
			want:   []time.Time{time.Date(1799, 12, 31, 0, 0, 0, 0, time.UTC)},
		},
	}
	for _, c := range cases {
		t.Run(c.units, func(t *testing.T) {
			ds := newMemDataset().add("time", []string{"time"}, []int{len(c.values)}, Double, c.values,
				map[string]interface{}{"units": c.units})
			times, err := readTimes(ds, "time", testLog())
			if err != nil {
				t.Fatal(err)
			}
			for i, tm := range times {
				if !tm.Equal(c.want[i]) {
					t.Errorf("time %d: %v; want %v", i, tm, c.want[i])
				}
			}
		})
	}
}

func TestReadTimesOutOfRange(t *testing.T) {
	for _, v := range []float64{1e300, math.Inf(1), math.NaN()} {
		ds := newMemDataset().add("time", []string{"time"}, []int{1}, Double, []float64{v},
			map[string]interface{}{"units": "days since 0001-01-01"})
		if _, err := readTimes(ds, "time", testLog()); err == nil {
			t.Errorf("%g: expected an error", v)
		}
	}
}
