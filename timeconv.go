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
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var epoch = time.Unix(0, 0).UTC()

var timeUnits = map[string]time.Duration{
	"seconds": time.Second, "second": time.Second, "secs": time.Second, "sec": time.Second, "s": time.Second,
	"minutes": time.Minute, "minute": time.Minute, "mins": time.Minute, "min": time.Minute,
	"hours": time.Hour, "hour": time.Hour, "hrs": time.Hour, "hr": time.Hour, "h": time.Hour,
	"days": 24 * time.Hour, "day": 24 * time.Hour, "d": 24 * time.Hour,
}

var referenceLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-1-2 15:4:5",
	"2006-01-02 15:04",
	"2006-1-2 15:4",
	"2006-01-02",
	"2006-1-2",
}

// parseTimeUnits parses CF time units such as "hours since 1900-01-01
// 00:00:00". Reference times without a zone are UTC.
func parseTimeUnits(units string) (step time.Duration, ref time.Time, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(units), " since ", 2)
	if len(parts) != 2 {
		return 0, time.Time{}, false
	}
	step, ok = timeUnits[strings.ToLower(strings.TrimSpace(parts[0]))]
	if !ok {
		return 0, time.Time{}, false
	}
	r := strings.TrimSpace(parts[1])
	r = strings.TrimSuffix(r, " UTC")
	r = strings.TrimSuffix(r, "Z")
	for _, layout := range referenceLayouts {
		if t, err := time.Parse(layout, r); err == nil {
			return step, t.UTC(), true
		}
	}
	return 0, time.Time{}, false
}

// readTimes returns the time of each step of the time variable. Values
// are interpreted using the variable's CF units attribute; without one
// they are taken as seconds since the Unix epoch.
func readTimes(ds Dataset, timeName string, log logrus.FieldLogger) ([]time.Time, error) {
	if !hasVariable(ds, timeName) {
		return nil, &VariableError{Variable: timeName}
	}
	vals, err := ds.Read(timeName)
	if err != nil {
		return nil, err
	}
	step, ref := time.Second, epoch
	units, _ := textAttribute(ds, timeName, "units")
	if s, r, ok := parseTimeUnits(units); ok {
		step, ref = s, r
	} else {
		log.WithFields(logrus.Fields{"variable": timeName, "units": units}).
			Warn("time units not recognized; using seconds since 1970-01-01")
	}
	o := make([]time.Time, len(vals))
	for i, v := range vals {
		if o[i], err = offsetTime(ref, v, step); err != nil {
			return nil, fmt.Errorf("nc2gssha: time %d of %s: %w", i, timeName, err)
		}
	}
	return o, nil
}

// maxOffsetSeconds bounds time offsets well inside the range of
// time.Time.
const maxOffsetSeconds = 1 << 55

// offsetTime returns ref plus v steps. The offset is split into whole
// seconds and nanoseconds so that offsets longer than time.Duration can
// hold, such as days since year 1, are exact.
func offsetTime(ref time.Time, v float64, step time.Duration) (time.Time, error) {
	secs := v * step.Seconds()
	if math.IsNaN(secs) || math.Abs(secs) > maxOffsetSeconds {
		return time.Time{}, fmt.Errorf("value %g is out of range", v)
	}
	whole := math.Floor(secs)
	nsec := int64(math.Round((secs - whole) * 1e9))
	return time.Unix(ref.Unix()+int64(whole), int64(ref.Nanosecond())+nsec).UTC(), nil
}
