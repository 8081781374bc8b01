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
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/nc2gssha"
	"github.com/spf13/cast"
)

// ConvertOptions builds conversion options from the settings in cfg.
// The input file, variable, and output file are read separately
// because they may need to be staged from remote storage.
func ConvertOptions(cfg *viper.Viper) (*nc2gssha.Options, error) {
	o := &nc2gssha.Options{
		TimeName:  os.ExpandEnv(cfg.GetString("TimeVariable")),
		WorkDir:   os.ExpandEnv(cfg.GetString("WorkDir")),
		Transform: cfg.GetString("Transform"),
	}

	var err error
	if o.Timesteps, err = parseTimesteps(cfg.Get("Timesteps")); err != nil {
		return nil, err
	}
	if o.BoundingBox, err = parseBoundingBox(cfg.GetString("BoundingBox")); err != nil {
		return nil, err
	}
	noData, err := cast.ToFloat64E(cfg.Get("NoData"))
	if err != nil {
		return nil, fmt.Errorf("nc2gsshautil: invalid NoData value: %v", err)
	}
	o.NoData = &noData
	if o.Format, err = nc2gssha.ParseFormat(cfg.GetString("Format")); err != nil {
		return nil, err
	}
	if o.Units, err = unitsAllowlist(cfg); err != nil {
		return nil, err
	}
	return o, nil
}

// unitsAllowlist loads the coordinate units from the configured
// UnitsFile, or returns nil to use the defaults.
func unitsAllowlist(cfg *viper.Viper) (*nc2gssha.UnitsAllowlist, error) {
	f := os.ExpandEnv(cfg.GetString("UnitsFile"))
	if f == "" {
		return nil, nil
	}
	return nc2gssha.LoadUnits(f)
}

// parseTimesteps converts a list of timestep indices from a
// configuration value. Slices from configuration files are used
// directly; values from flags and environment variables arrive as
// strings such as "[0,2]" or "0 2".
func parseTimesteps(v interface{}) ([]int, error) {
	if v == nil {
		return nil, nil
	}
	var ts []int
	if s, ok := v.(string); ok {
		for _, f := range splitList(s) {
			i, err := cast.ToIntE(f)
			if err != nil {
				return nil, fmt.Errorf("nc2gsshautil: invalid timestep %q: %v", f, err)
			}
			ts = append(ts, i)
		}
	} else {
		var err error
		if ts, err = cast.ToIntSliceE(v); err != nil {
			return nil, fmt.Errorf("nc2gsshautil: invalid Timesteps: %v", err)
		}
	}
	if len(ts) == 0 {
		return nil, nil
	}
	return ts, nil
}

// parseBoundingBox parses a bounding box in the form
// "north,south,east,west". An empty string means no bounding box.
func parseBoundingBox(s string) (*nc2gssha.BoundingBox, error) {
	f := splitList(s)
	if len(f) == 0 {
		return nil, nil
	}
	if len(f) != 4 {
		return nil, fmt.Errorf("nc2gsshautil: BoundingBox must have 4 values (north,south,east,west); got %q", s)
	}
	var v [4]float64
	for i, x := range f {
		var err error
		if v[i], err = cast.ToFloat64E(x); err != nil {
			return nil, fmt.Errorf("nc2gsshautil: invalid BoundingBox value %q: %v", x, err)
		}
	}
	return &nc2gssha.BoundingBox{North: v[0], South: v[1], East: v[2], West: v[3]}, nil
}

// splitList splits a comma- or space-separated list, ignoring
// surrounding brackets.
func splitList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
