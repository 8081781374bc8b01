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

// Package nc2gssha converts gridded NetCDF datasets into per-timestep
// GRASS or ARC ASCII rasters, bundled into a zip archive, for use as
// GSSHA hydrometeorological input.
package nc2gssha

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DefaultNoData is the value written for masked cells when no other
// value is given.
const DefaultNoData = -9999.0

// Options holds optional settings for Convert. The zero value is
// usable.
type Options struct {
	// Timesteps are the indices along the time dimension to convert.
	// If it is empty, every timestep is converted.
	Timesteps []int

	// BoundingBox limits the output to a region. The default is the
	// full extent of the dataset.
	BoundingBox *BoundingBox

	// NoData is the value written for masked cells. The default is
	// DefaultNoData.
	NoData *float64

	// OutputZip is the path of the archive to create. The default is
	// "{inputFile}-{variable}.zip".
	OutputZip string

	Format Format

	// TimeName is the name of the time dimension and variable. The
	// default is "time".
	TimeName string

	// Units identify the coordinate variables. The default is
	// DefaultUnits().
	Units *UnitsAllowlist

	// WorkDir is where rasters are written before being archived. The
	// default is a new temporary directory beside OutputZip, which is
	// removed afterwards.
	WorkDir string

	// Transform is an optional expression applied to each unmasked
	// cell. See NewTransform.
	Transform string

	// Log receives progress and warning messages. The default is the
	// logrus standard logger.
	Log logrus.FieldLogger
}

// Convert writes one raster for each requested timestep of variable in
// inputFile and archives them in a zip file, returning its path. If
// Convert fails, any rasters and partial archive it created are
// removed.
func Convert(inputFile, variable string, o *Options) (string, error) {
	if o == nil {
		o = new(Options)
	}
	log := o.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithFields(logrus.Fields{"file": inputFile, "variable": variable})
	noData := DefaultNoData
	if o.NoData != nil {
		noData = *o.NoData
	}
	timeName := o.TimeName
	if timeName == "" {
		timeName = "time"
	}
	zipPath := o.OutputZip
	if zipPath == "" {
		zipPath = fmt.Sprintf("%s-%s.zip", inputFile, variable)
	}

	var transform *Transform
	if o.Transform != "" {
		var err error
		if transform, err = NewTransform(o.Transform); err != nil {
			return "", err
		}
	}

	ds, err := Open(inputFile)
	if err != nil {
		return "", err
	}
	defer ds.Close()

	axes, err := ResolveAxes(ds, o.Units, log)
	if err != nil {
		return "", err
	}
	if !hasVariable(ds, variable) {
		return "", &VariableError{Variable: variable}
	}
	times, err := readTimes(ds, timeName, log)
	if err != nil {
		return "", err
	}
	timesteps := o.Timesteps
	if len(timesteps) == 0 {
		timesteps = make([]int, len(times))
		for i := range timesteps {
			timesteps[i] = i
		}
	}
	for _, t := range timesteps {
		if t < 0 || t >= len(times) {
			return "", &TimestepError{Timestep: t, Count: len(times)}
		}
	}

	idx := FindIndices(axes, o.BoundingBox, log)
	header := NewRasterHeader(axes, idx, noData).Render(o.Format)

	workDir := o.WorkDir
	if workDir == "" {
		if workDir, err = os.MkdirTemp(filepath.Dir(zipPath), ".nc2gssha-"); err != nil {
			return "", fmt.Errorf("nc2gssha: creating working directory: %w", err)
		}
		defer func() {
			if err := os.RemoveAll(workDir); err != nil {
				log.WithError(err).Warn("could not remove working directory")
			}
		}()
	}

	var files []string
	written := make(map[string]bool)
	cleanup := func() {
		for _, f := range files {
			os.Remove(f)
		}
		os.Remove(zipPath)
	}
	for _, t := range timesteps {
		g, err := Extract(ds, variable, axes, timeName, t, idx, noData)
		if err != nil {
			cleanup()
			return "", err
		}
		if transform != nil {
			if err := g.Apply(transform); err != nil {
				cleanup()
				return "", err
			}
		}
		name := filepath.Join(workDir, RasterFileName(variable, times[t], o.Format))
		if err := writeRasterFile(name, header, g); err != nil {
			cleanup()
			return "", err
		}
		if written[name] {
			log.WithFields(logrus.Fields{"timestep": t, "raster": filepath.Base(name)}).
				Warn("timestep has the same time as an earlier one; overwriting its raster")
			continue
		}
		written[name] = true
		files = append(files, name)
		log.WithFields(logrus.Fields{"timestep": t, "raster": filepath.Base(name)}).Debug("wrote raster")
	}

	if err := Archive(zipPath, files, log); err != nil {
		cleanup()
		return "", err
	}
	log.WithFields(logrus.Fields{"archive": zipPath, "rasters": len(files)}).Info("conversion finished")
	return zipPath, nil
}
