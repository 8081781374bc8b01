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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/nc2gssha"
)

// Convert converts variable in inputFile to a zip archive of rasters,
// downloading the input and uploading the output if either is remote.
// If outputFile is empty, the archive is named after the input file and
// variable; a remote input in that case produces an archive in the
// current directory. It returns the location of the archive.
func Convert(ctx context.Context, inputFile, variable, outputFile string, o *nc2gssha.Options) (string, error) {
	if inputFile == "" {
		return "", errors.New("nc2gsshautil: InputFile must be specified")
	}
	if variable == "" {
		return "", errors.New("nc2gsshautil: Variable must be specified")
	}
	if o == nil {
		o = new(nc2gssha.Options)
	}
	log := o.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	local, err := maybeDownload(ctx, inputFile, log)
	if err != nil {
		return "", err
	}
	if local != inputFile {
		defer os.RemoveAll(filepath.Dir(local))
		if outputFile == "" {
			outputFile = fmt.Sprintf("%s-%s.zip", filepath.Base(local), variable)
		}
	}

	var up uploader
	defer up.cleanup()
	oo := *o
	oo.OutputZip = up.maybeUpload(outputFile)
	if up.err != nil {
		return "", up.err
	}

	out, err := nc2gssha.Convert(local, variable, &oo)
	if err != nil {
		return "", err
	}
	if len(up.files) == 0 {
		return out, nil
	}
	if err := up.uploadOutput(ctx, log); err != nil {
		return "", err
	}
	return outputFile, nil
}

// Vars writes a table describing the variables in inputFile to w,
// followed by the coordinate variables, grid extent, and number of
// timesteps when they can be determined.
func Vars(ctx context.Context, w io.Writer, inputFile string, units *nc2gssha.UnitsAllowlist, timeName string, log logrus.FieldLogger) error {
	if inputFile == "" {
		return errors.New("nc2gsshautil: InputFile must be specified")
	}
	local, err := maybeDownload(ctx, inputFile, log)
	if err != nil {
		return err
	}
	if local != inputFile {
		defer os.RemoveAll(filepath.Dir(local))
	}
	ds, err := nc2gssha.Open(local)
	if err != nil {
		return err
	}
	defer ds.Close()

	d := nc2gssha.Describe(ds, units, timeName, log)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tDIMENSIONS\tUNITS\tDESCRIPTION")
	for _, v := range d.Variables {
		name := v.Name
		if name == d.LatName || name == d.LonName {
			name += "*"
		}
		dims := make([]string, len(v.Dimensions))
		for i, dim := range v.Dimensions {
			dims[i] = fmt.Sprintf("%s=%d", dim, v.Lengths[i])
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", name, v.Type, strings.Join(dims, ","), v.Units, v.LongName)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if d.LatName == "" {
		_, err = fmt.Fprintln(w, "\nlatitude and longitude variables could not be identified")
		return err
	}
	_, err = fmt.Fprintf(w, "\n* latitude: %s, longitude: %s\nextent: north %g, south %g, east %g, west %g\ntimesteps: %d\n",
		d.LatName, d.LonName, d.Extent.Max.Y, d.Extent.Min.Y, d.Extent.Max.X, d.Extent.Min.X, d.Timesteps)
	return err
}
