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
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"github.com/sirupsen/logrus"
)

// Archive creates a zip file at zipPath holding files, each stored
// under its base name. Each file is deleted once it has been added;
// failures to delete are logged rather than returned. If Archive
// fails, the partial zip file is removed.
func Archive(zipPath string, files []string, log logrus.FieldLogger) (err error) {
	f, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("nc2gssha: creating archive: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(zipPath)
		}
	}()

	zw := zip.NewWriter(f)
	for _, file := range files {
		if err = addToZip(zw, file); err != nil {
			return fmt.Errorf("nc2gssha: archiving %s: %w", file, err)
		}
		if rmErr := os.Remove(file); rmErr != nil {
			log.WithField("file", file).WithError(rmErr).Warn("could not delete archived raster")
		}
	}
	if err = zw.Close(); err != nil {
		return fmt.Errorf("nc2gssha: finishing archive %s: %w", zipPath, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("nc2gssha: closing archive %s: %w", zipPath, err)
	}
	return nil
}

func addToZip(zw *zip.Writer, path string) error {
	r, err := os.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()
	info, err := r.Stat()
	if err != nil {
		return err
	}
	h, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	h.Name = filepath.Base(path)
	h.Method = zip.Deflate
	w, err := zw.CreateHeader(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, r)
	return err
}
