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
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/nc2gssha/cloud"
)

type uploader struct {
	// files is a set of file path pairs. The first of each pair
	// is a local file path and the second is a blob storage
	// path where it should be uploaded to.
	files [][2]string
	err   error
	dir   string
}

// maybeUpload checks whether the given output file path refers to
// a blob storage location. If it does, then a temporary file location
// is returned. The file will then be uploaded to blob storage when
// the uploadOutput method is run.
func (u *uploader) maybeUpload(path string) string {
	if u.err != nil {
		return ""
	}
	if !cloud.IsBlob(path) {
		return path
	}
	name, err := remoteBase(path)
	if err != nil {
		u.err = err
		return ""
	}
	if u.dir == "" {
		u.dir, u.err = os.MkdirTemp("", "nc2gssha")
		if u.err != nil {
			return ""
		}
	}
	local := filepath.Join(u.dir, name)
	u.files = append(u.files, [2]string{local, path})
	return local
}

// uploadOutput uploads the files registered with maybeUpload.
func (u *uploader) uploadOutput(ctx context.Context, log logrus.FieldLogger) error {
	if u.err != nil {
		return u.err
	}
	for _, files := range u.files {
		log.WithField("url", files[1]).Info("uploading output")
		err := retry(ctx, func() error { return cloud.Upload(ctx, files[0], files[1]) }, log)
		if err != nil {
			return fmt.Errorf("nc2gsshautil: uploading file '%s' to '%s': %v", files[0], files[1], err)
		}
	}
	return nil
}

// cleanup removes the local copies of uploaded files.
func (u *uploader) cleanup() {
	if u.dir != "" {
		os.RemoveAll(u.dir)
	}
}
