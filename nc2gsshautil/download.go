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
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/nc2gssha/cloud"
)

// newBackOff returns the retry policy used for transfers to and from
// remote storage.
var newBackOff = func() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 2 * time.Minute
	return b
}

// retry runs op according to newBackOff until it succeeds, the retry
// policy gives up, or ctx is done.
func retry(ctx context.Context, op backoff.Operation, log logrus.FieldLogger) error {
	return backoff.RetryNotify(op, backoff.WithContext(newBackOff(), ctx),
		func(err error, d time.Duration) {
			log.WithError(err).Warnf("transfer failed; retrying in %v", d)
		})
}

// maybeDownload checks if the input is an existing local file.
// If not, and it is an http(s) URL or a blob URL, it downloads the
// file into a new temporary directory and returns the path to the
// downloaded file. Otherwise it returns path unchanged.
func maybeDownload(ctx context.Context, path string, log logrus.FieldLogger) (string, error) {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return path, nil
	}
	switch {
	case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
		return download(ctx, path, log, downloadHTTP)
	case cloud.IsBlob(path):
		return download(ctx, path, log, cloud.Download)
	}
	return path, nil
}

type fetchFunc func(ctx context.Context, remote, local string) error

func download(ctx context.Context, remote string, log logrus.FieldLogger, fetch fetchFunc) (string, error) {
	name, err := remoteBase(remote)
	if err != nil {
		return "", err
	}
	dir, err := os.MkdirTemp("", "nc2gssha")
	if err != nil {
		return "", fmt.Errorf("nc2gsshautil: failed creating temporary download directory: %v", err)
	}
	local := filepath.Join(dir, name)
	log.WithField("url", remote).Info("downloading input")
	err = retry(ctx, func() error { return fetch(ctx, remote, local) }, log)
	if err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("nc2gsshautil: downloading %s: %v", remote, err)
	}
	return local, nil
}

// remoteBase returns the file name at the end of a URL.
func remoteBase(remote string) (string, error) {
	u, err := url.Parse(remote)
	if err != nil {
		return "", fmt.Errorf("nc2gsshautil: %v", err)
	}
	p := u.Path
	if u.Scheme == "file" {
		p = u.Host + u.Path
	}
	name := path.Base(p)
	if name == "." || name == "/" || strings.HasSuffix(p, "/") {
		return "", fmt.Errorf("nc2gsshautil: URL %s does not name a file", remote)
	}
	return name, nil
}

// downloadHTTP fetches remote into the file local.
func downloadHTTP(ctx context.Context, remote, local string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remote, nil)
	if err != nil {
		return backoff.Permanent(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("server responded %s", resp.Status)
	case resp.StatusCode != http.StatusOK:
		return backoff.Permanent(fmt.Errorf("server responded %s", resp.Status))
	}
	w, err := os.Create(local)
	if err != nil {
		return backoff.Permanent(err)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
