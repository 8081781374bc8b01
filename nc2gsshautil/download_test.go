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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestMaybeDownloadLocal(t *testing.T) {
	ctx := context.Background()
	for _, path := range []string{"/dev/null", "/blah/test/"} {
		k, err := maybeDownload(ctx, path, testLog())
		if err != nil {
			t.Fatal(err)
		}
		if k != path {
			t.Errorf("expected %s, got %s", path, k)
		}
	}
}

func TestMaybeDownloadHTTP(t *testing.T) {
	fastBackOff(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "data.nc"), []byte("netcdf"), 0644); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	defer srv.Close()

	k, err := maybeDownload(context.Background(), srv.URL+"/data.nc", testLog())
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(filepath.Dir(k))
	if filepath.Base(k) != "data.nc" {
		t.Errorf("expected tempDir/data.nc, got %s", k)
	}
	b, err := os.ReadFile(k)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "netcdf" {
		t.Errorf("got %q", b)
	}

	if _, err := maybeDownload(context.Background(), srv.URL+"/missing.nc", testLog()); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestMaybeDownloadRetry(t *testing.T) {
	fastBackOff(t)
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("netcdf"))
	}))
	defer srv.Close()

	k, err := maybeDownload(context.Background(), srv.URL+"/data.nc", testLog())
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(filepath.Dir(k))
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("expected 2 requests, got %d", n)
	}
}

func TestMaybeDownloadNotFoundNoRetry(t *testing.T) {
	fastBackOff(t)
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := maybeDownload(context.Background(), srv.URL+"/data.nc", testLog()); err == nil {
		t.Fatal("expected an error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected 1 request, got %d", n)
	}
}

func TestMaybeDownloadBlob(t *testing.T) {
	fastBackOff(t)
	dir := t.TempDir()
	path := writePrecip(t, dir)
	k, err := maybeDownload(context.Background(), "file://"+filepath.ToSlash(path), testLog())
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(filepath.Dir(k))
	if filepath.Base(k) != "precip.nc" || k == path {
		t.Errorf("expected tempDir/precip.nc, got %s", k)
	}
}

func TestRemoteBase(t *testing.T) {
	for in, want := range map[string]string{
		"http://host/dir/file.nc":  "file.nc",
		"gs://bucket/out.zip":      "out.zip",
		"https://host/file.nc?x=1": "file.nc",
	} {
		got, err := remoteBase(in)
		if err != nil {
			t.Errorf("%s: %v", in, err)
		}
		if got != want {
			t.Errorf("%s: got %s, want %s", in, got, want)
		}
	}
	for _, in := range []string{"http://host/dir/", "http://host"} {
		if _, err := remoteBase(in); err == nil {
			t.Errorf("%s: expected an error", in)
		}
	}
}
