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

// Package cloud moves input datasets and output archives between the
// local filesystem and blob storage.
package cloud

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	// Register the gs:// and s3:// URL openers.
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

// IsBlob returns whether the given filename represents a blob
// (i.e., if it starts with 'gs://', 's3://', or 'file://').
func IsBlob(path string) bool {
	return strings.HasPrefix(path, "gs://") || strings.HasPrefix(path, "s3://") || strings.HasPrefix(path, "file://")
}

// SplitURL splits a blob URL into the URL of its bucket and the key of
// the blob within the bucket. For "file" URLs, the bucket is the
// directory holding the file and the key is the file name.
func SplitURL(blobURL string) (bucketURL, key string, err error) {
	u, err := url.Parse(blobURL)
	if err != nil {
		return "", "", fmt.Errorf("cloud: parsing blob URL: %w", err)
	}
	switch u.Scheme {
	case "file":
		p := u.Host + u.Path
		dir, file := path.Split(p)
		if file == "" {
			return "", "", fmt.Errorf("cloud: blob URL %s has no file name", blobURL)
		}
		if dir == "" {
			dir = "."
		}
		return "file://" + strings.TrimSuffix(dir, "/"), file, nil
	case "gs", "s3":
		key = strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return "", "", fmt.Errorf("cloud: blob URL %s needs a bucket and a key", blobURL)
		}
		return u.Scheme + "://" + u.Host, key, nil
	default:
		return "", "", fmt.Errorf("cloud: invalid provider %s", u.Scheme)
	}
}

// OpenBucket returns the blob storage bucket specified by bucketURL,
// which must be in the format 'provider://name' where provider
// is the name of the storage provider and name is the name of the bucket.
// The currently accepted storage providers are "file" for the local filesystem
// (where name is a directory, which is created if necessary),
// "gs" for Google Cloud Storage, and "s3" for AWS S3. Credentials for
// the cloud providers are taken from the environment.
func OpenBucket(ctx context.Context, bucketURL string) (*blob.Bucket, error) {
	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, fmt.Errorf("cloud: opening bucket: %w", err)
	}
	switch u.Scheme {
	case "file":
		dir := u.Host + u.Path
		if dir == "" {
			dir = "."
		}
		b, err := fileblob.OpenBucket(dir, &fileblob.Options{CreateDir: true})
		if err != nil {
			return nil, fmt.Errorf("cloud: opening bucket %s: %w", bucketURL, err)
		}
		return b, nil
	case "gs", "s3":
		b, err := blob.OpenBucket(ctx, u.Scheme+"://"+u.Host)
		if err != nil {
			return nil, fmt.Errorf("cloud: opening bucket %s: %w", bucketURL, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("cloud: invalid provider %s", u.Scheme)
	}
}
