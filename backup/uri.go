package backup

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// objectTimeFormat names backups so that they sort by time.
const objectTimeFormat = "20060102T150405Z"

// Location is a GCS bucket and an optional object prefix.
type Location struct {
	Bucket string
	Prefix string
}

// ParseURI parses a "gs://bucket[/prefix]" URI.
func ParseURI(uri string) (Location, error) {
	if !strings.HasPrefix(uri, "gs://") {
		return Location{}, fmt.Errorf("invalid GCS URI %q: want gs://bucket[/prefix]", uri)
	}
	bucket, prefix, _ := strings.Cut(strings.TrimPrefix(uri, "gs://"), "/")
	if bucket == "" {
		return Location{}, fmt.Errorf("invalid GCS URI %q: no bucket", uri)
	}
	return Location{Bucket: bucket, Prefix: strings.Trim(prefix, "/")}, nil
}

// Object returns the object name of a backup taken at.
func (l Location) Object(at time.Time) string {
	return path.Join(l.Prefix, "bussinbank-"+at.UTC().Format(objectTimeFormat)+".json")
}

// URI returns the gs:// URI of object in the location bucket.
func (l Location) URI(object string) string {
	return "gs://" + l.Bucket + "/" + object
}

func (l Location) String() string {
	if l.Prefix == "" {
		return "gs://" + l.Bucket
	}
	return "gs://" + l.Bucket + "/" + l.Prefix
}
