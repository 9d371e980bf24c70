// Package source retrieves published result files by name.
//
// A source answers with the file body, a definitive [ErrNotFound], or a
// [TransportError] for anything else that went wrong on the way.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound means the file is not published (yet). It is an expected
// outcome, not a failure.
var ErrNotFound = errors.New("resource not found")

// Resource is a fetched file.
type Resource struct {
	Body string

	// ModTime is when the file was last published, zero when unknown
	ModTime time.Time
}

// Source fetches a file by name.
type Source interface {
	Fetch(ctx context.Context, name string) (Resource, error)
}

// TransportError wraps a failure other than "not found"
type TransportError struct {
	Name string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Name, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FileName returns the published file name for a date key.
func FileName(dateKey string) string {
	return dateKey + ".txt"
}

// New picks an HTTP source for http(s) locations and a directory source
// for everything else.
func New(location, prefix string, httpCfg HTTPConfig) (Source, error) {
	if location == "" {
		return nil, errors.New("source location is required (set source_url)")
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTP(location, prefix, httpCfg)
	}

	return NewDir(location, prefix), nil
}
