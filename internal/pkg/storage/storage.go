package storage

import (
	"context"
	"io"
)

// ReportStore archives rendered audit reports so past competences stay
// retrievable after the HTTP response is gone.
type ReportStore interface {
	// Save writes a rendered report and returns its stored path.
	Save(ctx context.Context, path string, data []byte) (string, error)

	// Open retrieves a previously stored report.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists checks whether a report has already been archived.
	Exists(ctx context.Context, path string) (bool, error)
}
