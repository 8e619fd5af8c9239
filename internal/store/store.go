// Package store records which release name a project gave which commit.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/git-release-name/internal/model"
)

// ErrNotFound is returned when no live release matches.
var ErrNotFound = errors.New("release not found")

// PutParams holds parameters for recording a release name. SHA is trimmed
// and lower-cased before use in every store call; abbreviations are not
// expanded.
type PutParams struct {
	NS   string
	SHA  string
	Name string
	Case string
}

// GetParams holds parameters for retrieving a release.
type GetParams struct {
	NS      string
	SHA     string
	History bool
}

// ListParams holds parameters for listing releases.
type ListParams struct {
	NS    string
	Limit int
}

// RmParams holds parameters for deleting a release.
type RmParams struct {
	NS   string
	SHA  string
	Hard bool
}

// Store defines the release registry interface.
type Store interface {
	// Put records a name. Recording the same ns+sha again creates a new
	// version that supersedes the previous one.
	Put(ctx context.Context, p PutParams) (*model.Release, error)

	// Get returns the latest version, or every version with History=true.
	Get(ctx context.Context, p GetParams) ([]model.Release, error)

	// List returns the latest version of each sha, newest first.
	List(ctx context.Context, p ListParams) ([]model.Release, error)

	// Rm soft-deletes (or hard-deletes) every version of a release.
	Rm(ctx context.Context, p RmParams) error

	// Close closes the store.
	Close() error
}
