package store

import (
	"context"

	"github.com/rcliao/git-release-name/internal/model"
)

// ExportAll returns every live version, optionally filtered by namespace.
func (s *SQLiteStore) ExportAll(ctx context.Context, ns string) ([]model.Release, error) {
	query := `SELECT ` + releaseColumns + ` FROM releases WHERE deleted_at IS NULL`
	args := []interface{}{}
	if ns != "" {
		query += ` AND ns = ?`
		args = append(args, ns)
	}
	query += ` ORDER BY ns, sha, version`

	return s.query(ctx, query, args...)
}

// Import records releases from an export in order, so versions of the same
// sha are rebuilt oldest first.
func (s *SQLiteStore) Import(ctx context.Context, releases []model.Release) (int, error) {
	imported := 0
	for _, r := range releases {
		_, err := s.Put(ctx, PutParams{
			NS:   r.NS,
			SHA:  r.SHA,
			Name: r.Name,
			Case: r.Case,
		})
		if err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
