package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath         string           `json:"db_path"`
	DBSizeBytes    int64            `json:"db_size_bytes"`
	TotalReleases  int              `json:"total_releases"`
	ActiveReleases int              `json:"active_releases"`
	Namespaces     []NamespaceStats `json:"namespaces"`
}

// NamespaceStats holds per-namespace counts.
type NamespaceStats struct {
	NS       string `json:"ns"`
	Count    int    `json:"count"`
	Releases int    `json:"releases"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM releases`).Scan(&st.TotalReleases); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM releases WHERE deleted_at IS NULL`).Scan(&st.ActiveReleases); err != nil {
		return st, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT ns, COUNT(*) AS cnt, COUNT(DISTINCT sha) AS releases
		FROM releases WHERE deleted_at IS NULL
		GROUP BY ns ORDER BY cnt DESC, ns`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ns NamespaceStats
		if err := rows.Scan(&ns.NS, &ns.Count, &ns.Releases); err != nil {
			return st, err
		}
		st.Namespaces = append(st.Namespaces, ns)
	}

	return st, rows.Err()
}
