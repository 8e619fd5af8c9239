package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rel, err := s.Put(ctx, PutParams{
		NS: "app", SHA: "0a00a00a", Name: "immeasurably endways borings",
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if rel.Version != 1 {
		t.Errorf("expected version 1, got %d", rel.Version)
	}
	if rel.ID == "" {
		t.Error("expected non-empty ID")
	}
	if rel.Case != "lower" {
		t.Errorf("expected default case lower, got %q", rel.Case)
	}

	got, err := s.Get(ctx, GetParams{NS: "app", SHA: "0a00a00a"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].Name != "immeasurably endways borings" {
		t.Errorf("unexpected name %q", got[0].Name)
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("expected created_at to round trip")
	}
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), GetParams{NS: "app", SHA: "nope"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVersioning(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, PutParams{NS: "app", SHA: "abc", Name: "one two three"})
	r2, _ := s.Put(ctx, PutParams{NS: "app", SHA: "abc", Name: "OneTwoThree", Case: "pascal"})

	if r2.Version != 2 {
		t.Errorf("expected version 2, got %d", r2.Version)
	}
	if r2.Supersedes == "" {
		t.Error("expected supersedes to be set")
	}

	got, _ := s.Get(ctx, GetParams{NS: "app", SHA: "abc"})
	if got[0].Name != "OneTwoThree" || got[0].Case != "pascal" {
		t.Errorf("expected latest version, got %+v", got[0])
	}

	hist, _ := s.Get(ctx, GetParams{NS: "app", SHA: "abc", History: true})
	if len(hist) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(hist))
	}
	if hist[0].Version != 2 || hist[1].Version != 1 {
		t.Errorf("history should be newest first: %d, %d", hist[0].Version, hist[1].Version)
	}
}

func TestPut_SHAKeyIgnoresCase(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Put(ctx, PutParams{NS: "app", SHA: "00000abc", Name: "one"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	rel, err := s.Put(ctx, PutParams{NS: "app", SHA: " 00000ABC ", Name: "two"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if rel.Version != 2 || rel.SHA != "00000abc" {
		t.Errorf("expected version 2 of 00000abc, got %d of %q", rel.Version, rel.SHA)
	}

	got, err := s.Get(ctx, GetParams{NS: "app", SHA: "00000Abc", History: true})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 versions, got %d", len(got))
	}

	// Abbreviations stay distinct keys.
	if _, err := s.Get(ctx, GetParams{NS: "app", SHA: "abc"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for abc, got %v", err)
	}

	if err := s.Rm(ctx, RmParams{NS: "app", SHA: "00000ABC"}); err != nil {
		t.Fatalf("rm: %v", err)
	}
	if _, err := s.Get(ctx, GetParams{NS: "app", SHA: "00000abc"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after rm, got %v", err)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, PutParams{NS: "app", SHA: "a", Name: "x"})
	s.Put(ctx, PutParams{NS: "app", SHA: "b", Name: "y"})
	s.Put(ctx, PutParams{NS: "app", SHA: "b", Name: "y2"})
	s.Put(ctx, PutParams{NS: "lib", SHA: "c", Name: "z"})

	all, _ := s.List(ctx, ListParams{})
	if len(all) != 3 {
		t.Errorf("expected 3, got %d", len(all))
	}

	app, _ := s.List(ctx, ListParams{NS: "app"})
	if len(app) != 2 {
		t.Fatalf("expected 2, got %d", len(app))
	}
	for _, r := range app {
		if r.SHA == "b" && r.Name != "y2" {
			t.Errorf("expected latest version for b, got %q", r.Name)
		}
	}

	limited, _ := s.List(ctx, ListParams{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("expected limit to apply, got %d", len(limited))
	}
}

func TestSoftDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, PutParams{NS: "app", SHA: "abc", Name: "x"})
	s.Put(ctx, PutParams{NS: "app", SHA: "abc", Name: "y"})
	if err := s.Rm(ctx, RmParams{NS: "app", SHA: "abc"}); err != nil {
		t.Fatalf("rm: %v", err)
	}

	if _, err := s.Get(ctx, GetParams{NS: "app", SHA: "abc", History: true}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after soft delete, got %v", err)
	}

	st, err := s.Stats(ctx, "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalReleases != 2 || st.ActiveReleases != 0 {
		t.Errorf("soft delete should keep rows: %+v", st)
	}
}

func TestHardDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, PutParams{NS: "app", SHA: "abc", Name: "x"})
	if err := s.Rm(ctx, RmParams{NS: "app", SHA: "abc", Hard: true}); err != nil {
		t.Fatalf("rm hard: %v", err)
	}
	if err := s.Rm(ctx, RmParams{NS: "app", SHA: "abc", Hard: true}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}

	st, _ := s.Stats(ctx, "")
	if st.TotalReleases != 0 {
		t.Errorf("expected no rows after hard delete, got %d", st.TotalReleases)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "stats.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer s.Close()

	s.Put(ctx, PutParams{NS: "app", SHA: "a", Name: "x"})
	s.Put(ctx, PutParams{NS: "app", SHA: "a", Name: "x2"})
	s.Put(ctx, PutParams{NS: "lib", SHA: "b", Name: "y"})

	st, err := s.Stats(ctx, dbPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.DBSizeBytes == 0 {
		t.Error("expected db size")
	}
	if len(st.Namespaces) != 2 {
		t.Fatalf("expected 2 namespaces, got %d", len(st.Namespaces))
	}
	if st.Namespaces[0].NS != "app" || st.Namespaces[0].Count != 2 || st.Namespaces[0].Releases != 1 {
		t.Errorf("unexpected app stats: %+v", st.Namespaces[0])
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	src.Put(ctx, PutParams{NS: "app", SHA: "a", Name: "first"})
	src.Put(ctx, PutParams{NS: "app", SHA: "a", Name: "second"})
	src.Put(ctx, PutParams{NS: "lib", SHA: "b", Name: "third"})

	exported, err := src.ExportAll(ctx, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(exported) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(exported))
	}

	dst := newTestStore(t)
	n, err := dst.Import(ctx, exported)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 imported, got %d", n)
	}
	got, _ := dst.Get(ctx, GetParams{NS: "app", SHA: "a"})
	if got[0].Name != "second" || got[0].Version != 2 {
		t.Errorf("import should rebuild versions in order, got %+v", got[0])
	}

	appOnly, _ := src.ExportAll(ctx, "app")
	if len(appOnly) != 2 {
		t.Errorf("expected 2 app rows, got %d", len(appOnly))
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
