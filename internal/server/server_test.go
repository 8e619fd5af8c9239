package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/rcliao/git-release-name/internal/dictionary"
	"github.com/rcliao/git-release-name/internal/model"
	"github.com/rcliao/git-release-name/internal/phrase"
	"github.com/rcliao/git-release-name/internal/sha"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newTestServer uses five-word lists so 0a00a00a resolves to index 0 of each.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	d, err := dictionary.New(
		[]string{"immeasurably", "ambitiously", "issuably", "boldly", "calmly"},
		[]string{"endways", "courant", "twinning", "timeless", "brisk"},
		[]string{"borings", "gantlines", "verso", "gemot", "kisses"},
	)
	require.NoError(t, err)
	return New(phrase.NewResolver(d), zap.NewNop())
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestShow(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/release-name/0a00a00a")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "immeasurably endways borings", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	rec = get(t, s, "/api/release-name/0a00a00a?format=camel")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "immeasurablyEndwaysBorings", rec.Body.String())
}

func TestShow_InvalidSHA(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/release-name/zz")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShow_InvalidFormat(t *testing.T) {
	s := newTestServer(t)
	for _, q := range []string{"format=shout", "format="} {
		rec := get(t, s, "/api/release-name/abc?"+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestBulk(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/release-name?shas=0a00a00a,zz,abc&format=snake")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.Response[model.BulkNames]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	first := "immeasurably_endways_borings"
	third := "immeasurably_endways_gemot"
	want := map[string]*string{
		"0a00a00a": &first,
		"zz":       nil,
		"abc":      &third,
	}
	if diff := cmp.Diff(want, resp.Data.Names); diff != "" {
		t.Errorf("bulk names mismatch (-want +got):\n%s", diff)
	}
}

func TestBulk_RawJSONUsesNull(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/release-name?shas=zz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"names":{"zz":null}}}`, rec.Body.String())
}

func TestBulk_MissingShas(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/release-name")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRandom(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/release-name/random?format=upper")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.Response[model.Name]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.SHA, sha.Width)
	assert.Equal(t, strings.ToUpper(resp.Data.Name), resp.Data.Name)
	assert.Len(t, strings.Fields(resp.Data.Name), 3)

	// The returned sha must reproduce the returned name.
	again := get(t, newTestServer(t), "/api/release-name/"+resp.Data.SHA+"?format=upper")
	assert.Equal(t, resp.Data.Name, again.Body.String())
}

func TestRequestIDPassthrough(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)
	get(t, s, "/api/release-name/abc")
	get(t, s, "/api/release-name/zz")

	rec := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `release_name_lookups_total{result="ok"} 1`)
	assert.Contains(t, body, `release_name_lookups_total{result="invalid"} 1`)
	assert.Contains(t, body, `route="/api/release-name/{sha}"`)
}

func TestServe_Shutdown(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/api/release-name/0a00a00a")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "immeasurably endways borings", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
