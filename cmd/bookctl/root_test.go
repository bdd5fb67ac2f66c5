package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWhoami_NotLoggedIn(t *testing.T) {
	session := filepath.Join(t.TempDir(), "session.json")
	_, err := run(t, "--session", session, "whoami")
	assert.EqualError(t, err, "not logged in")
}

func TestBooksList_PrintsTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"_id":"b1","title":"Dune","author":"Herbert"}]`))
	}))
	t.Cleanup(srv.Close)

	session := filepath.Join(t.TempDir(), "session.json")
	out, err := run(t, "--server", srv.URL, "--session", session, "books", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Herbert")
}

func TestBooksAdd_RequiresArgs(t *testing.T) {
	session := filepath.Join(t.TempDir(), "session.json")
	_, err := run(t, "--session", session, "books", "add", "only-title")
	assert.Error(t, err)
}
