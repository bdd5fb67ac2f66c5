package web

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_ServesClientFiles(t *testing.T) {
	for _, name := range []string{"index.html", "app.js", "app.css"} {
		_, err := fs.Stat(Static(), name)
		assert.NoError(t, err, name)
	}
}

// A failed refresh only drops an invalid session; other failures are silent.
func TestStatic_BookRefreshDoesNotAlert(t *testing.T) {
	raw, err := fs.ReadFile(Static(), "app.js")
	require.NoError(t, err)

	src := string(raw)
	start := strings.Index(src, "function loadBooks()")
	require.NotEqual(t, -1, start)
	end := strings.Index(src[start:], "function bookItem(")
	require.NotEqual(t, -1, end)

	body := src[start : start+end]
	assert.Contains(t, body, "setToken(null)")
	assert.NotContains(t, body, "alert(")
}
