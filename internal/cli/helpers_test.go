package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDoc = `<html><body>
<p>API documentation for REAPER v7.22</p>
<a name="GetTrackName"><hr></a>
<div class="l_func"><code>boolean reaper.GetTrackName(MediaTrack track, string buf)</code></div>
<div class="p_func"><code>RPR_GetTrackName(track, buf)</code></div>
Returns the name of the track, or "Track N" when it has none.
<a name="CountTracks"><hr></a>
<div class="l_func"><code>integer reaper.CountTracks(ReaProject proj)</code></div>
<div class="l_func"><code>not a signature</code></div>
</body></html>`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reascripthelp.html")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o600))
	return path
}

// withEnv swaps lookupEnv for the duration of a test
func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	orig := lookupEnv
	lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	t.Cleanup(func() { lookupEnv = orig })
}
