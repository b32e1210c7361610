package logging

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogPath(t *testing.T) {
	path := DefaultLogPath()
	assert.Equal(t, "htmldicts.log", filepath.Base(path))
	assert.Equal(t, "logs", filepath.Base(filepath.Dir(path)))
	assert.Contains(t, path, ".htmldicts")
}

func TestDefaultAndDebugConfig(t *testing.T) {
	def := DefaultConfig()
	assert.Equal(t, "warn", def.Level)
	assert.Empty(t, def.FilePath)
	assert.True(t, def.WriteToStderr)

	dbg := DebugConfig()
	assert.Equal(t, "debug", dbg.Level)
	assert.Equal(t, DefaultLogPath(), dbg.FilePath)
	assert.False(t, dbg.WriteToStderr)
}

func TestSetup_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.log")
	logger, cleanup, err := Setup(Config{Level: "debug", FilePath: path, MaxSizeMB: 1, MaxFiles: 2})
	require.NoError(t, err)

	logger.Debug("variant_query_failed", slog.String("variant", "tærqus"))
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"variant_query_failed"`)
	assert.Contains(t, string(data), `"variant":"tærqus"`)
}

func TestSetup_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	logger, cleanup, err := Setup(Config{Level: "warn", FilePath: path, MaxSizeMB: 1, MaxFiles: 1})
	require.NoError(t, err)

	logger.Info("search_complete")
	logger.Warn("variant_query_failed")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "search_complete")
	assert.Contains(t, string(data), "variant_query_failed")
}

func TestSetup_StderrOnly(t *testing.T) {
	logger, cleanup, err := Setup(Config{Level: "info"})
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, logger)
}

func TestLevelFromString(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, LevelFromString(in), in)
	}
}

func TestFindLogFile(t *testing.T) {
	_, err := FindLogFile(filepath.Join(t.TempDir(), "missing.log"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "present.log")
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
	found, err := FindLogFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestRotatingWriter_Rotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rot.log")
	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	chunk := bytes.Repeat([]byte("a"), 600*1024)
	for i := 0; i < 4; i++ {
		_, err := w.Write(chunk)
		require.NoError(t, err)
	}

	assert.FileExists(t, path)
	assert.FileExists(t, path+".1")
	assert.FileExists(t, path+".2")
	assert.NoFileExists(t, path+".3", "files beyond maxFiles are removed")
}

func TestRotatingWriter_CloseThenWriteReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.log")
	w, err := NewRotatingWriter(path, 1, 1)
	require.NoError(t, err)

	_, err = w.Write([]byte("one\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("two\n"))
	require.NoError(t, err)
	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestRotatingWriter_ConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concurrent.log")
	w, err := NewRotatingWriter(path, 10, 2)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, _ = fmt.Fprintf(w, "writer %d line %d\n", i, j)
			}
		}(i)
	}
	wg.Wait()
	require.NoError(t, w.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 200, strings.Count(string(data), "\n"))
}

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "view.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestParseLine(t *testing.T) {
	e := ParseLine(`{"time":"2024-05-01T10:11:12.123Z","level":"WARN","msg":"variant_query_failed","variant":"tærqus"}`)
	require.True(t, e.IsValid)
	assert.Equal(t, "WARN", e.Level)
	assert.Equal(t, "variant_query_failed", e.Msg)
	assert.Equal(t, "tærqus", e.Attrs["variant"])
	assert.Equal(t, 10, e.Time.Hour())

	raw := ParseLine("not json")
	assert.False(t, raw.IsValid)
	assert.Equal(t, "not json", raw.Raw)
}

func TestViewer_Tail(t *testing.T) {
	path := writeLog(t,
		`{"time":"2024-05-01T10:00:00Z","level":"DEBUG","msg":"variant_expansion"}`,
		`{"time":"2024-05-01T10:00:01Z","level":"WARN","msg":"variant_query_failed"}`,
		`{"time":"2024-05-01T10:00:02Z","level":"DEBUG","msg":"search_complete"}`,
	)

	t.Run("last n lines", func(t *testing.T) {
		entries, err := NewViewer(ViewerConfig{}, nil).Tail(path, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "variant_query_failed", entries[0].Msg)
	})

	t.Run("level filter", func(t *testing.T) {
		entries, err := NewViewer(ViewerConfig{Level: "warn"}, nil).Tail(path, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "variant_query_failed", entries[0].Msg)
	})

	t.Run("pattern filter", func(t *testing.T) {
		entries, err := NewViewer(ViewerConfig{Pattern: regexp.MustCompile("search_")}, nil).Tail(path, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "search_complete", entries[0].Msg)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewViewer(ViewerConfig{}, nil).Tail(path+".missing", 10)
		assert.Error(t, err)
	})
}

func TestViewer_FormatAndPrint(t *testing.T) {
	var buf bytes.Buffer
	v := NewViewer(ViewerConfig{NoColor: true}, &buf)

	e := ParseLine(`{"time":"2024-05-01T10:11:12.123Z","level":"INFO","msg":"index_built","entries":3,"path":"/tmp/x"}`)
	assert.Equal(t, "10:11:12.123 INFO  index_built entries=3 path=/tmp/x", v.FormatEntry(e))

	v.Print([]LogEntry{e, ParseLine("plain text")})
	assert.Equal(t, "10:11:12.123 INFO  index_built entries=3 path=/tmp/x\nplain text\n", buf.String())
}
