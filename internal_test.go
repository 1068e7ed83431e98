package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestBuildWriter(t *testing.T) {
	t.Run("defaults to stdout", func(t *testing.T) {
		w, err := buildWriter((&Options{}).withDefaults())
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, w)
	})

	t.Run("single output writer is used directly", func(t *testing.T) {
		buf := &bytes.Buffer{}
		w, err := buildWriter((&Options{Output: buf}).withDefaults())
		require.NoError(t, err)
		assert.Equal(t, buf, w)
	})

	t.Run("multiple sinks fan out", func(t *testing.T) {
		buf := &bytes.Buffer{}
		dir := filepath.Join(t.TempDir(), "logs")
		w, err := buildWriter((&Options{
			Output: buf,
			File:   &FileOptions{Dir: dir},
		}).withDefaults())
		require.NoError(t, err)

		line := []byte(`{"level":"info","message":"fan out"}` + "\n")
		_, err = w.Write(line)
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "fan out")
		data, err := os.ReadFile(filepath.Join(dir, defaultFileName))
		require.NoError(t, err)
		assert.Contains(t, string(data), "fan out")
	})

	t.Run("file sink creates the directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b", "logs")
		_, err := buildWriter((&Options{File: &FileOptions{Dir: dir}}).withDefaults())
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("unusable directory fails construction", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "occupied")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		_, err := buildWriter((&Options{
			File: &FileOptions{Dir: filepath.Join(blocker, "logs")},
		}).withDefaults())
		require.Error(t, err)
		assert.Contains(t, err.Error(), errMsgLogsDir)
	})
}

func TestNewRollingFileWriter(t *testing.T) {
	t.Run("default file name", func(t *testing.T) {
		dir := t.TempDir()
		w, err := newRollingFileWriter(&FileOptions{Dir: dir})
		require.NoError(t, err)

		lj, ok := w.(*lumberjack.Logger)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, defaultFileName), lj.Filename)
	})

	t.Run("rotation options are plumbed", func(t *testing.T) {
		dir := t.TempDir()
		w, err := newRollingFileWriter(&FileOptions{
			Dir:        dir,
			Name:       "svc.log",
			MaxSizeMB:  7,
			MaxBackups: 2,
			MaxAgeDays: 3,
			Compress:   true,
		})
		require.NoError(t, err)

		lj, ok := w.(*lumberjack.Logger)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "svc.log"), lj.Filename)
		assert.Equal(t, 7, lj.MaxSize)
		assert.Equal(t, 2, lj.MaxBackups)
		assert.Equal(t, 3, lj.MaxAge)
		assert.True(t, lj.Compress)
	})
}
