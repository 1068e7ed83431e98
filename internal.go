package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// buildWriter assembles the output destination from the configured sinks.
// With nothing configured the JSON stream goes to stdout.
func buildWriter(opts *Options) (io.Writer, error) {
	var writers []io.Writer

	if opts.File != nil {
		fw, err := newRollingFileWriter(opts.File)
		if err != nil {
			return nil, err
		}
		writers = append(writers, fw)
	}
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if opts.Output != nil {
		writers = append(writers, opts.Output)
	}

	switch len(writers) {
	case 0:
		return os.Stdout, nil
	case 1:
		return writers[0], nil
	default:
		return io.MultiWriter(writers...), nil
	}
}

// newRollingFileWriter builds the lumberjack sink. The directory is created
// up front so a bad path fails construction instead of the first write.
func newRollingFileWriter(fo *FileOptions) (io.Writer, error) {
	if err := os.MkdirAll(fo.Dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("%s %s: %w", errMsgLogsDir, fo.Dir, err)
	}

	name := fo.Name
	if name == emptyString {
		name = defaultFileName
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(fo.Dir, name),
		MaxSize:    fo.MaxSizeMB,
		MaxBackups: fo.MaxBackups,
		MaxAge:     fo.MaxAgeDays,
		Compress:   fo.Compress,
	}, nil
}
