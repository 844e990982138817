package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const permission = 0o664

// Build describes where log lines go.
type Build struct {
	writer io.Writer
	path   string
	level  zerolog.Level
}

func New() *Build {
	return &Build{writer: os.Stdout, level: zerolog.InfoLevel}
}

func (b *Build) FromPath(path string) *Build {
	b.path = path
	return b
}

func (b *Build) FromWriter(w io.Writer) *Build {
	b.writer = w
	return b
}

// Level accepts zerolog level names; unknown names keep the current level.
func (b *Build) Level(name string) *Build {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name))); err == nil && name != "" {
		b.level = lvl
	}
	return b
}

// Make builds the logger. The returned file is nil unless FromPath was used
// and must be closed by the caller.
func (b *Build) Make() (zerolog.Logger, *os.File, error) {
	w := b.writer
	var f *os.File
	if b.path != "" {
		var err error
		f, err = os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		w = zerolog.SyncWriter(f)
	}
	return zerolog.New(w).Level(b.level).With().Timestamp().Logger(), f, nil
}

// Setup installs the logger as the process-wide zerolog logger.
func Setup(level, path string) (func() error, error) {
	l, f, err := New().Level(level).FromPath(path).Make()
	if err != nil {
		return nil, err
	}
	log.Logger = l
	return func() error {
		if f == nil {
			return nil
		}
		return f.Close()
	}, nil
}
