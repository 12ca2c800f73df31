package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New monta o logger da aplicação: console legível fora de produção, JSON em produção.
func New(level string, production bool) *zerolog.Logger {
	return NewWithWriter(os.Stdout, level, production)
}

func NewWithWriter(w io.Writer, level string, production bool) *zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if !production {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "barber-agenda").
		Logger()

	return &logger
}
