// Package logger arma el logger zerolog del proceso: consola legible en
// desarrollo, JSON en producción, y nivel configurable por texto.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config parámetros de arranque del logger.
type Config struct {
	Env   string // development usa ConsoleWriter; cualquier otro valor, JSON
	Level string // debug, info, warn, error... (zerolog.ParseLevel)
}

// Logger envuelve zerolog para inyectarlo como dependencia única del proceso.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger del proceso y lo instala también como logger
// global de zerolog, para las librerías que escriben por esa vía.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un sublogger con campos fijos.
func (l *Logger) With() zerolog.Context { return l.zl.With() }

// Zerolog expone el logger interno cuando hace falta la API completa.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }
