// Copyright 2024 The go-solprereq Authors
// This file is part of the go-solprereq library.
//
// The go-solprereq library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-solprereq library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-solprereq library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Lvl is a verbosity level, ordered from least to most verbose.
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

// String returns the name of a Lvl.
func (l Lvl) String() string {
	switch l {
	case LvlTrace:
		return "trce"
	case LvlDebug:
		return "dbug"
	case LvlInfo:
		return "info"
	case LvlWarn:
		return "warn"
	case LvlError:
		return "eror"
	case LvlCrit:
		return "crit"
	default:
		return "unknown"
	}
}

func (l Lvl) zerolog() zerolog.Level {
	switch l {
	case LvlTrace:
		return zerolog.TraceLevel
	case LvlDebug:
		return zerolog.DebugLevel
	case LvlInfo:
		return zerolog.InfoLevel
	case LvlWarn:
		return zerolog.WarnLevel
	case LvlError:
		return zerolog.ErrorLevel
	default:
		return zerolog.FatalLevel
	}
}

// Logger writes key/value pairs on top of a zerolog logger. The context is a
// list of alternating keys and values, as in log.Info("msg", "key", value).
type Logger interface {
	New(ctx ...interface{}) Logger
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
}

type logger struct {
	zl zerolog.Logger
}

// NewLogger returns a logger writing to w at the given verbosity.
func NewLogger(w io.Writer, lvl Lvl) Logger {
	return &logger{zl: zerolog.New(w).Level(lvl.zerolog()).With().Timestamp().Logger()}
}

// NewTerminalLogger returns a logger producing human readable, optionally
// coloured lines.
func NewTerminalLogger(w io.Writer, lvl Lvl, useColor bool) Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !useColor,
		TimeFormat: "01-02|15:04:05.000",
	}
	return NewLogger(out, lvl)
}

func (l *logger) New(ctx ...interface{}) Logger {
	return &logger{zl: l.zl.With().Fields(normalize(ctx)).Logger()}
}

func (l *logger) write(lvl zerolog.Level, msg string, ctx []interface{}) {
	l.zl.WithLevel(lvl).Fields(normalize(ctx)).Msg(msg)
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(zerolog.TraceLevel, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(zerolog.DebugLevel, msg, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(zerolog.InfoLevel, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(zerolog.WarnLevel, msg, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(zerolog.ErrorLevel, msg, ctx) }

func (l *logger) Crit(msg string, ctx ...interface{}) {
	l.write(zerolog.FatalLevel, msg, ctx)
	os.Exit(1)
}

// normalize pads an odd context and stringifies keys so the pairs always
// line up.
func normalize(ctx []interface{}) []interface{} {
	if len(ctx)%2 != 0 {
		ctx = append(ctx, nil)
	}
	out := make([]interface{}, len(ctx))
	for i := 0; i < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = fmt.Sprint(ctx[i])
		}
		out[i], out[i+1] = key, formatValue(ctx[i+1])
	}
	return out
}

// formatValue renders values implementing fmt.Stringer through String, so
// keys, hashes and signatures appear in their base-58 form.
func formatValue(v interface{}) interface{} {
	switch v := v.(type) {
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return v
	}
}

var root atomic.Value

func init() {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	root.Store(NewTerminalLogger(os.Stderr, LvlInfo, false))
}

// Root returns the root logger.
func Root() Logger {
	return root.Load().(Logger)
}

// SetDefault replaces the root logger.
func SetDefault(l Logger) {
	root.Store(l)
}

// Trace is a convenient alias for Root().Trace
func Trace(msg string, ctx ...interface{}) { Root().Trace(msg, ctx...) }

// Debug is a convenient alias for Root().Debug
func Debug(msg string, ctx ...interface{}) { Root().Debug(msg, ctx...) }

// Info is a convenient alias for Root().Info
func Info(msg string, ctx ...interface{}) { Root().Info(msg, ctx...) }

// Warn is a convenient alias for Root().Warn
func Warn(msg string, ctx ...interface{}) { Root().Warn(msg, ctx...) }

// Error is a convenient alias for Root().Error
func Error(msg string, ctx ...interface{}) { Root().Error(msg, ctx...) }

// Crit is a convenient alias for Root().Crit
func Crit(msg string, ctx ...interface{}) { Root().Crit(msg, ctx...) }
