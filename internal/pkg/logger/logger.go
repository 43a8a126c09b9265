package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New development/debug 使用console格式，其餘環境輸出json
// extra writer (例如kafka) 會與stdout同時寫入
func New(env, level string, extra ...io.Writer) zerolog.Logger {
	var out io.Writer = os.Stdout
	switch constants.ENV(env) {
	case constants.Dev, constants.Debug:
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	writers := []io.Writer{out}
	for _, w := range extra {
		if w != nil {
			writers = append(writers, w)
		}
	}
	if len(writers) > 1 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// SetGlobal 讓使用 zerolog/log 的套件共用同一個logger
func SetGlobal(l zerolog.Logger) {
	log.Logger = l
	zerolog.TimeFieldFormat = time.RFC3339
}
