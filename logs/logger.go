// Package logs builds the structured logger for the handheld tools.
package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Level is the minimum level of terminal records from loggers built by New.
var Level = new(slog.LevelVar)

// Options selects the log destinations.
type Options struct {
	Writer  io.Writer // Terminal output. Defaults to os.Stderr.
	Journal bool      // Also log to the systemd journal.
}

// New creates a logger that fans out to the terminal and, when requested
// or when running as a systemd service, to the systemd journal.
func New(opts Options) *slog.Logger {
	var handlers []slog.Handler

	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	journal := opts.Journal || isSystemdService()

	terminalHandler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: Level,
	})
	handlers = append(handlers, terminalHandler)

	if journal {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "logs: systemd journal", 0)
			record.Add("error", err)
			_ = terminalHandler.Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

// toJournalKey maps an attribute key to a valid journal field name.
func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}

func isSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	parts := strings.Split(strings.TrimSpace(string(content)), ":")
	if len(parts) < 3 {
		return false
	}
	return strings.HasSuffix(path.Dir(parts[2]), ".service")
}
