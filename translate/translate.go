// Package translate formats user visible messages in the caller's locale.
package translate

import (
	"log/slog"
	"sync/atomic"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// FALLBACK_LOCALE is used when the host reports no locale at all.
const FALLBACK_LOCALE = "en-US"

var printer atomic.Pointer[message.Printer]

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		slog.Warn("translate: locale", "error", err)
	}

	SetLocales(locales...)
}

// SetLocales selects the message printer for the best match of the
// given BCP 47 locales.
func SetLocales(locales ...string) {
	if len(locales) == 0 {
		locales = []string{FALLBACK_LOCALE}
	}

	printer.Store(message.NewPrinter(message.MatchLanguage(locales...)))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Load().Sprintf(key, args...)
}
