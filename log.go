package facet

import (
	"io"

	"github.com/charmbracelet/log"
)

// logger receives layout and scale dumps at debug level and notes about
// dropped data at warn level. It discards everything until SetLogger is
// called.
var logger = log.NewWithOptions(io.Discard, log.Options{})

// SetLogger sets the logger used by package facet. A nil l silences the
// package.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(io.Discard, log.Options{})
	}
	logger = l
}
