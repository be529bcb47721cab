// Package logging hands out named gommon loggers that share one level and output.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/labstack/gommon/log"
)

var (
	mu     sync.RWMutex
	level  log.Lvl   = log.INFO
	output io.Writer = os.Stdout
)

const header = `{"time":"${time_rfc3339}","level":"${level}","component":"${prefix}"}`

// New returns a logger tagged with component.
func New(component string) *log.Logger {
	mu.RLock()
	defer mu.RUnlock()

	l := log.New(component)
	l.SetHeader(header)
	l.SetLevel(level)
	l.SetOutput(output)
	return l
}

// SetLevel sets the level for loggers created afterwards. Unknown names fall back to info.
func SetLevel(name string) {
	mu.Lock()
	defer mu.Unlock()
	level = ParseLevel(name)
}

// SetOutput redirects loggers created afterwards.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// ParseLevel maps a LOG_LEVEL value to a gommon level.
func ParseLevel(name string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
