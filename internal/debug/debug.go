// Package debug implements protocol tracing controlled by the
// WAYLAND_DEBUG environment variable, following libwayland's
// convention.
package debug

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
)

var enabled bool

func init() {
	debugLevel, err := strconv.ParseInt(os.Getenv("WAYLAND_DEBUG"), 10, 0)
	if err != nil {
		return
	}
	enabled = debugLevel > 0
}

func Printf(str string, args ...any) {
	if enabled {
		log.Infof(str, args...)
	}
}
