package bilibili

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// DebugLogger receives diagnostics from best-effort refreshes.
type DebugLogger func(tag, message string)

// LogrusDebugLogger forwards diagnostics to the standard logrus logger.
func LogrusDebugLogger(tag, message string) {
	log.WithField("tag", tag).Debug(message)
}

func (c *Client) debugf(tag, format string, args ...any) {
	if c.debugLog == nil {
		return
	}
	c.debugLog(tag, fmt.Sprintf(format, args...))
}
