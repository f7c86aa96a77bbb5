// Package progress holds the reading-session and dark-mode rules shared by
// the preview server and its clients.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"

	"rustbible/internal/contextutil"
)

const (
	// SessionsKey is the storage key of the session list.
	SessionsKey = "reading-sessions"
	// DarkModeKey is the storage key of the dark-mode flag.
	DarkModeKey = "dark-mode"
	// MaxSessions bounds the stored session list.
	MaxSessions = 50
	// UpdateInterval is the minimum time between two recorded scroll updates.
	UpdateInterval = 5 * time.Second
)

// ErrInvalidSession is returned for a session without a URL.
var ErrInvalidSession = errors.New("reading session requires a url")

// Session is the reading state of one page.
type Session struct {
	URL            string  `json:"url"`
	Timestamp      int64   `json:"timestamp"`      // Unix milliseconds
	ScrollProgress float64 `json:"scrollProgress"` // Percent, 0-100
	TimeSpent      int64   `json:"timeSpent"`      // Milliseconds on the page
}

// Normalize clamps scroll progress to [0, 100] and time spent to >= 0.
func (s Session) Normalize() Session {
	switch {
	case math.IsNaN(s.ScrollProgress) || s.ScrollProgress < 0:
		s.ScrollProgress = 0
	case s.ScrollProgress > 100:
		s.ScrollProgress = 100
	}
	if s.TimeSpent < 0 {
		s.TimeSpent = 0
	}
	return s
}

// Validate checks that the session can be stored.
func (s Session) Validate() error {
	if s.URL == "" {
		return ErrInvalidSession
	}
	return nil
}

// Record upserts s by URL into a copy of sessions. An existing entry is
// replaced in place; a new one is appended and the oldest entry is dropped
// once the list exceeds MaxSessions.
func Record(sessions []Session, s Session) []Session {
	out := make([]Session, len(sessions), len(sessions)+1)
	copy(out, sessions)

	s = s.Normalize()
	for i := range out {
		if out[i].URL == s.URL {
			out[i] = s
			return out
		}
	}

	out = append(out, s)
	if len(out) > MaxSessions {
		out = out[len(out)-MaxSessions:]
	}
	return out
}

// ShouldUpdate reports whether enough time has passed since last to record
// another scroll update.
func ShouldUpdate(last, now time.Time) bool {
	return now.Sub(last) >= UpdateInterval
}

// Decode parses a stored session list. Malformed data is logged and yields
// an empty list.
func Decode(ctx context.Context, data []byte) []Session {
	if len(data) == 0 {
		return []Session{}
	}

	var sessions []Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "dropping malformed reading sessions", "error", err)
		return []Session{}
	}
	if sessions == nil {
		sessions = []Session{}
	}
	return sessions
}

// Encode serializes a session list for storage.
func Encode(sessions []Session) ([]byte, error) {
	if sessions == nil {
		sessions = []Session{}
	}
	return json.Marshal(sessions)
}

// ParseDarkMode reads a stored dark-mode flag. Anything but "true" is off.
func ParseDarkMode(value string) bool {
	on, err := strconv.ParseBool(value)
	return err == nil && on
}

// FormatDarkMode renders a dark-mode flag for storage.
func FormatDarkMode(on bool) string {
	return strconv.FormatBool(on)
}
