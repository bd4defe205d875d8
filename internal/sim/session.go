// internal/sim/session.go
package sim

import (
	"sync"
	"time"

	"github.com/ragsim/vitals/pkg/core"
)

// SessionContext holds the session currently being simulated. Recording
// workers read it concurrently with the simulation goroutine, so access is
// guarded.
type SessionContext struct {
	mu      sync.RWMutex
	session *core.Session
}

// NewSessionContext creates a context with a placeholder session so reads
// before Start never see nil.
func NewSessionContext() *SessionContext {
	return &SessionContext{
		session: &core.Session{Name: "no session loaded"},
	}
}

// Start installs the session and stamps its start time.
func (sc *SessionContext) Start(s *core.Session) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	s.StartTime = time.Now()
	sc.session = s
}

// End stamps the end time of the current session and returns it.
func (sc *SessionContext) End() *core.Session {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.session.EndTime = time.Now()
	return sc.session
}

// Current returns the active session.
func (sc *SessionContext) Current() *core.Session {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.session
}

// ID returns the active session's ID, 0 when none is loaded.
func (sc *SessionContext) ID() uint {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if sc.session == nil {
		return 0
	}
	return sc.session.ID
}
