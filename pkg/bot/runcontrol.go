package bot

import "sync"

// RunState is the on/off switch of the responder.
type RunState struct {
	mu         sync.Mutex
	active     bool
	authorized map[string]struct{}
	// bumped on every stop and start so pending replies can tell they are stale
	epoch uint64
}

// NewRunState starts active. An empty authorized list lets anyone toggle.
func NewRunState(authorized []string) *RunState {
	set := make(map[string]struct{}, len(authorized))
	for _, id := range authorized {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return &RunState{active: true, authorized: set}
}

func (s *RunState) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Snapshot returns the active flag together with the current epoch.
func (s *RunState) Snapshot() (bool, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.epoch
}

// Current reports whether epoch is still the live epoch and the bot is active.
func (s *RunState) Current(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active && s.epoch == epoch
}

func (s *RunState) Authorized(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authorizedLocked(userID)
}

func (s *RunState) authorizedLocked(userID string) bool {
	if len(s.authorized) == 0 {
		return true
	}
	_, ok := s.authorized[userID]
	return ok
}

type ControlResult int

const (
	ControlOK ControlResult = iota
	ControlAlreadyActive
	ControlUnauthorized
)

func (r ControlResult) String() string {
	switch r {
	case ControlOK:
		return "ok"
	case ControlAlreadyActive:
		return "already_active"
	default:
		return "unauthorized"
	}
}

type PresenceUpdater interface {
	SetPresence(active bool)
}

// RunControl owns every transition of RunState.
type RunControl struct {
	state    *RunState
	window   *ConversationWindow
	presence PresenceUpdater
}

func NewRunControl(state *RunState, window *ConversationWindow, presence PresenceUpdater) *RunControl {
	return &RunControl{state: state, window: window, presence: presence}
}

func (c *RunControl) TryStop(userID string) ControlResult {
	c.state.mu.Lock()
	if !c.state.authorizedLocked(userID) {
		c.state.mu.Unlock()
		return ControlUnauthorized
	}
	c.state.active = false
	c.state.epoch++
	c.state.mu.Unlock()

	c.presence.SetPresence(false)
	return ControlOK
}

func (c *RunControl) TryStart(userID string) ControlResult {
	c.state.mu.Lock()
	if !c.state.authorizedLocked(userID) {
		c.state.mu.Unlock()
		return ControlUnauthorized
	}
	if c.state.active {
		c.state.mu.Unlock()
		return ControlAlreadyActive
	}
	c.state.active = true
	c.state.epoch++
	c.state.mu.Unlock()

	c.window.Clear()
	c.presence.SetPresence(true)
	return ControlOK
}
