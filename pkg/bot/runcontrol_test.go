package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRunControl(admins ...string) (*RunControl, *RunState, *ConversationWindow, *recordingPresence) {
	state := NewRunState(admins)
	window := NewConversationWindow(5, 10)
	presence := &recordingPresence{}
	return NewRunControl(state, window, presence), state, window, presence
}

func TestRunControl_UnauthorizedStop(t *testing.T) {
	control, state, _, presence := newTestRunControl("admin")

	assert.Equal(t, ControlUnauthorized, control.TryStop("stranger"))
	assert.True(t, state.Active())
	assert.Empty(t, presence.Updates())
}

func TestRunControl_EmptyAdminListAllowsEveryone(t *testing.T) {
	control, state, _, _ := newTestRunControl()

	assert.Equal(t, ControlOK, control.TryStop("anyone"))
	assert.False(t, state.Active())
	assert.Equal(t, ControlOK, control.TryStart("someone else"))
	assert.True(t, state.Active())
}

func TestRunControl_StopStartCycle(t *testing.T) {
	control, state, window, presence := newTestRunControl("admin")
	window.Update("c", Record{Content: "old"})

	_, epoch := state.Snapshot()

	assert.Equal(t, ControlOK, control.TryStop("admin"))
	assert.False(t, state.Active())
	assert.False(t, state.Current(epoch))
	assert.Equal(t, 1, window.Len("c"), "stop keeps the context")

	assert.Equal(t, ControlOK, control.TryStart("admin"))
	assert.True(t, state.Active())
	assert.Equal(t, 0, window.Len("c"), "start clears the context")
	assert.False(t, state.Current(epoch), "a stop/start cycle invalidates earlier epochs")

	assert.Equal(t, []bool{false, true}, presence.Updates())
}

func TestRunControl_StartWhileActive(t *testing.T) {
	control, state, window, presence := newTestRunControl()
	window.Update("c", Record{Content: "keep"})
	_, epoch := state.Snapshot()

	assert.Equal(t, ControlAlreadyActive, control.TryStart("u"))
	assert.True(t, state.Current(epoch))
	assert.Equal(t, 1, window.Len("c"))
	assert.Empty(t, presence.Updates())
}

func TestRunControl_UnauthorizedStartWhilePaused(t *testing.T) {
	control, state, _, _ := newTestRunControl("admin")
	control.TryStop("admin")

	assert.Equal(t, ControlUnauthorized, control.TryStart("stranger"))
	assert.False(t, state.Active())
}

func TestRunState_Authorized(t *testing.T) {
	assert.True(t, NewRunState(nil).Authorized("x"))
	assert.True(t, NewRunState([]string{""}).Authorized("x"))

	state := NewRunState([]string{"a", "b"})
	assert.True(t, state.Authorized("b"))
	assert.False(t, state.Authorized("c"))
}
