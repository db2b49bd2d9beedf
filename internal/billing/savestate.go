package billing

import "errors"

type SaveState string

const (
	SaveIdle    SaveState = "IDLE"
	SaveLoading SaveState = "LOADING"
	SaveSuccess SaveState = "SUCCESS"
	SaveError   SaveState = "ERROR"
)

// UpdateKey names the update a save state and its alerts belong to.
type UpdateKey string

const KeyBillingUpdate UpdateKey = "checkoutBillingUpdate"

var ErrInvalidTransition = errors.New("invalid save state transition")

// SaveStateTracker follows IDLE -> LOADING -> {SUCCESS, ERROR}. Every new
// submission goes back to LOADING.
type SaveStateTracker struct {
	state SaveState
}

func (t *SaveStateTracker) State() SaveState {
	if t.state == "" {
		return SaveIdle
	}
	return t.state
}

func (t *SaveStateTracker) Begin() {
	t.state = SaveLoading
}

func (t *SaveStateTracker) Succeed() error {
	return t.finish(SaveSuccess)
}

func (t *SaveStateTracker) Fail() error {
	return t.finish(SaveError)
}

func (t *SaveStateTracker) finish(to SaveState) error {
	if t.State() != SaveLoading {
		return ErrInvalidTransition
	}
	t.state = to
	return nil
}
