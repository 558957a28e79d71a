package breach

import "github.com/abhisek/unitutor/internal/store"

// Controller signals carry the subscription they came from, so signals
// from a replaced puzzle can be told apart.

// stateChangedMsg signals that the controller published a new state. The
// screen re-reads the controller, so a dropped signal loses nothing.
type stateChangedMsg struct {
	src *subscription
}

// payoutMsg carries the reward once the payout delay has elapsed.
type payoutMsg struct {
	src    *subscription
	reward int
}

// closedMsg ends the subscription of a closed controller.
type closedMsg struct {
	src *subscription
}

// recordedMsg reports the outcome of persisting a resolved run.
type recordedMsg struct {
	profile *store.Profile
	err     error
}
