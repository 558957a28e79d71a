package breach

import (
	"sync"

	tea "charm.land/bubbletea/v2"
)

// subscription carries controller signals to the screen. Senders run on
// the controller's goroutines, including inside Update via Select, so no
// send ever blocks.
type subscription struct {
	changed chan struct{} // coalesced: one pending signal means "re-read state"
	payout  chan int      // written at most once per controller
	done    chan struct{}
	once    sync.Once
}

func newSubscription() *subscription {
	return &subscription{
		changed: make(chan struct{}, 1),
		payout:  make(chan int, 1),
		done:    make(chan struct{}),
	}
}

// notify flags a state change. A signal already pending covers this one,
// since the screen reads the controller's latest state when it wakes.
func (s *subscription) notify() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// pay queues the reward. The controller pays once, so the slot is free.
func (s *subscription) pay(total int) {
	select {
	case s.payout <- total:
	default:
	}
}

func (s *subscription) close() {
	s.once.Do(func() { close(s.done) })
}

// wait blocks until the next signal. Once closed it reports closedMsg.
func (s *subscription) wait() tea.Msg {
	select {
	case total := <-s.payout:
		return payoutMsg{src: s, reward: total}
	case <-s.changed:
		return stateChangedMsg{src: s}
	case <-s.done:
		return closedMsg{src: s}
	}
}

// poll returns a pending signal without waiting.
func (s *subscription) poll() (tea.Msg, bool) {
	select {
	case total := <-s.payout:
		return payoutMsg{src: s, reward: total}, true
	case <-s.changed:
		return stateChangedMsg{src: s}, true
	default:
		return nil, false
	}
}
