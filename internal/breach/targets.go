package breach

import "fmt"

// Target is a daemon: a symbol sequence that pays Reward the first time it
// shows up in the buffer.
type Target struct {
	ID        int
	Label     string
	Sequence  []Symbol
	Reward    int
	Completed bool
}

// daemonSlice describes which part of the master path a daemon covers.
type daemonSlice struct {
	label    string
	from, to int
	reward   int
}

// daemonSlices are ordered by difficulty. The last two share path index 4.
var daemonSlices = []daemonSlice{
	{label: "DATAMINE_V1", from: 0, to: 2, reward: 10},
	{label: "DATAMINE_V2", from: 2, to: 5, reward: 15},
	{label: "DATAMINE_V3", from: 4, to: 7, reward: 25},
}

// Synthesize derives the three daemons from the master path.
func Synthesize(path MasterPath) ([]Target, error) {
	if len(path.Values) != PathLength {
		return nil, fmt.Errorf("%w: master path has %d values, want %d", ErrInvalidConfig, len(path.Values), PathLength)
	}
	targets := make([]Target, len(daemonSlices))
	for i, d := range daemonSlices {
		seq := make([]Symbol, d.to-d.from)
		copy(seq, path.Values[d.from:d.to])
		targets[i] = Target{
			ID:       i + 1,
			Label:    d.label,
			Sequence: seq,
			Reward:   d.reward,
		}
	}
	return targets, nil
}

// MaxReward is the payout when every daemon completes.
func MaxReward(targets []Target) int {
	total := 0
	for _, t := range targets {
		total += t.Reward
	}
	return total
}

func cloneTargets(targets []Target) []Target {
	out := make([]Target, len(targets))
	copy(out, targets)
	return out
}
