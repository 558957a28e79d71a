package breach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	path := MasterPath{Values: []Symbol{"A1", "B2", "A3", "C4", "D5", "E6", "F7"}}
	targets, err := Synthesize(path)
	require.NoError(t, err)
	require.Len(t, targets, 3)

	assert.Equal(t, []Symbol{"A1", "B2"}, targets[0].Sequence)
	assert.Equal(t, []Symbol{"A3", "C4", "D5"}, targets[1].Sequence)
	assert.Equal(t, []Symbol{"D5", "E6", "F7"}, targets[2].Sequence)

	assert.Equal(t, 10, targets[0].Reward)
	assert.Equal(t, 15, targets[1].Reward)
	assert.Equal(t, 25, targets[2].Reward)
	assert.Equal(t, 50, MaxReward(targets))

	// The hardest two daemons share one symbol.
	assert.Equal(t, targets[1].Sequence[2], targets[2].Sequence[0])

	for i, tg := range targets {
		assert.Equal(t, i+1, tg.ID)
		assert.NotEmpty(t, tg.Label)
		assert.False(t, tg.Completed)
	}
}

func TestSynthesize_CopiesPath(t *testing.T) {
	values := []Symbol{"A1", "B2", "A3", "C4", "D5", "E6", "F7"}
	targets, err := Synthesize(MasterPath{Values: values})
	require.NoError(t, err)

	values[0] = "XX"
	assert.Equal(t, Symbol("A1"), targets[0].Sequence[0])
}

func TestSynthesize_WrongLength(t *testing.T) {
	_, err := Synthesize(MasterPath{Values: []Symbol{"A1", "B2"}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
