// Package blackjack is the table screen where credits are wagered.
package blackjack

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	bj "github.com/abhisek/unitutor/internal/blackjack"
	"github.com/abhisek/unitutor/internal/identity"
	"github.com/abhisek/unitutor/internal/router"
	"github.com/abhisek/unitutor/internal/screen"
	"github.com/abhisek/unitutor/internal/store"
	"github.com/abhisek/unitutor/internal/ui/components"
	"github.com/abhisek/unitutor/internal/ui/layout"
)

const defaultBet = 10

// profileMsg carries the profile loaded or updated by a credit change.
type profileMsg struct {
	profile *store.Profile
	err     error
}

// betPlacedMsg reports that the stake has been taken from the balance.
type betPlacedMsg struct {
	bet     int
	profile *store.Profile
	err     error
}

// settledMsg reports that a finished hand has been paid out and logged.
type settledMsg struct {
	profile *store.Profile
	err     error
}

// BlackjackScreen runs one table against the active profile's balance.
type BlackjackScreen struct {
	game     *bj.Game
	events   store.EventRepo
	identity *identity.Service
	logger   *zap.Logger

	profile *store.Profile
	input   components.TextInput
	pending bool
	settled bool
	errMsg  string
}

var _ screen.Screen = (*BlackjackScreen)(nil)
var _ screen.KeyHintProvider = (*BlackjackScreen)(nil)
var _ screen.BackHandler = (*BlackjackScreen)(nil)

// New creates a blackjack table.
func New(rng bj.Rand, events store.EventRepo, ident *identity.Service, logger *zap.Logger) *BlackjackScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	input := components.NewTextInput(components.InputDigits, fmt.Sprint(defaultBet), 6, 8)
	return &BlackjackScreen{
		game:     bj.New(rng),
		events:   events,
		identity: ident,
		logger:   logger,
		input:    input,
	}
}

func (s *BlackjackScreen) Init() tea.Cmd {
	ident := s.identity
	return tea.Batch(s.input.Init(), func() tea.Msg {
		p, err := ident.Current(context.Background())
		return profileMsg{profile: p, err: err}
	})
}

func (s *BlackjackScreen) Title() string {
	return "Blackjack"
}

// HandlesBack holds the player at the table while a hand is live.
func (s *BlackjackScreen) HandlesBack() bool {
	return s.pending || s.game.Phase() == bj.Playing
}

func (s *BlackjackScreen) credits() int {
	if s.profile == nil {
		return 0
	}
	return s.profile.TotalScore
}

func (s *BlackjackScreen) KeyHints() []layout.KeyHint {
	switch s.game.Phase() {
	case bj.Playing:
		return []layout.KeyHint{
			{Key: "H", Description: "Hit"},
			{Key: "S", Description: "Stand"},
		}
	case bj.GameOver:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next hand"},
			{Key: "Esc", Description: "Leave table"},
		}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Deal"}}
	if bj.CanClaimFaucet(s.credits()) {
		hints = append(hints, layout.KeyHint{Key: "F", Description: "Claim faucet"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *BlackjackScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileMsg:
		s.pending = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		return s, s.setProfile(msg.profile)

	case betPlacedMsg:
		return s, s.dealPlaced(msg)

	case settledMsg:
		s.pending = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		}
		return s, s.setProfile(msg.profile)

	case screen.ProfileUpdatedMsg:
		s.profile = msg.Profile
		return s, nil

	case tea.KeyMsg:
		if s.pending {
			return s, nil
		}
		switch s.game.Phase() {
		case bj.Playing:
			return s, s.handlePlayKey(msg)
		case bj.GameOver:
			return s.handleOverKey(msg)
		default:
			return s.handleBetKey(msg)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *BlackjackScreen) setProfile(p *store.Profile) tea.Cmd {
	if p == nil {
		return nil
	}
	s.profile = p
	return func() tea.Msg { return screen.ProfileUpdatedMsg{Profile: p} }
}

func (s *BlackjackScreen) handleBetKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter":
		return s, s.placeBet()
	case "f":
		return s, s.claimFaucet()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *BlackjackScreen) handlePlayKey(msg tea.KeyMsg) tea.Cmd {
	var err error
	switch msg.String() {
	case "h":
		err = s.game.Hit()
	case "s":
		err = s.game.Stand()
	default:
		return nil
	}
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return s.settle()
}

func (s *BlackjackScreen) handleOverKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter", "n", "space":
		if err := s.game.Next(); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.settled = false
		s.errMsg = ""
	}
	return s, nil
}

func (s *BlackjackScreen) bet() (int, error) {
	if s.input.Value() == "" {
		return defaultBet, nil
	}
	n, err := s.input.Int()
	if err != nil {
		return 0, bj.ErrInvalidBet
	}
	return n, nil
}

func (s *BlackjackScreen) placeBet() tea.Cmd {
	bet, err := s.bet()
	if err == nil {
		err = bj.CheckBet(bet, s.credits())
	}
	if err != nil {
		s.errMsg = err.Error()
		s.input.Mark(false)
		return nil
	}

	s.errMsg = ""
	s.pending = true
	ident := s.identity
	return func() tea.Msg {
		p, err := ident.AdjustCredits(context.Background(), -bet)
		return betPlacedMsg{bet: bet, profile: p, err: err}
	}
}

func (s *BlackjackScreen) dealPlaced(msg betPlacedMsg) tea.Cmd {
	s.pending = false
	if msg.err != nil {
		s.errMsg = msg.err.Error()
		return nil
	}
	cmd := s.setProfile(msg.profile)
	if err := s.game.Deal(msg.bet, msg.profile.TotalScore+msg.bet); err != nil {
		// The stake is already gone; hand it back.
		s.logger.Error("deal failed after bet was taken", zap.Int("bet", msg.bet), zap.Error(err))
		s.errMsg = err.Error()
		ident := s.identity
		return tea.Batch(cmd, func() tea.Msg {
			p, err := ident.AdjustCredits(context.Background(), msg.bet)
			return profileMsg{profile: p, err: err}
		})
	}
	s.input.Reset()
	return tea.Batch(cmd, s.settle())
}

// settle pays out and records a finished hand exactly once.
func (s *BlackjackScreen) settle() tea.Cmd {
	if s.game.Phase() != bj.GameOver || s.settled {
		return nil
	}
	s.settled = true
	s.pending = true

	ident, events, logger := s.identity, s.events, s.logger
	payout := s.game.Payout()
	data := store.BlackjackEventData{
		Bet:    s.game.Bet(),
		Result: string(s.game.Result()),
		Payout: payout,
	}
	return func() tea.Msg {
		ctx := context.Background()
		p, err := ident.Current(ctx)
		if err != nil {
			return settledMsg{err: err}
		}
		if payout > 0 {
			if p, err = ident.AdjustCredits(ctx, payout); err != nil {
				return settledMsg{err: err}
			}
		}
		data.ProfileID = p.ID
		var logErr error
		if events != nil {
			logErr = events.AppendBlackjack(ctx, data)
		}
		logger.Info("blackjack hand settled",
			zap.String("profile", p.ID),
			zap.String("result", data.Result),
			zap.Int("bet", data.Bet),
			zap.Int("payout", payout))
		return settledMsg{profile: p, err: logErr}
	}
}

func (s *BlackjackScreen) claimFaucet() tea.Cmd {
	if !bj.CanClaimFaucet(s.credits()) {
		s.errMsg = "faucet is only available with an empty balance"
		return nil
	}
	s.pending = true
	ident := s.identity
	return func() tea.Msg {
		p, err := ident.AdjustCredits(context.Background(), bj.FaucetAmount)
		return profileMsg{profile: p, err: err}
	}
}
