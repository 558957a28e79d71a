package blackjack

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBet          = errors.New("bet must be a positive amount")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrWrongPhase          = errors.New("action not allowed in this phase")
)

// FaucetAmount is granted to a broke player on request.
const FaucetAmount = 50

// dealerStand is the total at which the dealer stops drawing.
const dealerStand = 17

// Phase is the stage of a round.
type Phase int

const (
	Betting Phase = iota
	Playing
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Betting:
		return "betting"
	case Playing:
		return "playing"
	case GameOver:
		return "game over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Result is how a finished round ended.
type Result string

const (
	ResultNone       Result = ""
	ResultBlackjack  Result = "blackjack"
	ResultWin        Result = "win"
	ResultDealerBust Result = "dealer_bust"
	ResultPush       Result = "push"
	ResultBust       Result = "bust"
	ResultLose       Result = "lose"
)

// Won reports whether the player came out ahead.
func (r Result) Won() bool {
	return r == ResultBlackjack || r == ResultWin || r == ResultDealerBust
}

// Message is the banner shown for the result.
func (r Result) Message() string {
	switch r {
	case ResultBlackjack:
		return "BLACKJACK! SYSTEM OVERRIDE SUCCESSFUL."
	case ResultWin:
		return "HAND WON."
	case ResultDealerBust:
		return "DEALER CRASHED. YOU WIN."
	case ResultPush:
		return "TIE. CREDITS REFUNDED."
	case ResultBust:
		return "CRITICAL FAILURE: BUST."
	case ResultLose:
		return "DEALER WINS. CONNECTION TERMINATED."
	}
	return ""
}

// Game is one table. The caller owns the credit balance: it deducts the
// bet when Deal succeeds and credits Payout once the round is over.
type Game struct {
	rng    Rand
	deck   []Card
	player []Card
	dealer []Card
	phase  Phase
	bet    int
	result Result
}

// New returns a game waiting for a bet.
func New(rng Rand) *Game {
	return &Game{rng: rng}
}

func (g *Game) Phase() Phase { return g.phase }
func (g *Game) Bet() int { return g.bet }
func (g *Game) Result() Result { return g.result }
func (g *Game) Player() []Card { return append([]Card(nil), g.player...) }
func (g *Game) PlayerScore() int { return Score(g.player) }

// Dealer returns the dealer's cards. While the player is still acting
// only the first card is revealed.
func (g *Game) Dealer() (cards []Card, hidden int) {
	if g.phase == Playing && len(g.dealer) > 1 {
		return append([]Card(nil), g.dealer[:1]...), len(g.dealer) - 1
	}
	return append([]Card(nil), g.dealer...), 0
}

// DealerScore is the dealer total visible to the player.
func (g *Game) DealerScore() int {
	cards, _ := g.Dealer()
	return Score(cards)
}

// CheckBet validates a wager against the current balance.
func CheckBet(bet, credits int) error {
	if bet <= 0 {
		return ErrInvalidBet
	}
	if bet > credits {
		return fmt.Errorf("%w: bet %d, balance %d", ErrInsufficientCredits, bet, credits)
	}
	return nil
}

// Deal starts a round with a fresh shuffled deck. A natural 21 ends the
// round immediately.
func (g *Game) Deal(bet, credits int) error {
	if g.phase != Betting {
		return ErrWrongPhase
	}
	if err := CheckBet(bet, credits); err != nil {
		return err
	}

	g.deck = NewDeck()
	Shuffle(g.deck, g.rng)
	g.bet = bet
	g.result = ResultNone
	g.player = []Card{g.draw(), g.draw()}
	g.dealer = []Card{g.draw(), g.draw()}
	g.phase = Playing

	if Score(g.player) == 21 {
		g.finish(ResultBlackjack)
	}
	return nil
}

// Hit draws a card for the player.
func (g *Game) Hit() error {
	if g.phase != Playing {
		return ErrWrongPhase
	}
	g.player = append(g.player, g.draw())
	if Score(g.player) > 21 {
		g.finish(ResultBust)
	}
	return nil
}

// Stand plays out the dealer and settles the round.
func (g *Game) Stand() error {
	if g.phase != Playing {
		return ErrWrongPhase
	}
	for Score(g.dealer) < dealerStand {
		g.dealer = append(g.dealer, g.draw())
	}

	ps, ds := Score(g.player), Score(g.dealer)
	switch {
	case ds > 21:
		g.finish(ResultDealerBust)
	case ds > ps:
		g.finish(ResultLose)
	case ds < ps:
		g.finish(ResultWin)
	default:
		g.finish(ResultPush)
	}
	return nil
}

// Payout is what the player receives back once the round is over,
// stake included.
func (g *Game) Payout() int {
	if g.phase != GameOver {
		return 0
	}
	switch g.result {
	case ResultBlackjack:
		return g.bet * 5 / 2
	case ResultWin, ResultDealerBust:
		return g.bet * 2
	case ResultPush:
		return g.bet
	}
	return 0
}

// Next clears the table for a new bet.
func (g *Game) Next() error {
	if g.phase != GameOver {
		return ErrWrongPhase
	}
	g.player, g.dealer, g.deck = nil, nil, nil
	g.bet = 0
	g.result = ResultNone
	g.phase = Betting
	return nil
}

// CanClaimFaucet reports whether a player with credits may claim
// FaucetAmount.
func CanClaimFaucet(credits int) bool {
	return credits <= 0
}

func (g *Game) draw() Card {
	if len(g.deck) == 0 {
		g.deck = NewDeck()
		Shuffle(g.deck, g.rng)
	}
	c := g.deck[len(g.deck)-1]
	g.deck = g.deck[:len(g.deck)-1]
	return c
}

func (g *Game) finish(r Result) {
	g.result = r
	g.phase = GameOver
}
