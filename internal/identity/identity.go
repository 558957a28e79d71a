// Package identity manages the local guest profile: its generated
// username, recovery key and credit balance.
package identity

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/abhisek/unitutor/internal/store"
)

var (
	ErrInvalidUsername     = errors.New("username must be 3-16 characters of letters, digits, _ or -")
	ErrUsernameTaken       = errors.New("username is already taken")
	ErrNoSession           = errors.New("no active profile")
	ErrInvalidRecoveryKey  = errors.New("recovery key must be four words separated by dashes")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// RecoveryWords is the vocabulary recovery keys are drawn from.
var RecoveryWords = []string{
	"neon", "flux", "core", "grid", "node", "link", "byte", "data", "mech", "cyber",
	"pulse", "wave", "zero", "void", "sync", "warp", "tech", "chip", "code", "hack",
	"acid", "base", "root", "shell", "dark", "light", "nano", "bio", "mod", "gear",
	"scan", "ping", "host", "port", "gate", "lock", "key", "file", "load", "save",
}

var reserved = map[string]bool{
	"admin": true, "root": true, "system": true, "null": true, "undefined": true,
	"guest": true, "api": true, "bot": true, "ai": true,
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,16}$`)

const (
	keyWords     = 4
	idMin        = 10000
	idSpan       = 90000
	maxIDRetries = 100
)

// Rand is the randomness the service draws ids and keys from.
type Rand interface {
	IntN(n int) int
}

// Service owns the active profile.
type Service struct {
	repo store.ProfileRepo
	rng  Rand
	now  func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRand replaces the random source.
func WithRand(r Rand) Option {
	return func(s *Service) { s.rng = r }
}

// WithNow replaces the wall clock.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a Service backed by repo.
func New(repo store.ProfileRepo, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:  time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Current returns the signed-in profile, creating a fresh guest when
// nobody is signed in.
func (s *Service) Current(ctx context.Context) (*store.Profile, error) {
	p, err := s.repo.Active(ctx)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	id, err := s.freshID(ctx)
	if err != nil {
		return nil, err
	}
	np := store.Profile{
		ID:          id,
		RecoveryKey: s.newRecoveryKey(),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Put(ctx, np); err != nil {
		return nil, err
	}
	return &np, nil
}

// Rename changes the active profile's username. Renaming to the current
// name is a no-op.
func (s *Service) Rename(ctx context.Context, name string) (*store.Profile, error) {
	p, err := s.active(ctx)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if !usernamePattern.MatchString(name) {
		return nil, ErrInvalidUsername
	}
	if name == p.ID {
		return p, nil
	}
	if taken, err := s.taken(ctx, name); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: %s", ErrUsernameTaken, name)
	}

	if err := s.repo.Rename(ctx, p.ID, name); err != nil {
		return nil, err
	}
	p.ID = name
	return p, nil
}

// Recover signs in the profile derived from key. The recovered profile
// starts with a zero score.
func (s *Service) Recover(ctx context.Context, key string) (*store.Profile, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	words := strings.Split(key, "-")
	if len(words) != keyWords {
		return nil, ErrInvalidRecoveryKey
	}
	for _, w := range words {
		if w == "" {
			return nil, ErrInvalidRecoveryKey
		}
	}

	p := store.Profile{
		ID:          RecoveredID(key),
		RecoveryKey: key,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// RecordQuiz credits a finished quiz to the active profile.
func (s *Service) RecordQuiz(ctx context.Context, credits int) (*store.Profile, error) {
	p, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.AddScore(ctx, p.ID, credits, 1)
}

// AdjustCredits adds delta (which may be negative) to the active
// profile's balance. The balance never drops below zero.
func (s *Service) AdjustCredits(ctx context.Context, delta int) (*store.Profile, error) {
	p, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	if p.TotalScore+delta < 0 {
		return nil, fmt.Errorf("%w: balance %d, change %d", ErrInsufficientCredits, p.TotalScore, delta)
	}
	return s.repo.AddScore(ctx, p.ID, delta, 0)
}

// Logout signs the active profile out. The next Current call creates a
// new guest.
func (s *Service) Logout(ctx context.Context) error {
	return s.repo.SignOut(ctx)
}

// RecoveredID maps a normalized recovery key to its username.
func RecoveredID(key string) string {
	h := stringHash(key)
	n := int(h % idSpan)
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("user_%d", n+idMin)
}

// stringHash is the classic 31-multiplier hash over UTF-16 code units,
// wrapping at 32 bits.
func stringHash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	return h
}

func (s *Service) active(ctx context.Context) (*store.Profile, error) {
	p, err := s.repo.Active(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoSession
	}
	return p, nil
}

func (s *Service) taken(ctx context.Context, name string) (bool, error) {
	if reserved[strings.ToLower(name)] {
		return true, nil
	}
	existing, err := s.repo.Get(ctx, name)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

func (s *Service) freshID(ctx context.Context) (string, error) {
	for range maxIDRetries {
		id := fmt.Sprintf("user_%d", idMin+s.rng.IntN(idSpan))
		taken, err := s.taken(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("no free username after %d attempts", maxIDRetries)
}

func (s *Service) newRecoveryKey() string {
	words := make([]string, keyWords)
	for i := range words {
		words[i] = RecoveryWords[s.rng.IntN(len(RecoveryWords))]
	}
	return strings.Join(words, "-")
}
