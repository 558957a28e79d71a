package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM call.
type LLMRequestEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// QuizEventData records a submitted quiz.
type QuizEventData struct {
	ProfileID string
	AttemptID string
	Title     string
	Score     int
	Total     int
	Credits   int
}

// BreachEventData records the resolution of one breach puzzle.
type BreachEventData struct {
	ProfileID     string
	RunID         string
	Status        string
	TotalReward   int
	Moves         int
	TimeRemaining int
}

// BlackjackEventData records one settled blackjack hand.
type BlackjackEventData struct {
	ProfileID string
	Bet       int
	Result    string
	Payout    int
}

// ActivityKind names the table an Activity row came from.
type ActivityKind string

const (
	ActivityLLM       ActivityKind = "llm"
	ActivityQuiz      ActivityKind = "quiz"
	ActivityBreach    ActivityKind = "breach"
	ActivityBlackjack ActivityKind = "blackjack"
)

// Activity is one line of the combined event log.
type Activity struct {
	Sequence  int64
	Timestamp time.Time
	Kind      ActivityKind
	Summary   string
}

// Stats summarizes a profile's history.
type Stats struct {
	Quizzes        int
	QuestionsRight int
	QuestionsTotal int
	QuizCredits    int
	Breaches       int
	BreachesWon    int
	BreachCredits  int
	Hands          int
	HandsWon       int
	BlackjackNet   int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendQuiz records a submitted quiz.
	AppendQuiz(ctx context.Context, data QuizEventData) error

	// AppendBreach records a resolved or abandoned breach puzzle.
	AppendBreach(ctx context.Context, data BreachEventData) error

	// AppendBlackjack records a settled blackjack hand.
	AppendBlackjack(ctx context.Context, data BlackjackEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM event, or nil when id is unknown.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// RecentActivity merges every event table, newest first.
	RecentActivity(ctx context.Context, limit int) ([]Activity, error)

	// ProfileStats summarizes the events recorded for one profile.
	ProfileStats(ctx context.Context, profileID string) (Stats, error)
}

// Profile is a locally stored guest identity.
type Profile struct {
	ID               string
	RecoveryKey      string
	CreatedAt        time.Time
	TotalScore       int
	QuizzesCompleted int
}

// ProfileRepo persists guest profiles and tracks which one is signed in.
type ProfileRepo interface {
	// Active returns the signed-in profile, or nil when signed out.
	Active(ctx context.Context) (*Profile, error)

	// Get returns the profile with the given id, or nil.
	Get(ctx context.Context, id string) (*Profile, error)

	// Put inserts or replaces p and signs it in.
	Put(ctx context.Context, p Profile) error

	// Rename moves a profile to a new id and keeps it signed in.
	Rename(ctx context.Context, oldID, newID string) error

	// AddScore adjusts the score and quiz count of a profile and returns
	// the updated row.
	AddScore(ctx context.Context, id string, delta, quizzes int) (*Profile, error)

	// SignOut clears the active profile without deleting it.
	SignOut(ctx context.Context) error
}
