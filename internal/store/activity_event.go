package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendQuiz(ctx context.Context, data QuizEventData) error {
	err := r.insert(ctx, "quiz_events",
		[]string{"profile_id", "attempt_id", "title", "score", "total", "credits"},
		[]any{data.ProfileID, data.AttemptID, data.Title, data.Score, data.Total, data.Credits},
	)
	if err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendBreach(ctx context.Context, data BreachEventData) error {
	err := r.insert(ctx, "breach_events",
		[]string{"profile_id", "run_id", "status", "total_reward", "moves", "time_remaining"},
		[]any{data.ProfileID, data.RunID, data.Status, data.TotalReward, data.Moves, data.TimeRemaining},
	)
	if err != nil {
		return fmt.Errorf("save breach event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendBlackjack(ctx context.Context, data BlackjackEventData) error {
	err := r.insert(ctx, "blackjack_events",
		[]string{"profile_id", "bet", "result", "payout"},
		[]any{data.ProfileID, data.Bet, data.Result, data.Payout},
	)
	if err != nil {
		return fmt.Errorf("save blackjack event: %w", err)
	}
	return nil
}

// activitySource describes how one event table renders into the log.
type activitySource struct {
	kind    ActivityKind
	table   string
	columns []string
	format  func(scan func(...any) error) (string, error)
}

var activitySources = []activitySource{
	{
		kind:    ActivityLLM,
		table:   "llm_request_events",
		columns: []string{"purpose", "model", "latency_ms", "success"},
		format: func(scan func(...any) error) (string, error) {
			var purpose, model string
			var latency int64
			var ok bool
			if err := scan(&purpose, &model, &latency, &ok); err != nil {
				return "", err
			}
			status := "ok"
			if !ok {
				status = "failed"
			}
			return fmt.Sprintf("%s via %s (%dms, %s)", purpose, model, latency, status), nil
		},
	},
	{
		kind:    ActivityQuiz,
		table:   "quiz_events",
		columns: []string{"profile_id", "title", "score", "total", "credits"},
		format: func(scan func(...any) error) (string, error) {
			var profile, title string
			var score, total, credits int
			if err := scan(&profile, &title, &score, &total, &credits); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s scored %d/%d on %q (+%d)", profile, score, total, title, credits), nil
		},
	},
	{
		kind:    ActivityBreach,
		table:   "breach_events",
		columns: []string{"profile_id", "status", "total_reward", "moves"},
		format: func(scan func(...any) error) (string, error) {
			var profile, status string
			var reward, moves int
			if err := scan(&profile, &status, &reward, &moves); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s breach %s after %d moves (+%d)", profile, status, moves, reward), nil
		},
	},
	{
		kind:    ActivityBlackjack,
		table:   "blackjack_events",
		columns: []string{"profile_id", "bet", "result", "payout"},
		format: func(scan func(...any) error) (string, error) {
			var profile, result string
			var bet, payout int
			if err := scan(&profile, &bet, &result, &payout); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s %s blackjack hand (bet %d, paid %d)", profile, result, bet, payout), nil
		},
	},
}

func (r *eventRepo) RecentActivity(ctx context.Context, limit int) ([]Activity, error) {
	var all []Activity
	for _, src := range activitySources {
		t := builder().Table(src.table)
		sel := builder().Select(append([]string{"sequence", "timestamp"}, src.columns...)...).
			From(t).
			OrderBy(entsql.Desc("sequence"))
		if limit > 0 {
			sel.Limit(limit)
		}
		q, args := sel.Query()

		rows, err := r.db.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", src.table, err)
		}
		for rows.Next() {
			var a Activity
			summary, err := src.format(func(dest ...any) error {
				return rows.Scan(append([]any{&a.Sequence, &a.Timestamp}, dest...)...)
			})
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan %s: %w", src.table, err)
			}
			a.Kind = src.kind
			a.Summary = summary
			all = append(all, a)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}

	slices.SortFunc(all, func(a, b Activity) int {
		return cmp.Compare(b.Sequence, a.Sequence)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *eventRepo) ProfileStats(ctx context.Context, profileID string) (Stats, error) {
	var st Stats

	queries := []struct {
		table   string
		columns []string
		dest    []any
	}{
		{
			table: "quiz_events",
			columns: []string{
				entsql.Count("*"),
				"COALESCE(SUM(score), 0)",
				"COALESCE(SUM(total), 0)",
				"COALESCE(SUM(credits), 0)",
			},
			dest: []any{&st.Quizzes, &st.QuestionsRight, &st.QuestionsTotal, &st.QuizCredits},
		},
		{
			table: "breach_events",
			columns: []string{
				entsql.Count("*"),
				"COALESCE(SUM(status = 'won'), 0)",
				"COALESCE(SUM(total_reward), 0)",
			},
			dest: []any{&st.Breaches, &st.BreachesWon, &st.BreachCredits},
		},
		{
			table: "blackjack_events",
			columns: []string{
				entsql.Count("*"),
				"COALESCE(SUM(payout > bet), 0)",
				"COALESCE(SUM(payout - bet), 0)",
			},
			dest: []any{&st.Hands, &st.HandsWon, &st.BlackjackNet},
		},
	}

	for _, qq := range queries {
		t := builder().Table(qq.table)
		q, args := builder().Select(qq.columns...).From(t).
			Where(entsql.EQ("profile_id", profileID)).
			Query()
		if err := r.db.QueryRowContext(ctx, q, args...).Scan(qq.dest...); err != nil {
			return Stats{}, fmt.Errorf("aggregate %s: %w", qq.table, err)
		}
	}
	return st, nil
}

