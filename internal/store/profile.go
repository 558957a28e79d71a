package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const activeProfileKey = "active_profile"

// profileRepo implements ProfileRepo.
type profileRepo struct {
	db *sql.DB
}

var profileColumns = []string{"id", "recovery_key", "created_at", "total_score", "quizzes_completed"}

func (r *profileRepo) Get(ctx context.Context, id string) (*Profile, error) {
	t := builder().Table("profiles")
	q, args := builder().Select(profileColumns...).From(t).
		Where(entsql.EQ("id", id)).
		Query()

	var p Profile
	err := r.db.QueryRowContext(ctx, q, args...).
		Scan(&p.ID, &p.RecoveryKey, &p.CreatedAt, &p.TotalScore, &p.QuizzesCompleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %q: %w", id, err)
	}
	return &p, nil
}

func (r *profileRepo) Active(ctx context.Context) (*Profile, error) {
	t := builder().Table("settings")
	q, args := builder().Select("value").From(t).
		Where(entsql.EQ("key", activeProfileKey)).
		Query()

	var id string
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read active profile: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *profileRepo) Put(ctx context.Context, p Profile) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		q, args := builder().Insert("profiles").
			Columns(profileColumns...).
			Values(p.ID, p.RecoveryKey, p.CreatedAt.UTC(), p.TotalScore, p.QuizzesCompleted).
			OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
			Query()
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		return setActive(ctx, tx, p.ID)
	})
}

func (r *profileRepo) Rename(ctx context.Context, oldID, newID string) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		q, args := builder().Update("profiles").
			Set("id", newID).
			Where(entsql.EQ("id", oldID)).
			Query()
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("rename profile: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("rename profile %q: %w", oldID, ErrNotFound)
		}
		return setActive(ctx, tx, newID)
	})
}

func (r *profileRepo) AddScore(ctx context.Context, id string, delta, quizzes int) (*Profile, error) {
	q, args := builder().Update("profiles").
		Add("total_score", delta).
		Add("quizzes_completed", quizzes).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("update score: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("update score for %q: %w", id, ErrNotFound)
	}
	return r.Get(ctx, id)
}

func (r *profileRepo) SignOut(ctx context.Context) error {
	q, args := builder().Delete("settings").
		Where(entsql.EQ("key", activeProfileKey)).
		Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func setActive(ctx context.Context, tx *sql.Tx, id string) error {
	q, args := builder().Insert("settings").
		Columns("key", "value").
		Values(activeProfileKey, id).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("set active profile: %w", err)
	}
	return nil
}

func (r *profileRepo) inTx(ctx context.Context, f func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := f(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
