package store

import (
	"database/sql"
	"fmt"
)

// tables lists the DDL for every table, in creation order. Event tables all
// carry the shared sequence as their primary key.
var tables = []struct {
	name string
	ddl  string
}{
	{"global_sequence", `CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`},
	{"profiles", `CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		recovery_key TEXT NOT NULL,
		total_score INTEGER NOT NULL DEFAULT 0,
		quizzes_completed INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	)`},
	{"settings", `CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`},
	{"llm_request_events", `CREATE TABLE IF NOT EXISTS llm_request_events (
		sequence INTEGER PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`},
	{"quiz_events", `CREATE TABLE IF NOT EXISTS quiz_events (
		sequence INTEGER PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		profile_id TEXT NOT NULL,
		attempt_id TEXT NOT NULL,
		title TEXT NOT NULL,
		score INTEGER NOT NULL,
		total INTEGER NOT NULL,
		credits INTEGER NOT NULL
	)`},
	{"breach_events", `CREATE TABLE IF NOT EXISTS breach_events (
		sequence INTEGER PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		profile_id TEXT NOT NULL,
		run_id TEXT NOT NULL,
		status TEXT NOT NULL,
		total_reward INTEGER NOT NULL,
		moves INTEGER NOT NULL,
		time_remaining INTEGER NOT NULL
	)`},
	{"blackjack_events", `CREATE TABLE IF NOT EXISTS blackjack_events (
		sequence INTEGER PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		profile_id TEXT NOT NULL,
		bet INTEGER NOT NULL,
		result TEXT NOT NULL,
		payout INTEGER NOT NULL
	)`},
}

// migrate creates any missing tables. Schema changes are additive only.
func migrate(db *sql.DB) error {
	for _, t := range tables {
		if _, err := db.Exec(t.ddl); err != nil {
			return fmt.Errorf("create %s: %w", t.name, err)
		}
	}
	return nil
}
