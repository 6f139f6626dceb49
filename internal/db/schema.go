package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Schema creates every table the service uses. All statements are idempotent.
// The workout and goal tables are owned by the tracking side of the product,
// they are created here only so a fresh database is usable.
const Schema = `
CREATE TABLE IF NOT EXISTS goal (
	id            uuid PRIMARY KEY,
	user_id       uuid NOT NULL,
	title         text NOT NULL,
	description   text,
	unit          text NOT NULL,
	initial_value double precision NOT NULL DEFAULT 0,
	current_value double precision NOT NULL DEFAULT 0,
	target_value  double precision NOT NULL,
	target_date   timestamptz,
	achieved      boolean NOT NULL DEFAULT false,
	status        text NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'behind', 'completed')),
	created_at    timestamptz NOT NULL DEFAULT now(),
	updated_at    timestamptz NOT NULL DEFAULT now(),
	deleted_at    timestamptz
);
CREATE INDEX IF NOT EXISTS ix_goal_user ON goal (user_id) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS workout (
	id               uuid PRIMARY KEY,
	user_id          uuid NOT NULL,
	name             text NOT NULL,
	date             date NOT NULL,
	duration_minutes integer NOT NULL DEFAULT 0,
	created_at       timestamptz NOT NULL DEFAULT now(),
	deleted_at       timestamptz
);
CREATE INDEX IF NOT EXISTS ix_workout_user_date ON workout (user_id, date DESC) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS workout_exercise (
	id          uuid PRIMARY KEY,
	workout_id  uuid NOT NULL REFERENCES workout (id) ON DELETE CASCADE,
	name        text NOT NULL,
	sets        integer,
	reps        integer,
	weight      double precision,
	weight_unit text
);
CREATE INDEX IF NOT EXISTS ix_workout_exercise_workout ON workout_exercise (workout_id);

CREATE TABLE IF NOT EXISTS workout_plan (
	id                   uuid PRIMARY KEY,
	user_id              uuid NOT NULL,
	goal_id              uuid NOT NULL REFERENCES goal (id),
	name                 text NOT NULL,
	description          text,
	weeks_duration       integer NOT NULL CHECK (weeks_duration >= 1),
	workouts_per_week    integer NOT NULL,
	avg_workout_duration integer NOT NULL,
	status               text NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'active', 'completed', 'archived')),
	started_at           timestamptz,
	completed_at         timestamptz,
	rationale            text,
	progression_strategy text,
	key_considerations   text[],
	created_at           timestamptz NOT NULL DEFAULT now(),
	updated_at           timestamptz NOT NULL DEFAULT now(),
	deleted_at           timestamptz
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_workout_plan_user_goal_open ON workout_plan (user_id, goal_id)
	WHERE deleted_at IS NULL AND status IN ('draft', 'active');
CREATE UNIQUE INDEX IF NOT EXISTS ux_workout_plan_user_active ON workout_plan (user_id)
	WHERE deleted_at IS NULL AND status = 'active';

CREATE TABLE IF NOT EXISTS workout_plan_session (
	id                   uuid PRIMARY KEY,
	plan_id              uuid NOT NULL REFERENCES workout_plan (id) ON DELETE CASCADE,
	week_number          integer NOT NULL CHECK (week_number >= 1),
	day_of_week          integer NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
	day_name             text NOT NULL,
	session_order        integer NOT NULL DEFAULT 1,
	workout_name         text NOT NULL,
	workout_type         text NOT NULL,
	exercises            jsonb NOT NULL DEFAULT '[]',
	estimated_duration   integer NOT NULL DEFAULT 0,
	intensity            text NOT NULL DEFAULT 'medium' CHECK (intensity IN ('low', 'medium', 'high')),
	status               text NOT NULL DEFAULT 'scheduled' CHECK (status IN ('scheduled', 'completed', 'skipped')),
	completed_at         timestamptz,
	completed_workout_id uuid,
	notes                text,
	created_at           timestamptz NOT NULL DEFAULT now(),
	updated_at           timestamptz NOT NULL DEFAULT now(),
	deleted_at           timestamptz
);
CREATE INDEX IF NOT EXISTS ix_workout_plan_session_plan_week ON workout_plan_session (plan_id, week_number, day_of_week)
	WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS generation_job (
	id            uuid PRIMARY KEY,
	user_id       uuid NOT NULL,
	goal_id       uuid NOT NULL,
	status        text NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'processing', 'completed', 'failed')),
	request       jsonb NOT NULL,
	plan_id       uuid,
	error_message text,
	attempts      integer NOT NULL DEFAULT 0,
	created_at    timestamptz NOT NULL DEFAULT now(),
	updated_at    timestamptz NOT NULL DEFAULT now(),
	started_at    timestamptz,
	finished_at   timestamptz
);
CREATE INDEX IF NOT EXISTS ix_generation_job_user_created ON generation_job (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS ix_generation_job_processing ON generation_job (started_at) WHERE status = 'processing';
CREATE UNIQUE INDEX IF NOT EXISTS ux_generation_job_user_goal_in_flight ON generation_job (user_id, goal_id)
	WHERE status IN ('pending', 'processing');
`

// EnsureSchema applies Schema on the pool.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	log.Debugln("db schema ensured")
	return nil
}
