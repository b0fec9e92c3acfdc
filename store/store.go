// Package store persists study runs to Postgres so past analyses can be
// compared across data drops. One run row fans out to per-room metrics,
// the global size-bin distribution, and the concurrency timeline.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"workplace-utilization/specs"
)

// Config carries the connection target for a persistence run.
type Config struct {
	URL    string
	Schema string

	// Optional free-form label attached to the run row.
	Tag string
}

const DefaultSchema = "spaceaudit"

// URLFromEnv resolves the connection string from SPACEAUDIT_DB_URL, falling
// back to DATABASE_URL.
func URLFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("SPACEAUDIT_DB_URL")); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("DATABASE_URL"))
}

var validSchema = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func sanitizeSchema(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("db schema is required")
	}
	if !validSchema.MatchString(value) {
		return "", fmt.Errorf("invalid schema name: %s", value)
	}
	return value, nil
}

// StoreRun writes one study's metrics to the database, creating the schema
// and tables on first use. It returns the generated run id.
func StoreRun(studyType string, metrics specs.UtilizationMetricsSpec, cfg Config) (string, error) {
	schema, err := sanitizeSchema(cfg.Schema)
	if err != nil {
		return "", err
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return "", err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return "", err
	}

	if err := ensureSchema(ctx, db, schema); err != nil {
		return "", err
	}

	return storeRunTx(ctx, db, studyType, metrics, schema, cfg.Tag)
}

func storeRunTx(ctx context.Context, db *sql.DB, studyType string, metrics specs.UtilizationMetricsSpec, schema string, tag string) (string, error) {
	runID := uuid.New()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	concurrencyAvg := sql.NullFloat64{}
	concurrencyMax := sql.NullFloat64{}
	if metrics.Concurrency != nil {
		concurrencyAvg = sql.NullFloat64{Float64: metrics.Concurrency.AvgPct, Valid: true}
		concurrencyMax = sql.NullFloat64{Float64: metrics.Concurrency.MaxPct, Valid: true}
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s.study_runs (
			id, created_at, study_type, total_observations, total_rooms,
			overall_utilization, overall_avg_attendees, avg_occupancy,
			peak_occupancy, concurrency_avg_pct, concurrency_max_pct, run_tag
		) VALUES (
			$1,$2,$3,$4,$5,
			$6,$7,$8,
			$9,$10,$11,$12
		)`, schema),
		runID,
		time.Now().UTC(),
		studyType,
		metrics.TotalObservations,
		metrics.TotalRooms,
		metrics.OverallUtilization,
		metrics.OverallAvgAttendees,
		metrics.AvgOccupancy,
		metrics.PeakOccupancy,
		concurrencyAvg,
		concurrencyMax,
		nullString(tag),
	)
	if err != nil {
		_ = tx.Rollback()
		return "", err
	}

	insertRoomSQL := fmt.Sprintf(`
		INSERT INTO %s.room_metrics (
			id, run_id, floor, room_name, room_type, capacity,
			observed_slots, occupied_slots, utilization_pct, avg_occupancy,
			top_meeting_size, classification, status_rule
		) VALUES (
			$1,$2,$3,$4,$5,$6,
			$7,$8,$9,$10,
			$11,$12,$13
		)`, schema)

	for _, room := range metrics.RoomMetrics {
		_, err = tx.ExecContext(ctx, insertRoomSQL,
			uuid.New(),
			runID,
			room.Floor,
			room.RoomName,
			room.RoomType,
			room.Capacity,
			room.ObservedSlots,
			room.OccupiedSlots,
			room.UtilizationPct,
			room.AvgOccupancy,
			room.TopMeetingSize,
			room.Classification,
			room.Analysis.StatusRule,
		)
		if err != nil {
			_ = tx.Rollback()
			return "", err
		}
	}

	insertBinSQL := fmt.Sprintf(`
		INSERT INTO %s.global_size_bins (
			id, run_id, label, bin_count, occupancy_pct
		) VALUES ($1,$2,$3,$4,$5)`, schema)

	for _, bin := range metrics.GlobalSizeBins {
		_, err = tx.ExecContext(ctx, insertBinSQL,
			uuid.New(), runID, bin.Label, bin.Count, bin.OccupancyPct,
		)
		if err != nil {
			_ = tx.Rollback()
			return "", err
		}
	}

	if metrics.Concurrency != nil {
		insertPointSQL := fmt.Sprintf(`
			INSERT INTO %s.concurrency_timeline (
				id, run_id, seq, time_label, occupied_rooms, total_rooms, pct
			) VALUES ($1,$2,$3,$4,$5,$6,$7)`, schema)

		for i, point := range metrics.Concurrency.Timeline {
			_, err = tx.ExecContext(ctx, insertPointSQL,
				uuid.New(), runID, i, point.Time, point.Occupied, point.Total, point.Pct,
			)
			if err != nil {
				_ = tx.Rollback()
				return "", err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return runID.String(), nil
}

func ensureSchema(ctx context.Context, db *sql.DB, schema string) error {
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema)); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.study_runs (
			id uuid PRIMARY KEY,
			created_at timestamptz NOT NULL,
			study_type text NOT NULL,
			total_observations integer NOT NULL,
			total_rooms integer NOT NULL,
			overall_utilization double precision NOT NULL,
			overall_avg_attendees double precision NOT NULL,
			avg_occupancy double precision NOT NULL,
			peak_occupancy double precision NOT NULL,
			concurrency_avg_pct double precision,
			concurrency_max_pct double precision,
			run_tag text
		)`, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.room_metrics (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.study_runs(id) ON DELETE CASCADE,
			floor text NOT NULL,
			room_name text NOT NULL,
			room_type text NOT NULL,
			capacity integer NOT NULL,
			observed_slots integer NOT NULL,
			occupied_slots integer NOT NULL,
			utilization_pct double precision NOT NULL,
			avg_occupancy double precision NOT NULL,
			top_meeting_size text NOT NULL,
			classification text NOT NULL,
			status_rule text NOT NULL
		)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_room_metrics_run_idx ON %s.room_metrics (run_id)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.global_size_bins (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.study_runs(id) ON DELETE CASCADE,
			label text NOT NULL,
			bin_count integer NOT NULL,
			occupancy_pct double precision NOT NULL
		)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.concurrency_timeline (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.study_runs(id) ON DELETE CASCADE,
			seq integer NOT NULL,
			time_label text NOT NULL,
			occupied_rooms integer NOT NULL,
			total_rooms integer NOT NULL,
			pct double precision NOT NULL
		)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_concurrency_timeline_run_idx ON %s.concurrency_timeline (run_id)`, schema, schema))
	return err
}

func nullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
