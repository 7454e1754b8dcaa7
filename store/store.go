// Package store persists classified demo kills in SQLite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/demo"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned for an unknown demo name
var ErrNotFound = errors.New("demo not found")

// Store is a SQLite-backed kill archive
type Store struct {
	sqlDB *sql.DB
}

// Kill is one stored classification
type Kill struct {
	Tick      int
	Time      time.Duration
	Killer    string
	Victim    string
	Weapon    string
	Trigger   string
	Contexts  classifier.KillContext
	DebugInfo string

	// Distance is +Inf when either player was missing
	Distance float64

	DurationMultiplier  float64
	SlowScaleMultiplier float64
	ZoomMultiplier      float64
	ZoomSpeedMultiplier float64
	BonusDuration       float64
	TriggerFlash        bool
}

// Open opens or creates the database at path and applies the schema
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveDemo stores records under name, replacing any earlier run of the same demo
func (s *Store) SaveDemo(ctx context.Context, name string, analyzedAt time.Time, records []demo.KillRecord) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("demo name is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM demos WHERE name = ?`, name); err != nil {
		return fmt.Errorf("replace demo: %w", err)
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO demos (name, analyzed_at) VALUES (?, ?)`, name, analyzedAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("insert demo: %w", err)
	}
	demoID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert demo: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO kills (
		   demo_id, seq, tick, time_ms, killer, victim, weapon, trigger_name,
		   contexts, debug_info, distance, duration_multiplier,
		   slow_scale_multiplier, zoom_multiplier, zoom_speed_multiplier,
		   bonus_duration, trigger_flash
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare kill insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		m := r.Modifier
		if _, err = stmt.ExecContext(ctx,
			demoID, i, r.Tick, r.Time.Milliseconds(), r.Killer, r.Victim, r.Weapon, r.Trigger.String(),
			int64(m.TriggeredContexts), m.DebugInfo, nullableDistance(m.TargetDistance), m.DurationMultiplier,
			m.SlowScaleMultiplier, m.ZoomMultiplier, m.ZoomSpeedMultiplier,
			m.BonusDuration, m.TriggerFlash,
		); err != nil {
			return fmt.Errorf("insert kill %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Kills returns the stored kills of a demo in record order
func (s *Store) Kills(ctx context.Context, name string) ([]Kill, error) {
	demoID, err := s.demoID(ctx, name)
	if err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT
		   tick, time_ms, killer, victim, weapon, trigger_name, contexts, debug_info,
		   distance, duration_multiplier, slow_scale_multiplier, zoom_multiplier,
		   zoom_speed_multiplier, bonus_duration, trigger_flash
		 FROM kills WHERE demo_id = ? ORDER BY seq`, demoID)
	if err != nil {
		return nil, fmt.Errorf("query kills: %w", err)
	}
	defer rows.Close()

	var kills []Kill
	for rows.Next() {
		var (
			k        Kill
			timeMs   int64
			contexts int64
			distance sql.NullFloat64
		)
		if err := rows.Scan(
			&k.Tick, &timeMs, &k.Killer, &k.Victim, &k.Weapon, &k.Trigger, &contexts, &k.DebugInfo,
			&distance, &k.DurationMultiplier, &k.SlowScaleMultiplier, &k.ZoomMultiplier,
			&k.ZoomSpeedMultiplier, &k.BonusDuration, &k.TriggerFlash,
		); err != nil {
			return nil, fmt.Errorf("scan kill: %w", err)
		}
		k.Time = time.Duration(timeMs) * time.Millisecond
		k.Contexts = classifier.KillContext(contexts)
		k.Distance = math.Inf(1)
		if distance.Valid {
			k.Distance = distance.Float64
		}
		kills = append(kills, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kills: %w", err)
	}
	return kills, nil
}

// TriggerCounts returns how many kills of a demo chose each trigger
func (s *Store) TriggerCounts(ctx context.Context, name string) (map[string]int, error) {
	demoID, err := s.demoID(ctx, name)
	if err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT trigger_name, COUNT(*) FROM kills WHERE demo_id = ? GROUP BY trigger_name`, demoID)
	if err != nil {
		return nil, fmt.Errorf("query trigger counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			trig string
			n    int
		)
		if err := rows.Scan(&trig, &n); err != nil {
			return nil, fmt.Errorf("scan trigger count: %w", err)
		}
		counts[trig] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trigger counts: %w", err)
	}
	return counts, nil
}

// Demos lists stored demo names alphabetically
func (s *Store) Demos(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name FROM demos ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query demos: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan demo: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) demoID(ctx context.Context, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var id int64
	err := s.sqlDB.QueryRowContext(ctx, `SELECT id FROM demos WHERE name = ?`, strings.TrimSpace(name)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("get demo: %w", err)
	}
	return id, nil
}

// nullableDistance maps the missing-actor +Inf onto NULL
func nullableDistance(d float64) sql.NullFloat64 {
	if math.IsInf(d, 0) || math.IsNaN(d) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: d, Valid: true}
}
