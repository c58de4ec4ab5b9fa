package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"lottie-studio/api/internal/activity"
)

// HistoryRepo mirrors finalized activities into Postgres so they survive
// redeploys of the data directory. Best effort: the JSON files stay
// authoritative.
type HistoryRepo struct{ DB *sql.DB }

func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{DB: db} }

func (r *HistoryRepo) Record(ctx context.Context, a *activity.Activity) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return err
	}
	const q = `
insert into activity_history (id, group_alias, cefr_level, payload)
values ($1, $2, $3, $4)
on conflict (id) do update
set group_alias = excluded.group_alias,
    cefr_level = excluded.cefr_level,
    payload = excluded.payload`
	_, err = r.DB.ExecContext(ctx, q, a.ID, a.GroupAlias, a.CefrLevel, payload)
	return err
}

// Recent returns the ids of the most recently recorded activities, newest
// first.
func (r *HistoryRepo) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	const q = `
select id, created_at, group_alias, cefr_level
from activity_history
order by created_at desc
limit $1`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.GroupAlias, &e.CefrLevel); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type HistoryEntry struct {
	ID         string
	CreatedAt  time.Time
	GroupAlias string
	CefrLevel  string
}
