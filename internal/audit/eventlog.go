package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// Event types recorded by the platform.
const (
	TypeQuizPublished     = "QuizPublished"
	TypeQuizDeleted       = "QuizDeleted"
	TypeResponseSubmitted = "ResponseSubmitted"
	TypeUserDeleted       = "UserDeleted"
)

type Event struct {
	Offset    int64  `json:"offset"`
	Type      string `json:"typ"`
	Key       string `json:"key"`
	Actor     string `json:"actor,omitempty"`
	DataJSON  string `json:"data"`
	CreatedAt int64  `json:"created_at"`
}

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(ctx context.Context, typ, key, actor string, data any) error {
	buf, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, actor, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		typ, key, actor, string(buf), time.Now().Unix())
	return err
}

// Search returns the most recent events whose type or key matches q.
func (r *EventRepo) Search(ctx context.Context, q string, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT "offset", typ, key, actor, data, created_at FROM event_log
		 WHERE typ LIKE '%'||$1||'%' OR key LIKE '%'||$1||'%'
		 ORDER BY "offset" DESC LIMIT $2`, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Offset, &e.Type, &e.Key, &e.Actor, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
