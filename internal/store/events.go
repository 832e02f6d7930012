package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"twig-cli/internal/model"

	"github.com/google/uuid"
)

// AppendEvent records one structural mutation in the append-only events
// table. Event ids are UUIDv4 so logs from different workspaces can be
// merged without collisions.
func (s Store) AppendEvent(ctx context.Context, typ, entityID string, payload any) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO events(id, ts_unixms, type, entity_id, payload_json)
		VALUES(?, ?, ?, ?, ?)`,
		uuid.NewString(), time.Now().UTC().UnixMilli(), strings.TrimSpace(typ), strings.TrimSpace(entityID), string(raw))
	return err
}

// ReadEventsTail returns the last limit events, oldest-first within the
// window. limit <= 0 returns all events.
func (s Store) ReadEventsTail(ctx context.Context, limit int) ([]model.Event, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	// rowid tie-breaks events appended within the same millisecond.
	q := `SELECT id, ts_unixms, type, entity_id, payload_json FROM events ORDER BY ts_unixms DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var ev model.Event
		var ts int64
		var payload string
		if err := rows.Scan(&ev.ID, &ts, &ev.Type, &ev.EntityID, &payload); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(ts).UTC()
		if payload != "" {
			var v any
			if err := json.Unmarshal([]byte(payload), &v); err == nil {
				ev.Payload = v
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Oldest-first for readers.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
