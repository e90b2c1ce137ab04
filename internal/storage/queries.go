package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
)

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

// MatchLookup is a cached /matches/{id} response and the map resolved from it.
type MatchLookup struct {
	MatchID   string
	MapName   string // normalized; "" when the upstream document had none
	RawSize   int    // size of the uncompressed payload in bytes
	FetchedAt time.Time

	payload []byte // zstd-compressed upstream JSON
}

// Payload returns the decompressed upstream document.
func (m *MatchLookup) Payload() ([]byte, error) {
	if len(m.payload) == 0 {
		return nil, nil
	}
	out, err := decoder.DecodeAll(m.payload, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress payload for %s: %w", m.MatchID, err)
	}
	return out, nil
}

// CompressedSize returns the stored payload size in bytes.
func (m *MatchLookup) CompressedSize() int { return len(m.payload) }

// Expired reports whether the entry is older than ttl at now. A
// non-positive ttl never expires.
func (m *MatchLookup) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(m.FetchedAt) > ttl
}

// PutMatchLookup stores a lookup. Uses INSERT OR REPLACE for idempotency.
func (db *DB) PutMatchLookup(matchID, mapName string, raw []byte, fetchedAt time.Time) error {
	var blob []byte
	if len(raw) > 0 {
		blob = encoder.EncodeAll(raw, nil)
	}
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO match_lookups(match_id, map_name, payload, raw_size, fetched_at)
		VALUES (?, ?, ?, ?, ?)`,
		matchID, mapName, blob, len(raw), fetchedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert match_lookup %s: %w", matchID, err)
	}
	return nil
}

// GetMatchLookup returns the cached lookup for matchID, or nil if absent.
func (db *DB) GetMatchLookup(matchID string) (*MatchLookup, error) {
	var (
		m       MatchLookup
		fetched int64
	)
	err := db.conn.QueryRow(`
		SELECT match_id, map_name, payload, raw_size, fetched_at
		FROM match_lookups WHERE match_id = ?`, matchID).
		Scan(&m.MatchID, &m.MapName, &m.payload, &m.RawSize, &fetched)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.FetchedAt = time.Unix(fetched, 0)
	return &m, nil
}

// ListMatchLookups returns all cached lookups, newest first. Payloads are
// not loaded.
func (db *DB) ListMatchLookups() ([]MatchLookup, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, map_name, raw_size, fetched_at
		FROM match_lookups ORDER BY fetched_at DESC, match_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchLookup
	for rows.Next() {
		var (
			m       MatchLookup
			fetched int64
		)
		if err := rows.Scan(&m.MatchID, &m.MapName, &m.RawSize, &fetched); err != nil {
			return nil, err
		}
		m.FetchedAt = time.Unix(fetched, 0)
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMatchLookup removes one entry. Deleting a missing entry is not an error.
func (db *DB) DeleteMatchLookup(matchID string) error {
	_, err := db.conn.Exec("DELETE FROM match_lookups WHERE match_id = ?", matchID)
	return err
}

// ClearMatchLookups removes every entry and returns how many were deleted.
func (db *DB) ClearMatchLookups() (int64, error) {
	res, err := db.conn.Exec("DELETE FROM match_lookups")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = fmt.Sprintf("<%d bytes>", len(x))
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
