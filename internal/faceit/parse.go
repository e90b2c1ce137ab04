package faceit

import (
	"github.com/tidwall/gjson"
)

// firstSet returns the first path in doc whose value is set and not empty,
// zero or false. FACEIT payloads vary in field naming between endpoints and
// API versions, so lookups go through a list of candidates.
func firstSet(doc gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		r := doc.Get(p)
		if isSet(r) {
			return r
		}
	}
	return gjson.Result{}
}

func isSet(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	default:
		return r.Exists()
	}
}

// PlayerID extracts the player id from a /players document.
func PlayerID(raw []byte) string {
	r := firstSet(gjson.ParseBytes(raw), "player_id", "playerId", "id")
	if !r.Exists() {
		return ""
	}
	return r.String()
}

// HistoryItem is the client-facing summary of one history entry. Fields
// missing upstream are omitted.
type HistoryItem struct {
	MatchID    string `json:"match_id,omitempty"`
	Map        any    `json:"map,omitempty"`
	FinishedAt any    `json:"finished_at,omitempty"`
}

// HistoryItems summarizes the items array of a history document. A missing
// or non-array items field yields an empty, non-nil slice.
func HistoryItems(raw []byte) []HistoryItem {
	items := gjson.GetBytes(raw, "items")
	out := []HistoryItem{}
	if !items.IsArray() {
		return out
	}
	items.ForEach(func(_, it gjson.Result) bool {
		var h HistoryItem
		if id := firstSet(it, "match_id", "matchId", "id"); id.Exists() {
			h.MatchID = id.String()
		}
		// "game" comes first to match the payloads clients already consume.
		if m := firstSet(it, "game", "map", "voting.map.pick", "stats.map"); m.Exists() {
			h.Map = m.Value()
		}
		if f := firstSet(it, "finished_at", "date", "started_at"); f.Exists() {
			h.FinishedAt = f.Value()
		}
		out = append(out, h)
		return true
	})
	return out
}

// MatchMap extracts the picked map from a /matches document. The pick is
// read from voting.map.pick (a string, or the first element of an array),
// then rounds.0.round_stats.Map, then map. The value is returned as found;
// callers normalize it.
func MatchMap(raw []byte) (string, bool) {
	doc := gjson.ParseBytes(raw)
	r := firstSet(doc, "voting.map.pick", "rounds.0.round_stats.Map", "map")
	if r.IsArray() {
		r = r.Get("0")
	}
	if r.Type != gjson.String || r.Str == "" {
		return "", false
	}
	return r.Str, true
}
