// Package maps normalizes CS2 map names as reported by FACEIT and suggests
// corrections for likely typos.
package maps

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Known lists the map ids the service recognizes, already normalized.
var Known = []string{
	"ancient",
	"anubis",
	"dust2",
	"inferno",
	"mirage",
	"nuke",
	"overpass",
	"train",
	"vertigo",
}

// Normalize lower-cases a map name and strips the "de_" prefix, so
// "de_Dust2" becomes "dust2".
func Normalize(raw string) string {
	m := strings.ToLower(strings.TrimSpace(raw))
	return strings.TrimPrefix(m, "de_")
}

// IsKnown reports whether name (after normalization) is in Known.
func IsKnown(name string) bool {
	n := Normalize(name)
	for _, k := range Known {
		if k == n {
			return true
		}
	}
	return false
}

// Suggest returns the closest known map to name when name is not known but
// is within a small edit distance of one. Ties break alphabetically.
func Suggest(name string) (string, bool) {
	n := Normalize(name)
	if n == "" || IsKnown(n) {
		return "", false
	}
	type cand struct {
		name string
		dist int
	}
	var cands []cand
	for _, k := range Known {
		d := levenshtein.ComputeDistance(n, k)
		if d > distanceLimit(len(k)) {
			continue
		}
		cands = append(cands, cand{k, d})
	}
	if len(cands) == 0 {
		return "", false
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].name < cands[j].name
		}
		return cands[i].dist < cands[j].dist
	})
	return cands[0].name, true
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 7:
		return 2
	default:
		return 3
	}
}
