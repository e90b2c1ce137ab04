package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"de_dust2":   "dust2",
		"DE_Mirage":  "mirage",
		" inferno ":  "inferno",
		"nuke":       "nuke",
		"cs_office":  "cs_office",
		"":           "",
		"de_de_nuke": "de_nuke",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("de_anubis"))
	assert.True(t, IsKnown("Vertigo"))
	assert.False(t, IsKnown("cobblestone"))
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"dust 2", "dust2", true},
		{"mirag", "mirage", true},
		{"infero", "inferno", true},
		{"de_nuk", "nuke", true},
		{"overpas", "overpass", true},
		{"mirage", "", false}, // already known
		{"cobblestone", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Suggest(tt.in)
		assert.Equal(t, tt.ok, ok, "Suggest(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Suggest(%q)", tt.in)
	}
}
