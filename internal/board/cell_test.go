package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMarker(t *testing.T) {
	for _, m := range []Marker{MarkerNone, MarkerMine, MarkerMaybe} {
		parsed, err := ParseMarker(m.String())
		assert.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := ParseMarker("flag")
	assert.Error(t, err)
}

func TestCellStateStrings(t *testing.T) {
	tests := []struct {
		state CellState
		want  string
	}{
		{Covered{}, " "},
		{Covered{MarkerMine}, "*"},
		{Covered{MarkerMaybe}, "?"},
		{Exposed{MinesNearby: 0}, "0"},
		{Exposed{MinesNearby: 8}, "8"},
		{Exposed{Exploded: true, MinesNearby: 3}, "!"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.state.String())
	}
}
