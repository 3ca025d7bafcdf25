package tilemap_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plus3/arcade/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallLevel = `
name = "small"
width = 4
height = 3
tile_size = 0.5
solid = [1]
rows = [
  "....",
  ".c..",
  "####",
]

[legend]
"." = 0
"c" = 0
"#" = 1

[[spawn]]
kind = "player"
col = 0
row = 1

[[spawn]]
kind = "coin"
col = 1
row = 1
`

func TestParseLevel(t *testing.T) {
	level, err := tilemap.ParseLevel([]byte(smallLevel))
	require.NoError(t, err)

	assert.Equal(t, "small", level.Name)
	assert.Equal(t, 4, level.Map.Width)
	assert.Equal(t, 3, level.Map.Height)
	assert.Equal(t, float32(0.5), level.Map.TileSize)
	assert.True(t, level.Map.IsSolid(2, 2))
	assert.False(t, level.Map.IsSolid(2, 1))

	require.Len(t, level.Spawns, 2)
	assert.Equal(t, tilemap.Spawn{Kind: tilemap.SpawnPlayer, Col: 0, Row: 1}, level.Spawns[0])
	assert.Len(t, level.SpawnsOf(tilemap.SpawnCoin), 1)
	assert.Empty(t, level.SpawnsOf(tilemap.SpawnEnemy))
}

func TestLoadLevel(t *testing.T) {
	level, err := tilemap.LoadLevel(strings.NewReader(smallLevel))
	require.NoError(t, err)
	assert.Len(t, level.Spawns, 2)

	path := filepath.Join(t.TempDir(), "level.toml")
	require.NoError(t, os.WriteFile(path, []byte(smallLevel), 0o644))
	level, err = tilemap.LoadLevelFile(path)
	require.NoError(t, err)
	assert.Equal(t, "small", level.Name)

	_, err = tilemap.LoadLevelFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestParseLevelRejectsBadGrids(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
	}{
		{"row count", `"####",`, ``},
		{"row width", `"####",`, `"#####",`},
		{"unknown tile", `".c..",`, `".x..",`},
		{"spawn kind", `kind = "coin"`, `kind = "boss"`},
		{"spawn outside", "col = 1\nrow = 1", "col = 9\nrow = 1"},
		{"unknown key", `name = "small"`, "name = \"small\"\ngravity = 3"},
		{"long legend key", `"c" = 0`, `"cc" = 0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(smallLevel, tt.from, tt.to, 1)
			require.NotEqual(t, smallLevel, doc)
			_, err := tilemap.ParseLevel([]byte(doc))
			assert.ErrorIs(t, err, tilemap.ErrBadLevel)
		})
	}

	_, err := tilemap.ParseLevel([]byte("width = "))
	assert.Error(t, err)
}
