package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultCase(t *testing.T) {
	c, err := DefaultCase()
	require.NoError(t, err)

	assert.Equal(t, "mansion", c.ShortName)
	assert.Equal(t, "Hall de Entrada", c.EntranceName())
	assert.Len(t, c.Rooms, 9)
	assert.Len(t, c.Links, 8)
}

func TestCaseYAML(t *testing.T) {
	c := &Case{
		Title: "Small",
		Rooms: []RoomSpec{
			{Name: "Hall", Clue: "A", Left: "Sala", Right: "Cozinha"},
			{Name: "Sala", Left: "Biblioteca", Right: "Jardim"},
			{Name: "Cozinha"},
			{Name: "Biblioteca", Clue: "A"},
			{Name: "Jardim"},
		},
		Links: []LinkSpec{{Clue: "A", Suspect: "Suspect1"}},
	}

	data, err := yaml.Marshal(c)
	require.NoError(t, err)

	c2, err := ParseCase(data)
	require.NoError(t, err)
	assert.Equal(t, c, c2)
	assert.Equal(t, "Hall", c2.EntranceName())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		c    Case
	}{
		{"no rooms", Case{}},
		{"unnamed room", Case{Rooms: []RoomSpec{{Name: ""}}}},
		{"duplicate room", Case{Rooms: []RoomSpec{{Name: "A", Left: "B"}, {Name: "B"}, {Name: "B"}}}},
		{"unknown entrance", Case{Entrance: "Z", Rooms: []RoomSpec{{Name: "A"}}}},
		{"unknown child", Case{Rooms: []RoomSpec{{Name: "A", Left: "Z"}}}},
		{"entrance as child", Case{Rooms: []RoomSpec{{Name: "A", Left: "B"}, {Name: "B", Right: "A"}}}},
		{"two parents", Case{Rooms: []RoomSpec{{Name: "A", Left: "B", Right: "C"}, {Name: "B", Left: "C"}, {Name: "C"}}}},
		{"unreachable", Case{Rooms: []RoomSpec{{Name: "A"}, {Name: "B"}}}},
		{"detached cycle", Case{Rooms: []RoomSpec{{Name: "A"}, {Name: "B", Left: "C"}, {Name: "C", Left: "B"}}}},
		{"empty link", Case{Rooms: []RoomSpec{{Name: "A"}}, Links: []LinkSpec{{Clue: "x"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.c.Validate(), ErrInvalidCase)
		})
	}
}

func TestSaveLoadAndList(t *testing.T) {
	dir := t.TempDir()
	c, err := DefaultCase()
	require.NoError(t, err)

	require.NoError(t, c.Save(filepath.Join(dir, "mansion.yaml")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("rooms: []\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0644))

	loaded, err := LoadCase(filepath.Join(dir, "mansion.yaml"))
	require.NoError(t, err)
	assert.Equal(t, c, loaded)

	names, err := ListCases(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"mansion.yaml"}, names)

	names, err = ListCases(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLoadCaseEmptyPathIsDefault(t *testing.T) {
	c, err := LoadCase("")
	require.NoError(t, err)
	assert.Equal(t, "mansion", c.ShortName)
}
