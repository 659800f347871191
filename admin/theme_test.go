package admin

import (
	"bytes"
	"path/filepath"
	"testing"

	"catalog/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeView(t *testing.T) {
	store := client.NewThemeStore(client.NewFileStorage(filepath.Join(t.TempDir(), "state.json")))
	_, err := store.Init()
	require.NoError(t, err)

	var out bytes.Buffer
	c := New(nil, &out, NewPalette(store.Theme(), true))

	require.NoError(t, c.Theme(store, false, true))
	assert.Equal(t, "Theme: light\n", out.String())
	out.Reset()

	require.NoError(t, c.Theme(store, true, true))
	assert.Equal(t, "Theme: "+ansiBold+ansiCyan+"dark"+ansiReset+"\n", out.String())
	assert.True(t, store.IsDark())
}

func TestPalette(t *testing.T) {
	testCases := []struct {
		name     string
		theme    client.Theme
		terminal bool
		colored  bool
	}{
		{name: "DarkTerminal", theme: client.Dark, terminal: true, colored: true},
		{name: "DarkPipe", theme: client.Dark, terminal: false, colored: false},
		{name: "LightTerminal", theme: client.Light, terminal: true, colored: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewPalette(tc.theme, tc.terminal).Error("boom")
			if tc.colored {
				assert.Equal(t, ansiRed+"boom"+ansiReset, got)
			} else {
				assert.Equal(t, "boom", got)
			}
		})
	}
}

func TestTableAlignsWideRunes(t *testing.T) {
	tbl := newTable("NAME", "QTY")
	tbl.add("电视机", "1")
	tbl.add("TV", "22")
	tbl.add("a very long product name that will not fit", "3")

	var out bytes.Buffer
	tbl.render(&out, Palette{})

	lines := bytes.Split(bytes.TrimRight(out.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Equal(t, "NAME                              QTY", string(lines[0]))
	assert.Equal(t, "电视机                            1", string(lines[1]))
	assert.Equal(t, "TV                                22", string(lines[2]))
	assert.Equal(t, "a very long product name that w…  3", string(lines[3]))
}
