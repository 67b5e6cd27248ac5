// Test Type: Unit Test
// Description: Tests for output format names and terminal detection

package ui_test

import (
	"os"
	"testing"

	"github.com/arthur-debert/sfdelta/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	for _, f := range ui.Formats {
		assert.Equal(t, string(f), f.String())
	}
	assert.Equal(t, "unknown", ui.Format("xml").String())
	assert.Equal(t, "unknown", ui.Format("yml").String())
}

func TestParseFormat(t *testing.T) {
	valid := map[string]ui.Format{
		"":         ui.FormatAuto,
		"auto":     ui.FormatAuto,
		"term":     ui.FormatTerminal,
		"TERMINAL": ui.FormatTerminal,
		"plain":    ui.FormatText,
		" text ":   ui.FormatText,
		"Json":     ui.FormatJSON,
		"yml":      ui.FormatYAML,
		"yaml":     ui.FormatYAML,
	}
	for input, expected := range valid {
		format, err := ui.ParseFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, format, input)
	}

	_, err := ui.ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestDetectFormat(t *testing.T) {
	newFile := func(t *testing.T) *os.File {
		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		t.Cleanup(func() { _ = f.Close() })
		return f
	}

	t.Run("NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(newFile(t)))
	})

	t.Run("regular file is not a terminal", func(t *testing.T) {
		assert.Equal(t, ui.FormatText, ui.DetectFormat(newFile(t)))
	})
}
