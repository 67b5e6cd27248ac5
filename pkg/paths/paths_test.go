// Test Type: Unit Test
// Description: Tests for segment splitting and the source/delta layout

package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"forward_slashes", "force-app/main/default/lwc/a/a.js", []string{"force-app", "main", "default", "lwc", "a", "a.js"}},
		{"back_slashes", `force-app\main\default\aura\b\b.cmp`, []string{"force-app", "main", "default", "aura", "b", "b.cmp"}},
		{"mixed_and_redundant", `./force-app//main\default/`, []string{"force-app", "main", "default"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.Split(tt.in))
		})
	}
}

func TestIndexHelpers(t *testing.T) {
	segs := paths.Split("force-app/main/default/mylwc/lwc/cmp/cmp.js")

	assert.Equal(t, 4, paths.Index(segs, "lwc"), "mylwc must not match lwc")
	assert.Equal(t, -1, paths.Index(segs, "aura"))

	i, name := paths.IndexAny(segs, "aura", "lwc", "experiences")
	assert.Equal(t, 4, i)
	assert.Equal(t, "lwc", name)

	assert.True(t, paths.HasPrefix(segs, []string{"force-app", "main"}))
	assert.False(t, paths.HasPrefix(segs, []string{"force"}))
	assert.Equal(t, "force-app/main", paths.Normalize(`force-app\main\`))
}

func TestLayout(t *testing.T) {
	t.Run("default_delta_folder", func(t *testing.T) {
		l, err := paths.NewLayout("/repo", "force-app/", "")
		require.NoError(t, err)

		assert.Equal(t, "force-app", l.Source())
		assert.Equal(t, filepath.Join("/repo", "force-app"), l.SourceDir())
		assert.Equal(t, filepath.Join("/repo", "force-app_delta"), l.DeltaDir())
		assert.Equal(t, filepath.Join("/repo", "force-app_delta", "main", "default", "lwc", "cmp"),
			l.DeltaPath("main/default/lwc/cmp"))
	})

	t.Run("absolute_source_inside_repo", func(t *testing.T) {
		l, err := paths.NewLayout("/repo", "/repo/src/app", "/out/delta")
		require.NoError(t, err)
		assert.Equal(t, "src/app", l.Source())
		assert.Equal(t, "/out/delta", l.DeltaDir())
	})

	t.Run("rel_to_source", func(t *testing.T) {
		l, err := paths.NewLayout("/repo", "force-app", "")
		require.NoError(t, err)

		rel, ok := l.RelToSource("force-app/main/default/classes/A.cls")
		assert.True(t, ok)
		assert.Equal(t, "main/default/classes/A.cls", rel)

		_, ok = l.RelToSource("force-app-other/main/A.cls")
		assert.False(t, ok)
		_, ok = l.RelToSource("scripts/deploy.sh")
		assert.False(t, ok)
		_, ok = l.RelToSource("force-app")
		assert.False(t, ok)
	})

	t.Run("invalid_inputs", func(t *testing.T) {
		_, err := paths.NewLayout("/repo", "", "")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))

		_, err = paths.NewLayout("/repo", "/elsewhere/app", "")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))

		_, err = paths.NewLayout("/repo", "force-app", "force-app")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
	})

	t.Run("delta_inside_source", func(t *testing.T) {
		for _, delta := range []string{"force-app/out", "./force-app/main/../out", "/repo/force-app/deep/out"} {
			_, err := paths.NewLayout("/repo", "force-app", delta)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration), delta)
		}

		// siblings sharing a name prefix are fine
		l, err := paths.NewLayout("/repo", "force-app", "force-app-out")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/repo", "force-app-out"), l.DeltaDir())

		// nor may the delta folder hold the source
		_, err = paths.NewLayout("/repo", "src/force-app", "src")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
	})

	t.Run("dotted_folder_names", func(t *testing.T) {
		l, err := paths.NewLayout("/repo", "/repo/..src", "")
		require.NoError(t, err)
		assert.Equal(t, "..src", l.Source())

		_, err = paths.NewLayout("/repo", "/repo/../src", "")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
	})
}
