// Test Type: Unit Test
// Description: Tests for change status parsing and copy unit helpers

package types_test

import (
	"testing"

	"github.com/arthur-debert/sfdelta/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestParseChangeStatus(t *testing.T) {
	tests := []struct {
		code string
		want types.ChangeStatus
	}{
		{"M", types.ChangeModified},
		{"A", types.ChangeAdded},
		{"D", types.ChangeDeleted},
		{"R087", types.ChangeRenamed},
		{"R100", types.ChangeRenamed},
		{"C050", types.ChangeCopied},
		{"T", types.ChangeTypeChanged},
		{"X", types.ChangeUnknown},
		{" ", types.ChangeUnknown},
		{"", types.ChangeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, types.ParseChangeStatus(tt.code))
		})
	}
}

func TestCopyUnitPaths(t *testing.T) {
	unit := types.CopyUnit{
		Root:   "main/default/staticresources/MyRes",
		Kind:   types.KindStaticResourceOrDocument,
		Extras: []string{"main/default/staticresources/MyRes.resource-meta.xml"},
	}

	assert.Equal(t, []string{
		"main/default/staticresources/MyRes",
		"main/default/staticresources/MyRes.resource-meta.xml",
	}, unit.Paths())
	assert.False(t, unit.Excluded())
	assert.True(t, types.CopyUnit{Kind: types.KindExcluded}.Excluded())
}
