package testutil

import (
	"context"

	"github.com/arthur-debert/sfdelta/pkg/types"
)

// FakeDiffSource is a scripted types.DiffSource
type FakeDiffSource struct {
	Repo    bool
	Changes []types.ChangedPath
	Err     error

	Calls              int
	LastMarker         string
	LastExcludeRenames bool
}

// NewFakeDiffSource returns a repository reporting the given paths as modified
func NewFakeDiffSource(changed ...string) *FakeDiffSource {
	d := &FakeDiffSource{Repo: true}
	for _, p := range changed {
		d.Changes = append(d.Changes, types.ChangedPath{Path: p, Status: types.ChangeModified})
	}
	return d
}

func (d *FakeDiffSource) IsRepository(context.Context) bool {
	return d.Repo
}

func (d *FakeDiffSource) Diff(_ context.Context, marker string, excludeRenames bool) ([]types.ChangedPath, error) {
	d.Calls++
	d.LastMarker = marker
	d.LastExcludeRenames = excludeRenames
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Changes, nil
}

// FakeBaseline is a scripted types.BaselineSource
type FakeBaseline struct {
	Value string
	Found bool
	Err   error

	Keys []string
}

// NewFakeBaseline returns a source holding a recorded marker
func NewFakeBaseline(value string) *FakeBaseline {
	return &FakeBaseline{Value: value, Found: true}
}

// NewAbsentBaseline returns a source with no record
func NewAbsentBaseline() *FakeBaseline {
	return &FakeBaseline{}
}

func (b *FakeBaseline) Lookup(_ context.Context, key string) (string, bool, error) {
	b.Keys = append(b.Keys, key)
	if b.Err != nil {
		return "", false, b.Err
	}
	return b.Value, b.Found, nil
}
