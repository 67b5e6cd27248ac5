// Test Type: Unit Test
// Description: Tests for the delta build flow over an in-memory source tree

package assembler_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/sfdelta/pkg/assembler"
	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/testutil"
	"github.com/arthur-debert/sfdelta/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const def = "force-app/main/default/"

func sampleTree() map[string]string {
	return map[string]string{
		def + "lwc/myComp/myComp.js":                                                      "js",
		def + "lwc/myComp/myComp.html":                                                    "<template/>",
		def + "lwc/myComp/myComp.js-meta.xml":                                             "<meta/>",
		def + "lwc/myComp/__tests__/myComp.test.js":                                       "test",
		def + "staticresources/MyRes/asset.png":                                           "png",
		def + "staticresources/MyRes.resource-meta.xml":                                   "<res/>",
		def + "objectTranslations/Account-en_US/Account-en_US.objectTranslation-meta.xml": "<t/>",
		def + "objectTranslations/Account-en_US/Name__c.fieldTranslation-meta.xml":       "<f/>",
		def + "classes/Foo.cls":                                                           "class Foo {}",
		def + "classes/Foo.cls-meta.xml":                                                  "<meta/>",
		def + "classes/Bar.cls":                                                           "class Bar {}",
	}
}

func newAssembler(t *testing.T, env *testutil.TestEnvironment, diff types.DiffSource, base types.BaselineSource, opts assembler.Options) *assembler.Assembler {
	t.Helper()
	a, err := assembler.New(assembler.Config{
		FileSystem: env.FS,
		Layout:     env.Layout,
		Diff:       diff,
		Baseline:   base,
		Key:        "VBTDeployKey",
		Options:    opts,
	})
	require.NoError(t, err)
	return a
}

func TestRun_NoBaselineCopiesFullTree(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
	env.AddFile("force-app_delta/stale.txt", "left over")
	diff := testutil.NewFakeDiffSource()
	base := testutil.NewAbsentBaseline()

	a := newAssembler(t, env, diff, base, assembler.Options{})
	result, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, assembler.OutcomeFullCopy, result.Outcome)
	assert.Equal(t, env.SourceFiles(), env.DeltaFiles())
	assert.Equal(t, len(sampleTree()), result.FilesCopied)
	assert.Equal(t, 0, diff.Calls, "no diff without a baseline")
	assert.Equal(t, []string{"VBTDeployKey"}, base.Keys)
	assert.Equal(t, assembler.StateDone, a.State())
}

func TestRun_ZeroDiffsCreatesNothing(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
	diff := testutil.NewFakeDiffSource()

	a := newAssembler(t, env, diff, testutil.NewFakeBaseline("abc123"), assembler.Options{ExcludeRenames: true})
	result, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, assembler.OutcomeNoChanges, result.Outcome)
	assert.Equal(t, "abc123", result.Marker)
	assert.False(t, env.DeltaExists())
	assert.Equal(t, "abc123", diff.LastMarker)
	assert.True(t, diff.LastExcludeRenames)
}

func TestRun_DiffCopy(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
	env.AddFile("force-app_delta/stale.txt", "left over")
	diff := testutil.NewFakeDiffSource(
		def+"lwc/myComp/myComp.js",
		def+"staticresources/MyRes/asset.png",
		def+"objectTranslations/Account-en_US/Account-en_US.objectTranslation-meta.xml",
		def+"classes/Foo.cls-meta.xml",
		"README.md",
	)

	a := newAssembler(t, env, diff, testutil.NewFakeBaseline("abc123"), assembler.Options{})
	result, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, assembler.OutcomePackaged, result.Outcome)
	assert.Equal(t, []string{
		"main/default/classes/Foo.cls",
		"main/default/classes/Foo.cls-meta.xml",
		"main/default/lwc/myComp/myComp.html",
		"main/default/lwc/myComp/myComp.js",
		"main/default/lwc/myComp/myComp.js-meta.xml",
		"main/default/objectTranslations/Account-en_US/Account-en_US.objectTranslation-meta.xml",
		"main/default/objectTranslations/Account-en_US/Name__c.fieldTranslation-meta.xml",
		"main/default/staticresources/MyRes.resource-meta.xml",
		"main/default/staticresources/MyRes/asset.png",
	}, env.DeltaFiles(), "old delta removed, units copied whole")

	require.Len(t, result.Units, 5)
	assert.Equal(t, assembler.StatusExcluded, result.Units[4].Status)
	assert.Equal(t, 4, result.Count(assembler.StatusCopied))
	assert.Equal(t, 9, result.FilesCopied)
	assert.NotContains(t, env.DeltaFiles(), "main/default/lwc/myComp/__tests__/myComp.test.js")
	assert.False(t, result.HasFailures())
}

func TestPackage_BundleDedup(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
	a := newAssembler(t, env, testutil.NewFakeDiffSource(), testutil.NewFakeBaseline("abc"), assembler.Options{})

	changes := []types.ChangedPath{
		{Path: def + "lwc/myComp/myComp.js", Status: types.ChangeModified},
		{Path: def + "lwc/myComp/myComp.html", Status: types.ChangeModified},
		{Path: def + "lwc/myComp/myComp.js-meta.xml", Status: types.ChangeModified},
	}
	result, err := a.Package(context.Background(), changes)
	require.NoError(t, err)

	assert.Equal(t, assembler.StatusCopied, result.Units[0].Status)
	assert.Equal(t, assembler.StatusPresent, result.Units[1].Status)
	assert.Equal(t, assembler.StatusPresent, result.Units[2].Status)
	assert.Equal(t, 3, result.FilesCopied, "bundle copied once, without tests")
	assert.Equal(t, []string{"main/default/lwc/myComp"}, a.Copied().Roots())
}

func TestPackage_Idempotent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
	changes := []types.ChangedPath{
		{Path: def + "lwc/myComp/myComp.js", Status: types.ChangeModified},
		{Path: def + "classes/Foo.cls", Status: types.ChangeModified},
	}

	first := newAssembler(t, env, testutil.NewFakeDiffSource(), testutil.NewFakeBaseline("abc"), assembler.Options{})
	_, err := first.Package(context.Background(), changes)
	require.NoError(t, err)
	files := env.DeltaFiles()

	t.Run("same_run", func(t *testing.T) {
		result, err := first.Package(context.Background(), changes)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Count(assembler.StatusPresent))
		assert.Equal(t, 0, result.FilesCopied)
	})

	t.Run("new_run_against_populated_destination", func(t *testing.T) {
		second := newAssembler(t, env, testutil.NewFakeDiffSource(), testutil.NewFakeBaseline("abc"), assembler.Options{})
		result, err := second.Package(context.Background(), changes)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Count(assembler.StatusPresent))
		assert.Equal(t, 0, result.FilesCopied)
		assert.Equal(t, assembler.OutcomePackaged, result.Outcome)
	})

	assert.Equal(t, files, env.DeltaFiles())
}

func TestPackage_DescriptorPairing(t *testing.T) {
	tests := []struct {
		name    string
		changed string
	}{
		{"base_file", def + "classes/Foo.cls"},
		{"descriptor", def + "classes/Foo.cls-meta.xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
			a := newAssembler(t, env, testutil.NewFakeDiffSource(), testutil.NewFakeBaseline("abc"), assembler.Options{})

			_, err := a.Package(context.Background(), []types.ChangedPath{{Path: tt.changed, Status: types.ChangeModified}})
			require.NoError(t, err)
			assert.Equal(t, []string{
				"main/default/classes/Foo.cls",
				"main/default/classes/Foo.cls-meta.xml",
			}, env.DeltaFiles())
		})
	}
}

func TestPackage_LWCTestsNeverCopied(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
	a := newAssembler(t, env, testutil.NewFakeDiffSource(), testutil.NewFakeBaseline("abc"), assembler.Options{})

	result, err := a.Package(context.Background(), []types.ChangedPath{
		{Path: def + "lwc/myComp/__tests__/myComp.test.js", Status: types.ChangeModified},
	})
	require.NoError(t, err)
	assert.Equal(t, assembler.StatusExcluded, result.Units[0].Status)
	assert.Equal(t, assembler.OutcomeNoFilesCopied, result.Outcome)
	assert.False(t, env.DeltaExists())
}

func TestPackage_DeletedPaths(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
	a := newAssembler(t, env, testutil.NewFakeDiffSource(), testutil.NewFakeBaseline("abc"), assembler.Options{})

	result, err := a.Package(context.Background(), []types.ChangedPath{
		{Path: def + "classes/Gone.cls", Status: types.ChangeDeleted},
		{Path: def + "lwc/myComp/removed.css", Status: types.ChangeDeleted},
	})
	require.NoError(t, err)

	assert.Equal(t, assembler.StatusMissing, result.Units[0].Status)
	// the bundle still exists, so it is shipped without the deleted file
	assert.Equal(t, assembler.StatusCopied, result.Units[1].Status)
	assert.Contains(t, env.DeltaFiles(), "main/default/lwc/myComp/myComp.js")
}

func TestPackage_OnlyMissingPathsProduceNothing(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
	a := newAssembler(t, env, testutil.NewFakeDiffSource(), testutil.NewFakeBaseline("abc"), assembler.Options{})

	result, err := a.Package(context.Background(), []types.ChangedPath{
		{Path: def + "classes/Gone.cls", Status: types.ChangeDeleted},
		{Path: "scripts/build.sh", Status: types.ChangeModified},
	})
	require.NoError(t, err)
	assert.Equal(t, assembler.OutcomeNoFilesCopied, result.Outcome)
	assert.False(t, env.DeltaExists())
}

func TestRun_DryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
	env.AddFile("force-app_delta/stale.txt", "left over")
	diff := testutil.NewFakeDiffSource(def+"lwc/myComp/myComp.js", def+"lwc/myComp/myComp.html")

	a := newAssembler(t, env, diff, testutil.NewFakeBaseline("abc"), assembler.Options{DryRun: true})
	result, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, assembler.OutcomePackaged, result.Outcome)
	assert.Equal(t, assembler.StatusCopied, result.Units[0].Status)
	assert.Equal(t, assembler.StatusPresent, result.Units[1].Status)
	assert.Equal(t, []string{"stale.txt"}, env.DeltaFiles(), "nothing written or removed")
}

func TestRun_Errors(t *testing.T) {
	t.Run("empty_baseline", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
		diff := testutil.NewFakeDiffSource()
		a := newAssembler(t, env, diff, testutil.NewFakeBaseline("  "), assembler.Options{})

		_, err := a.Run(context.Background())
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.BaselineEmptyError))
		assert.Equal(t, 0, diff.Calls)
		assert.Equal(t, assembler.StateAborted, a.State())
	})

	t.Run("not_a_repository", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
		diff := testutil.NewFakeDiffSource()
		diff.Repo = false
		a := newAssembler(t, env, diff, testutil.NewFakeBaseline("abc"), assembler.Options{})

		_, err := a.Run(context.Background())
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotARepository))
		assert.Equal(t, 0, diff.Calls)
	})

	t.Run("diff_failure", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
		diff := testutil.NewFakeDiffSource()
		diff.Err = stderrors.New("fatal: bad object abc")
		a := newAssembler(t, env, diff, testutil.NewFakeBaseline("abc"), assembler.Options{})

		_, err := a.Run(context.Background())
		assert.True(t, errors.IsErrorCode(err, errors.ErrDiffRetrieval))
		assert.False(t, env.DeltaExists())
	})

	t.Run("baseline_lookup_failure", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
		base := testutil.NewAbsentBaseline()
		base.Err = stderrors.New("connection refused")
		a := newAssembler(t, env, testutil.NewFakeDiffSource(), base, assembler.Options{})

		_, err := a.Run(context.Background())
		assert.True(t, errors.IsErrorCode(err, errors.ErrBaselineLookup))
		assert.False(t, env.DeltaExists())
	})

	t.Run("missing_source_folder", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, nil)
		require.NoError(t, env.FS.RemoveAll(env.Layout.SourceDir()))
		base := testutil.NewAbsentBaseline()
		a := newAssembler(t, env, testutil.NewFakeDiffSource(), base, assembler.Options{})

		_, err := a.Run(context.Background())
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
		assert.Empty(t, base.Keys, "no lookup before validation")
	})

	t.Run("source_is_a_file", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, nil)
		require.NoError(t, env.FS.RemoveAll(env.Layout.SourceDir()))
		env.AddFile("force-app", "not a folder")
		a := newAssembler(t, env, testutil.NewFakeDiffSource(), testutil.NewAbsentBaseline(), assembler.Options{})

		_, err := a.Run(context.Background())
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
	})

	t.Run("cancelled", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, sampleTree())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		a := newAssembler(t, env, testutil.NewFakeDiffSource(def+"classes/Foo.cls"), testutil.NewFakeBaseline("abc"), assembler.Options{})

		_, err := a.Run(ctx)
		assert.True(t, stderrors.Is(err, context.Canceled))
		assert.False(t, env.DeltaExists())
	})
}

func TestPackage_FailuresAreCollected(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated, sampleTree())
	// a file where the delta bundle folder has to go makes that copy fail
	env.AddFile("force-app_delta/main/default/lwc", "blocker")

	changes := []types.ChangedPath{
		{Path: def + "lwc/myComp/myComp.js", Status: types.ChangeModified},
		{Path: def + "classes/Bar.cls", Status: types.ChangeModified},
	}

	t.Run("lenient", func(t *testing.T) {
		a := newAssembler(t, env, testutil.NewFakeDiffSource(), testutil.NewFakeBaseline("abc"), assembler.Options{})
		result, err := a.Package(context.Background(), changes)
		require.NoError(t, err)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, def+"lwc/myComp/myComp.js", result.Failures[0].Path)
		assert.True(t, errors.IsErrorCode(result.Failures[0].Err, errors.ErrFilesystem))
		assert.Equal(t, assembler.StatusCopied, result.Units[1].Status)
		assert.Equal(t, assembler.OutcomePackaged, result.Outcome)
	})

	t.Run("strict", func(t *testing.T) {
		require.NoError(t, env.FS.RemoveAll(env.Layout.DeltaPath("main/default/classes")))
		a := newAssembler(t, env, testutil.NewFakeDiffSource(), testutil.NewFakeBaseline("abc"), assembler.Options{Strict: true})
		result, err := a.Package(context.Background(), changes)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFilesystem))
		assert.Len(t, result.Units, 1, "processing stops at the first failure")
		assert.Equal(t, assembler.StateAborted, a.State())
	})
}

func TestNew_RequiresLayout(t *testing.T) {
	_, err := assembler.New(assembler.Config{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
}
