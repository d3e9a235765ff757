package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqfix/internal/types"
)

func TestPatchManifestUpgradesExistingLine(t *testing.T) {
	manifest := ParseManifest("requirements.txt", "foo==1.0.0\nbar==2.0.0\n")
	result, err := PatchManifest(manifest, map[string]string{"foo@1.0.0": "2.0.0"}, types.FixPhaseUpgrade)
	require.NoError(t, err)

	assert.Equal(t, "foo==2.0.0\nbar==2.0.0\n", result.Manifest.Render())
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "Upgraded foo from 1.0.0 to 2.0.0", result.Changes[0].Message)
	assert.Equal(t, types.FixPhaseUpgrade, result.Changes[0].Phase)
	assert.Equal(t, []string{"foo@1.0.0"}, result.MatchedKeys)
}

func TestPatchManifestUpgradePreservesInlineComment(t *testing.T) {
	manifest := ParseManifest("requirements.txt", "foo==1.0.0  # CVE-2023-0001\n")
	result, err := PatchManifest(manifest, map[string]string{"foo@1.0.0": "2.0.0"}, types.FixPhaseUpgrade)
	require.NoError(t, err)
	assert.Equal(t, "foo==2.0.0  # CVE-2023-0001\n", result.Manifest.Render())
}

func TestPatchManifestUpgradeMatchesNormalizedName(t *testing.T) {
	manifest := ParseManifest("requirements.txt", "Foo_Bar==1.0.0\n")
	result, err := PatchManifest(manifest, map[string]string{"foo.bar@1.0.0": "2.0.0"}, types.FixPhaseUpgrade)
	require.NoError(t, err)
	assert.Equal(t, "Foo_Bar==2.0.0\n", result.Manifest.Render())
}

func TestPatchManifestUpgradeRepinsRangeLine(t *testing.T) {
	manifest := ParseManifest("requirements.txt", "foo>=1.0,<2.0 ; python_version < '3.9'\n")
	result, err := PatchManifest(manifest, map[string]string{"foo@*": "2.1.0"}, types.FixPhaseUpgrade)
	require.NoError(t, err)
	assert.Equal(t, "foo==2.1.0 ; python_version < '3.9'\n", result.Manifest.Render())
}

func TestPatchManifestUpgradeIgnoresNonMatchingRange(t *testing.T) {
	manifest := ParseManifest("requirements.txt", "foo==3.0.0\n")
	result, err := PatchManifest(manifest, map[string]string{"foo@1.0.0": "2.0.0"}, types.FixPhaseUpgrade)
	require.NoError(t, err)
	assert.Empty(t, result.Changes)
	assert.Empty(t, result.MatchedKeys)
	assert.Equal(t, "foo==3.0.0\n", result.Manifest.Render())
}

func TestPatchManifestUpgradeAtTargetMatchesWithoutChange(t *testing.T) {
	manifest := ParseManifest("requirements.txt", "foo==2.0.0\n")
	result, err := PatchManifest(manifest, map[string]string{"foo@*": "2.0.0"}, types.FixPhaseUpgrade)
	require.NoError(t, err)
	assert.Empty(t, result.Changes)
	assert.Equal(t, []string{"foo@*"}, result.MatchedKeys)
}

func TestPatchManifestUpgradeNeverAddsLines(t *testing.T) {
	manifest := ParseManifest("requirements.txt", "foo==1.0.0\n")
	result, err := PatchManifest(manifest, map[string]string{"missing@1.0.0": "2.0.0"}, types.FixPhaseUpgrade)
	require.NoError(t, err)
	assert.Empty(t, result.Changes)
	assert.Equal(t, "foo==1.0.0\n", result.Manifest.Render())
}

func TestPatchManifestPinAppendsMissingLine(t *testing.T) {
	manifest := ParseManifest("requirements.txt", "foo==1.0.0\n")
	result, err := PatchManifest(manifest, map[string]string{"bar@*": "3.1.0"}, types.FixPhasePin)
	require.NoError(t, err)

	assert.Equal(t, "foo==1.0.0\nbar==3.1.0\n", result.Manifest.Render())
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "Pinned bar to 3.1.0", result.Changes[0].Message)
	assert.Equal(t, types.FixPhasePin, result.Changes[0].Phase)
}

func TestPatchManifestPinRewritesExistingLine(t *testing.T) {
	manifest := ParseManifest("requirements.txt", "bar==1.0.0\n")
	result, err := PatchManifest(manifest, map[string]string{"bar@1.0.0": "3.1.0"}, types.FixPhasePin)
	require.NoError(t, err)

	assert.Equal(t, "bar==3.1.0\n", result.Manifest.Render())
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "Pinned bar from 1.0.0 to 3.1.0", result.Changes[0].Message)
}

func TestPatchManifestPinVersionsBareName(t *testing.T) {
	manifest := ParseManifest("requirements.txt", "bar\n")
	result, err := PatchManifest(manifest, map[string]string{"bar@*": "3.1.0"}, types.FixPhasePin)
	require.NoError(t, err)
	assert.Equal(t, "bar==3.1.0\n", result.Manifest.Render())
}

func TestPatchManifestDeterministicAcrossRuns(t *testing.T) {
	manifest := ParseManifest("requirements.txt", "foo==1.0.0\nbar==2.0.0\n")
	changes := map[string]string{
		"foo@1.0.0": "1.5.0",
		"bar@2.0.0": "2.5.0",
		"baz@*":     "0.9.0",
	}
	first, err := PatchManifest(manifest, changes, types.FixPhasePin)
	require.NoError(t, err)
	second, err := PatchManifest(manifest, changes, types.FixPhasePin)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Changes, second.Changes); diff != "" {
		t.Fatalf("change lists differ between runs (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.Manifest.Render(), second.Manifest.Render())
}

func TestPatchManifestRejectsInvalidTargetVersion(t *testing.T) {
	manifest := ParseManifest("requirements.txt", "foo==1.0.0\n")
	_, err := PatchManifest(manifest, map[string]string{"foo@1.0.0": "not-a-version"}, types.FixPhaseUpgrade)
	require.Error(t, err)
}
