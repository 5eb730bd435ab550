package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stumpArtifact builds a single-stump ensemble over two features: margin +2
// when x0 >= 5, margin -2 otherwise.
func stumpArtifact() *Artifact {
	return &Artifact{
		FeatureNames: Schema{"x0", "x1"},
		BaseScore:    0,
		Trees: []Tree{
			{Nodes: []TreeNode{
				{Feature: 0, Threshold: 5, Left: 1, Right: 2},
				{IsLeaf: true, Leaf: -2},
				{IsLeaf: true, Leaf: 2},
			}},
		},
	}
}

func writeArtifact(t *testing.T, art *Artifact) string {
	t.Helper()
	data, err := json.Marshal(art)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoadAndPredict(t *testing.T) {
	booster, err := Load(writeArtifact(t, stumpArtifact()))
	require.NoError(t, err)

	assert.Equal(t, Schema{"x0", "x1"}, booster.Schema())

	low, err := booster.Predict([]float64{1, 0})
	require.NoError(t, err)
	assert.Less(t, low, 0.5)

	high, err := booster.Predict([]float64{9, 0})
	require.NoError(t, err)
	assert.Greater(t, high, 0.5)
}

func TestPredictSplitIsStrictLess(t *testing.T) {
	booster, err := NewBooster(stumpArtifact())
	require.NoError(t, err)

	// Exactly at the threshold routes right.
	p, err := booster.Predict([]float64{5, 0})
	require.NoError(t, err)
	assert.Greater(t, p, 0.5)
}

func TestPredictVectorLengthMismatch(t *testing.T) {
	booster, err := NewBooster(stumpArtifact())
	require.NoError(t, err)

	_, err = booster.Predict([]float64{1})
	assert.ErrorIs(t, err, ErrVectorLength)
}

func TestPredictBaseScoreShiftsMargin(t *testing.T) {
	art := stumpArtifact()
	art.BaseScore = 10

	booster, err := NewBooster(art)
	require.NoError(t, err)

	p, err := booster.Predict([]float64{1, 0})
	require.NoError(t, err)
	// margin 10 - 2 = 8, deep into the positive tail.
	assert.Greater(t, p, 0.99)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, ErrOpenArtifact)
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrDecodeArtifact)
}

func TestArtifactValidate(t *testing.T) {
	noTrees := &Artifact{FeatureNames: Schema{"x0"}}
	assert.ErrorIs(t, noTrees.Validate(), ErrNoTrees)

	emptyTree := &Artifact{FeatureNames: Schema{"x0"}, Trees: []Tree{{}}}
	assert.ErrorIs(t, emptyTree.Validate(), ErrEmptyTree)

	badFeature := stumpArtifact()
	badFeature.Trees[0].Nodes[0].Feature = 7
	assert.ErrorIs(t, badFeature.Validate(), ErrBadFeatureRef)

	badChild := stumpArtifact()
	badChild.Trees[0].Nodes[0].Right = 99
	assert.ErrorIs(t, badChild.Validate(), ErrNodeOutOfRange)

	assert.NoError(t, stumpArtifact().Validate())
}
