package predict

import (
	"context"
	"testing"

	"phishdetect/features/lexical"
	"phishdetect/features/model"
	"phishdetect/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubScorer returns a fixed probability and records whether it was
// consulted at all.
type stubScorer struct {
	probability float64
	called      bool
	gotVector   []float64
}

func (s *stubScorer) Predict(features []float64) (float64, error) {
	s.called = true
	s.gotVector = features
	return s.probability, nil
}

func (s *stubScorer) Schema() model.Schema {
	return lexical.BaselineSchema
}

func TestPredictPhishingVerdict(t *testing.T) {
	ctx, err := utils.Initialize(t)
	require.NoError(t, err)

	scorer := &stubScorer{probability: 0.93}
	service := NewService(scorer)

	prediction, err := service.Predict(ctx, "http://phishy-login.example/verify")
	require.NoError(t, err)

	assert.True(t, scorer.called)
	assert.Len(t, scorer.gotVector, len(lexical.BaselineSchema))
	assert.Equal(t, StatusPhishing, prediction.Status)
	assert.Equal(t, 0.93, prediction.Probability)
}

func TestPredictLegitimateVerdict(t *testing.T) {
	ctx, err := utils.Initialize(t)
	require.NoError(t, err)

	service := NewService(&stubScorer{probability: 0.12})

	prediction, err := service.Predict(ctx, "http://ordinary.example/page")
	require.NoError(t, err)
	assert.Equal(t, StatusLegitimate, prediction.Status)
}

func TestPredictWhitelistSkipsScoring(t *testing.T) {
	ctx, err := utils.Initialize(t)
	require.NoError(t, err)

	scorer := &stubScorer{probability: 0.99}
	service := NewService(scorer)

	prediction, err := service.Predict(ctx, "https://en.wikipedia.org/wiki/Phishing")
	require.NoError(t, err)

	assert.False(t, scorer.called, "whitelisted URL must not reach the model")
	assert.Equal(t, StatusLegitimate, prediction.Status)
	assert.Equal(t, 0.0, prediction.Probability)
}

func TestPredictWhitelistWorksWithoutModel(t *testing.T) {
	ctx, err := utils.Initialize(t)
	require.NoError(t, err)

	service := NewService(nil)

	prediction, err := service.Predict(ctx, "https://github.com/some/repo")
	require.NoError(t, err)
	assert.Equal(t, StatusLegitimate, prediction.Status)
}

func TestPredictModelUnavailable(t *testing.T) {
	ctx, err := utils.Initialize(t)
	require.NoError(t, err)

	service := NewService(nil)
	assert.False(t, service.Ready())

	_, err = service.Predict(ctx, "http://phishy-login.example/verify")
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestPredictEmptyURL(t *testing.T) {
	ctx, err := utils.Initialize(t)
	require.NoError(t, err)

	service := NewService(&stubScorer{})

	_, err = service.Predict(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyURL)
}

func TestLabelThresholdBoundary(t *testing.T) {
	assert.Equal(t, StatusLegitimate, Label(0.5, 0.5), "a tie at the threshold stays legitimate")
	assert.Equal(t, StatusPhishing, Label(0.5000001, 0.5))
	assert.Equal(t, StatusLegitimate, Label(0.0, 0.5))
	assert.Equal(t, StatusPhishing, Label(1.0, 0.5))
}

// riskBooster keys on has_ip, has_suspicious_word and missing https, the
// three strongest lexical signals, so relative ordering of verdicts can be
// asserted end to end.
func riskBooster(t *testing.T) *model.Booster {
	t.Helper()

	stump := func(feature int, below, above float64) model.Tree {
		return model.Tree{Nodes: []model.TreeNode{
			{Feature: feature, Threshold: 0.5, Left: 1, Right: 2},
			{IsLeaf: true, Leaf: below},
			{IsLeaf: true, Leaf: above},
		}}
	}

	schema := lexical.BaselineSchema
	art := &model.Artifact{
		FeatureNames: schema,
		Trees: []model.Tree{
			stump(schema.Index("has_ip"), -1, 1),
			stump(schema.Index("has_suspicious_word"), -1, 1),
			stump(schema.Index("https"), 1, -1),
		},
	}

	booster, err := model.NewBooster(art)
	require.NoError(t, err)
	return booster
}

func TestPredictEndToEndRanking(t *testing.T) {
	ctx, err := utils.Initialize(t)
	require.NoError(t, err)

	service := NewService(riskBooster(t))

	phishy, err := service.Predict(ctx, "http://192.168.1.1/login.php?acct=verify")
	require.NoError(t, err)

	control, err := service.Predict(ctx, "https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, StatusPhishing, phishy.Status)
	assert.Equal(t, StatusLegitimate, control.Status)
	assert.Greater(t, phishy.Probability, control.Probability)
}

func TestPredictContextPassedThrough(t *testing.T) {
	_, err := utils.Initialize(t)
	require.NoError(t, err)

	// Baseline pipeline does no I/O, so even a canceled context scores.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewService(&stubScorer{probability: 0.2})
	prediction, err := service.Predict(ctx, "http://ordinary.example/page")
	require.NoError(t, err)
	assert.Equal(t, StatusLegitimate, prediction.Status)
}
