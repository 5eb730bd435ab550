package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog/log"
)

// Booster errors
var (
	ErrOpenArtifact   = errors.New("failed to open model artifact")
	ErrDecodeArtifact = errors.New("failed to decode model artifact")
	ErrNoTrees        = errors.New("model artifact contains no trees")
	ErrEmptyTree      = errors.New("model tree has no nodes")
	ErrNodeOutOfRange = errors.New("model tree references a node out of range")
	ErrBadFeatureRef  = errors.New("model tree references a feature outside the schema")
	ErrVectorLength   = errors.New("feature vector length does not match model schema")
)

// TreeNode is a single split or leaf of one boosted tree. Internal nodes
// route left when feature < threshold.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      float64 `json:"leaf"`
	IsLeaf    bool    `json:"is_leaf"`
}

// Tree is one member of the boosted ensemble, nodes indexed from the root
// at position 0.
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t *Tree) walk(features []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.IsLeaf {
			return n.Leaf
		}
		if features[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Artifact is the serialized trained model: the ordered feature schema it
// was fit against, the base margin, and the tree ensemble. The schema
// travels with the weights so serving code can never drift from training
// column order.
type Artifact struct {
	FeatureNames Schema  `json:"feature_names"`
	BaseScore    float64 `json:"base_score"`
	Trees        []Tree  `json:"trees"`
}

func (a *Artifact) Validate() error {
	if err := a.FeatureNames.Validate(); err != nil {
		return err
	}
	if len(a.Trees) == 0 {
		return ErrNoTrees
	}

	for ti, tree := range a.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("%w: tree %d", ErrEmptyTree, ti)
		}
		for ni, node := range tree.Nodes {
			if node.IsLeaf {
				continue
			}
			if node.Feature < 0 || node.Feature >= len(a.FeatureNames) {
				return fmt.Errorf("%w: tree %d node %d feature %d", ErrBadFeatureRef, ti, ni, node.Feature)
			}
			if node.Left < 0 || node.Left >= len(tree.Nodes) ||
				node.Right < 0 || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("%w: tree %d node %d", ErrNodeOutOfRange, ti, ni)
			}
		}
	}

	return nil
}

// Booster is the process-wide scorer handle. It is immutable after Load and
// safe for concurrent use by every request worker without locking.
type Booster struct {
	art *Artifact
}

// NewBooster validates an artifact and wraps it as a scorer.
func NewBooster(art *Artifact) (*Booster, error) {
	if err := art.Validate(); err != nil {
		return nil, err
	}
	return &Booster{art: art}, nil
}

// Load reads and validates the model artifact once at process start.
func Load(path string) (*Booster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrOpenArtifact, err)
	}

	art := &Artifact{}
	if err := json.Unmarshal(data, art); err != nil {
		return nil, errors.Join(ErrDecodeArtifact, err)
	}

	booster, err := NewBooster(art)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("path", path).
		Int("trees", len(art.Trees)).
		Int("features", len(art.FeatureNames)).
		Msg("Model artifact loaded")

	return booster, nil
}

// Schema returns the trained feature column order.
func (b *Booster) Schema() Schema {
	return b.art.FeatureNames
}

// Predict scores a vector already in schema order and returns the phishing
// probability in [0,1]: summed tree margins pushed through the logistic
// function.
func (b *Booster) Predict(features []float64) (float64, error) {
	if len(features) != len(b.art.FeatureNames) {
		return 0, fmt.Errorf("%w: got %d, want %d",
			ErrVectorLength, len(features), len(b.art.FeatureNames))
	}

	margin := b.art.BaseScore
	for i := range b.art.Trees {
		margin += b.art.Trees[i].walk(features)
	}

	return sigmoid(margin), nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
