package ml

import (
	"fmt"
	"math"
)

// eulerGamma is the Euler-Mascheroni constant used in the expected
// path length of an unsuccessful binary search tree lookup.
const eulerGamma = 0.5772156649015329

// IsolationForest scores samples with a fitted ensemble of isolation
// trees. DecisionFunction follows the training pipeline's convention:
// decision = -anomalyScore - offset, with offset normally -0.5, so
// negative results indicate anomalies.
type IsolationForest struct {
	Trees        []IsolationTree `json:"trees"`
	SamplesFit   int             `json:"n_samples"`
	Offset       float64         `json:"offset"`
	FeatureCount int             `json:"n_features"`
}

// IsolationTree is a flat array of nodes; index 0 is the root.
type IsolationTree struct {
	Nodes []TreeNode `json:"nodes"`
}

// TreeNode splits on Feature at Threshold. Feature < 0 marks a leaf;
// Size is the number of training samples that reached the leaf.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Size      int     `json:"size"`
}

// DecisionFunction returns one decision value per input row. Rows with
// shorter-than-average isolation paths come out negative (anomalous).
func (f *IsolationForest) DecisionFunction(features [][]float64) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("model has no trees")
	}

	norm := averagePathLength(float64(f.SamplesFit))
	scores := make([]float64, len(features))
	for i, row := range features {
		var total float64
		for t := range f.Trees {
			depth, err := f.Trees[t].pathLength(row)
			if err != nil {
				return nil, err
			}
			total += depth
		}
		avgDepth := total / float64(len(f.Trees))
		anomaly := math.Exp2(-avgDepth / norm)
		scores[i] = -anomaly - f.Offset
	}
	return scores, nil
}

// pathLength walks one sample from the root to a leaf and returns the
// isolation depth, adjusted by the expected remaining depth of the
// leaf's training population.
func (t *IsolationTree) pathLength(row []float64) (float64, error) {
	idx := 0
	depth := 0.0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, fmt.Errorf("corrupt tree: node index %d out of range", idx)
		}
		node := t.Nodes[idx]
		if node.Feature < 0 {
			return depth + averagePathLength(float64(node.Size)), nil
		}
		if node.Feature >= len(row) {
			return 0, fmt.Errorf("corrupt tree: split feature %d exceeds row width %d", node.Feature, len(row))
		}
		if row[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		depth++
	}
	return 0, fmt.Errorf("corrupt tree: cycle detected")
}

// averagePathLength is c(n): the expected path length of an
// unsuccessful BST search over n samples.
func averagePathLength(n float64) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	default:
		h := math.Log(n-1) + eulerGamma
		return 2*h - 2*(n-1)/n
	}
}

func (f *IsolationForest) validate() error {
	if len(f.Trees) == 0 {
		return fmt.Errorf("model has no trees")
	}
	if f.SamplesFit < 2 {
		return fmt.Errorf("model n_samples must be at least 2, got %d", f.SamplesFit)
	}
	for i, t := range f.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", i)
		}
	}
	return nil
}
