/*
Package eval scores the fitted model on the held-out partition.  The
confusion matrix and accuracy use the fixed classification threshold; the
curve areas (ROC-AUC, PR-AUC) sweep all thresholds and do not depend on
it.
*/
package eval

import (
	"errors"
	"fmt"
)

// ErrDegenerate is returned when the held-out partition contains only one
// outcome class, leaving the curve areas undefined.
var ErrDegenerate = errors.New("eval: partition has a single outcome class, curve areas are undefined")

// ConfusionMatrix holds classification counts at a fixed threshold.
type ConfusionMatrix struct {
	TP int
	FP int
	TN int
	FN int
}

// Total returns the number of classified rows.
func (c ConfusionMatrix) Total() int {
	return c.TP + c.FP + c.TN + c.FN
}

// Accuracy returns the fraction of correctly classified rows.
func (c ConfusionMatrix) Accuracy() float64 {
	t := c.Total()
	if t == 0 {
		return 0
	}
	return float64(c.TP+c.TN) / float64(t)
}

// Confusion classifies each row as positive when its predicted probability
// is at least the threshold, and counts agreement with the actual labels.
// The labels must be 0/1.
func Confusion(labels, probs []float64, threshold float64) (ConfusionMatrix, error) {

	if len(labels) != len(probs) {
		return ConfusionMatrix{}, fmt.Errorf("eval: %d labels but %d predictions", len(labels), len(probs))
	}

	var c ConfusionMatrix
	for i := range labels {
		if labels[i] != 0 && labels[i] != 1 {
			return ConfusionMatrix{}, fmt.Errorf("eval: label %v is not 0/1", labels[i])
		}
		pos := probs[i] >= threshold
		switch {
		case pos && labels[i] == 1:
			c.TP++
		case pos:
			c.FP++
		case labels[i] == 1:
			c.FN++
		default:
			c.TN++
		}
	}

	return c, nil
}

// Metrics holds the held-out evaluation results.
type Metrics struct {

	// Confusion counts at the fixed threshold
	Confusion ConfusionMatrix

	// The threshold used for the confusion counts
	Threshold float64

	// Fraction correctly classified
	Accuracy float64

	// Area under the ROC curve; valid only when Defined is true
	ROCAUC float64

	// Area under the precision-recall curve; valid only when Defined
	// is true
	PRAUC float64

	// Defined reports whether the curve areas exist for this partition
	Defined bool
}

// Evaluate computes all held-out metrics.  When the partition contains a
// single outcome class the curve areas are marked undefined rather than
// computed; accuracy and the confusion counts are still returned.
func Evaluate(labels, probs []float64, threshold float64) (*Metrics, error) {

	cm, err := Confusion(labels, probs, threshold)
	if err != nil {
		return nil, err
	}

	m := &Metrics{
		Confusion: cm,
		Threshold: threshold,
		Accuracy:  cm.Accuracy(),
	}

	roc, err := ROCAUC(labels, probs)
	if errors.Is(err, ErrDegenerate) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}

	pr, err := PRAUC(labels, probs)
	if err != nil {
		return nil, err
	}

	m.ROCAUC = roc
	m.PRAUC = pr
	m.Defined = true

	return m, nil
}
