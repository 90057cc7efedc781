package eval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfusion(t *testing.T) {

	labels := []float64{1, 0, 1, 0, 0}
	probs := []float64{0.9, 0.8, 0.3, 0.2, 0.5}

	cm, err := Confusion(labels, probs, 0.5)
	require.NoError(t, err)

	assert.Equal(t, ConfusionMatrix{TP: 1, FP: 2, TN: 2, FN: 1}, cm)
	assert.Equal(t, len(labels), cm.Total())
	assert.InDelta(t, 0.6, cm.Accuracy(), 1e-12)

	// The 0.5 prediction is classified positive: the threshold is
	// inclusive.
	cm2, err := Confusion([]float64{0}, []float64{0.5}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1, cm2.FP)

	_, err = Confusion([]float64{1}, []float64{0.5, 0.5}, 0.5)
	assert.Error(t, err)

	// A non-binary label is rejected, not binned into a count.
	_, err = Confusion([]float64{1, 2}, []float64{0.9, 0.9}, 0.5)
	assert.Error(t, err)
}

// A constant predictor gives the random-chance ROC curve.
func TestConstantPredictor(t *testing.T) {

	labels := []float64{1, 0, 1, 0, 0, 0, 1, 0, 0, 0}
	probs := make([]float64, len(labels))
	for i := range probs {
		probs[i] = 0.5
	}

	auc, err := ROCAUC(labels, probs)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, auc, 1e-12)

	// The precision-recall area of a constant predictor is the
	// positive-class prevalence.
	pr, err := PRAUC(labels, probs)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, pr, 1e-12)
}

// Perfectly separated scores give both areas equal to 1.
func TestSeparablePredictor(t *testing.T) {

	labels := []float64{0, 0, 0, 1, 1, 0, 1}
	probs := []float64{0.1, 0.2, 0.3, 0.8, 0.9, 0.25, 0.7}

	auc, err := ROCAUC(labels, probs)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, auc, 1e-12)

	pr, err := PRAUC(labels, probs)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, pr, 1e-12)
}

func TestKnownAreas(t *testing.T) {

	labels := []float64{1, 0, 1, 0}
	probs := []float64{0.9, 0.8, 0.4, 0.2}

	auc, err := ROCAUC(labels, probs)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, auc, 1e-12)

	pr, err := PRAUC(labels, probs)
	require.NoError(t, err)
	assert.InDelta(t, 0.5+1.0/3, pr, 1e-12)
}

func TestDegeneratePartition(t *testing.T) {

	labels := []float64{1, 1, 1}
	probs := []float64{0.2, 0.6, 0.9}

	_, err := ROCAUC(labels, probs)
	assert.True(t, errors.Is(err, ErrDegenerate))

	_, err = PRAUC(labels, probs)
	assert.True(t, errors.Is(err, ErrDegenerate))

	m, err := Evaluate(labels, probs, 0.5)
	require.NoError(t, err)
	assert.False(t, m.Defined)
	assert.InDelta(t, 2.0/3, m.Accuracy, 1e-12)
	assert.Equal(t, 3, m.Confusion.Total())
}

func TestEvaluate(t *testing.T) {

	labels := []float64{1, 0, 1, 0, 0, 0, 1, 0, 0, 0}
	probs := []float64{0.9, 0.1, 0.8, 0.4, 0.3, 0.6, 0.7, 0.2, 0.1, 0.4}

	m, err := Evaluate(labels, probs, 0.5)
	require.NoError(t, err)

	assert.True(t, m.Defined)
	assert.Equal(t, len(labels), m.Confusion.Total())
	assert.GreaterOrEqual(t, m.Accuracy, 0.0)
	assert.LessOrEqual(t, m.Accuracy, 1.0)
	assert.GreaterOrEqual(t, m.ROCAUC, 0.0)
	assert.LessOrEqual(t, m.ROCAUC, 1.0)
	assert.GreaterOrEqual(t, m.PRAUC, 0.0)
	assert.LessOrEqual(t, m.PRAUC, 1.0)

	assert.Equal(t, ConfusionMatrix{TP: 3, FP: 1, TN: 6, FN: 0}, m.Confusion)
	assert.InDelta(t, 0.9, m.Accuracy, 1e-12)
}

func TestBadLabels(t *testing.T) {

	_, err := ROCAUC([]float64{0, 2}, []float64{0.1, 0.2})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrDegenerate))
}
