package eval

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// checkClasses verifies that both outcome classes are present and that the
// labels are binary.
func checkClasses(labels []float64) error {

	var pos, neg int
	for _, y := range labels {
		switch y {
		case 1:
			pos++
		case 0:
			neg++
		default:
			return fmt.Errorf("eval: label %v is not 0/1", y)
		}
	}
	if pos == 0 || neg == 0 {
		return ErrDegenerate
	}

	return nil
}

// sortByScore returns the scores in ascending order with a parallel slice
// marking the positive rows.
func sortByScore(labels, probs []float64) ([]float64, []bool) {

	idx := make([]int, len(probs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return probs[idx[i]] < probs[idx[j]]
	})

	y := make([]float64, len(probs))
	classes := make([]bool, len(probs))
	for i, j := range idx {
		y[i] = probs[j]
		classes[i] = labels[j] == 1
	}

	return y, classes
}

// ROCAUC returns the area under the receiver operating characteristic
// curve, sweeping the classification threshold over the predicted
// probabilities.
func ROCAUC(labels, probs []float64) (float64, error) {

	if len(labels) != len(probs) {
		return 0, fmt.Errorf("eval: %d labels but %d predictions", len(labels), len(probs))
	}
	if err := checkClasses(labels); err != nil {
		return 0, err
	}

	y, classes := sortByScore(labels, probs)
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)

	// The ROC path is monotone in both coordinates, so ordering the
	// points by (fpr, tpr) ascending recovers the sweep from the (0,0)
	// corner to (1,1) for integration.
	pts := make([][2]float64, len(fpr))
	for i := range fpr {
		pts[i] = [2]float64{fpr[i], tpr[i]}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})
	for i := range pts {
		fpr[i] = pts[i][0]
		tpr[i] = pts[i][1]
	}

	return integrate.Trapezoidal(fpr, tpr), nil
}

// PRAUC returns the area under the precision-recall curve as the
// average-precision step sum: each group of tied scores, visited from the
// highest score down, contributes its recall increment times the precision
// at that point.
func PRAUC(labels, probs []float64) (float64, error) {

	if len(labels) != len(probs) {
		return 0, fmt.Errorf("eval: %d labels but %d predictions", len(labels), len(probs))
	}
	if err := checkClasses(labels); err != nil {
		return 0, err
	}

	y, classes := sortByScore(labels, probs)

	var npos int
	for _, c := range classes {
		if c {
			npos++
		}
	}

	var auc float64
	var tp, fp int
	lastRecall := 0.0

	// Walk from the highest score down, expanding ties together.
	i := len(y) - 1
	for i >= 0 {
		j := i
		for j >= 0 && y[j] == y[i] {
			if classes[j] {
				tp++
			} else {
				fp++
			}
			j--
		}
		i = j

		recall := float64(tp) / float64(npos)
		precision := float64(tp) / float64(tp+fp)
		auc += (recall - lastRecall) * precision
		lastRecall = recall
	}

	return auc, nil
}
