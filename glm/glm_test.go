package glm

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func scalarClose(x, y, eps float64) bool {
	return math.Abs(x-y) <= eps
}

// Intercept-only data with 3 positive outcomes out of 10.  The MLE of the
// intercept is log(0.3/0.7) with standard error sqrt(1/(n*p*(1-p))).
func data1() Dataset {

	y := []float64{1, 1, 1, 0, 0, 0, 0, 0, 0, 0}
	icept := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

	da := [][]float64{y, icept}
	names := []string{"y", "icept"}

	return NewDataset(da, names, "y", []string{"icept"})
}

// A 2x2 contingency table: 4 rows with x=0,y=0; 2 rows with x=0,y=1;
// 1 row with x=1,y=0; 3 rows with x=1,y=1.  The fitted slope is the log
// odds ratio of the table, log(6), and the standard errors follow the
// sum-of-reciprocal-counts formula.
func data2() Dataset {

	y := []float64{0, 0, 0, 0, 1, 1, 0, 1, 1, 1}
	icept := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	x := []float64{0, 0, 0, 0, 0, 0, 1, 1, 1, 1}

	da := [][]float64{y, icept, x}
	names := []string{"y", "icept", "x"}

	return NewDataset(da, names, "y", []string{"icept", "x"})
}

// Perfectly separated data: y = 1 exactly when x = 1.
func data3() Dataset {

	y := []float64{0, 0, 0, 0, 1, 1, 1, 1}
	icept := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	x := []float64{0, 0, 0, 0, 1, 1, 1, 1}

	da := [][]float64{y, icept, x}
	names := []string{"y", "icept", "x"}

	return NewDataset(da, names, "y", []string{"icept", "x"})
}

func TestInterceptOnly(t *testing.T) {

	glm := NewGLM(data1(), nil)
	rslt, err := glm.Fit()
	if err != nil {
		t.Fatal(err)
	}

	coef := math.Log(0.3 / 0.7)
	se := math.Sqrt(1 / (10 * 0.3 * 0.7))

	if !scalarClose(rslt.Params()[0], coef, 1e-6) {
		t.Errorf("intercept: got %v, want %v", rslt.Params()[0], coef)
	}
	if !scalarClose(rslt.StdErr()[0], se, 1e-6) {
		t.Errorf("stderr: got %v, want %v", rslt.StdErr()[0], se)
	}

	ll := 3*math.Log(0.3) + 7*math.Log(0.7)
	if !scalarClose(rslt.LogLike(), ll, 1e-6) {
		t.Errorf("loglike: got %v, want %v", rslt.LogLike(), ll)
	}
	if !scalarClose(rslt.Deviance(), -2*ll, 1e-6) {
		t.Errorf("deviance: got %v, want %v", rslt.Deviance(), -2*ll)
	}
}

func TestTwoByTwo(t *testing.T) {

	glm := NewGLM(data2(), nil)
	rslt, err := glm.Fit()
	if err != nil {
		t.Fatal(err)
	}

	params := []float64{math.Log(0.5), math.Log(6)}
	stderr := []float64{
		math.Sqrt(1.0/4 + 1.0/2),
		math.Sqrt(1.0/4 + 1.0/2 + 1.0/1 + 1.0/3),
	}

	if !floats.EqualApprox(rslt.Params(), params, 1e-6) {
		t.Errorf("params: got %v, want %v", rslt.Params(), params)
	}
	if !floats.EqualApprox(rslt.StdErr(), stderr, 1e-6) {
		t.Errorf("stderr: got %v, want %v", rslt.StdErr(), stderr)
	}

	// Z-scores and p-values follow directly from the estimates.
	for j := range params {
		z := rslt.Params()[j] / rslt.StdErr()[j]
		if !scalarClose(rslt.ZScores()[j], z, 1e-10) {
			t.Errorf("zscore %d: got %v, want %v", j, rslt.ZScores()[j], z)
		}
		p := rslt.PValues()[j]
		if p <= 0 || p >= 1 {
			t.Errorf("pvalue %d out of range: %v", j, p)
		}
	}
}

func TestGradientAgreesWithIRLS(t *testing.T) {

	c := DefaultConfig()
	c.FitMethod = "gradient"

	r1, err := NewGLM(data2(), nil).Fit()
	if err != nil {
		t.Fatal(err)
	}
	r2, err := NewGLM(data2(), c).Fit()
	if err != nil {
		t.Fatal(err)
	}

	if !floats.EqualApprox(r1.Params(), r2.Params(), 1e-4) {
		t.Errorf("IRLS %v and gradient %v disagree", r1.Params(), r2.Params())
	}
}

func TestSeparation(t *testing.T) {

	c := DefaultConfig()
	c.CoefBound = 5

	_, err := NewGLM(data3(), c).Fit()
	if !errors.Is(err, ErrSeparation) {
		t.Errorf("got %v, want ErrSeparation", err)
	}
}

func TestNotConverged(t *testing.T) {

	c := DefaultConfig()
	c.MaxIter = 1

	_, err := NewGLM(data2(), c).Fit()
	if !errors.Is(err, ErrNotConverged) {
		t.Errorf("got %v, want ErrNotConverged", err)
	}
}

func TestNonBinaryOutcome(t *testing.T) {

	y := []float64{0, 1, 2}
	icept := []float64{1, 1, 1}
	ds := NewDataset([][]float64{y, icept}, []string{"y", "icept"}, "y", []string{"icept"})

	_, err := NewGLM(ds, nil).Fit()
	if err == nil {
		t.Error("expected an error for a non-binary outcome")
	}
}

func TestPredict(t *testing.T) {

	glm := NewGLM(data1(), nil)
	rslt, err := glm.Fit()
	if err != nil {
		t.Fatal(err)
	}

	pr, err := rslt.Predict(data1())
	if err != nil {
		t.Fatal(err)
	}

	for i := range pr {
		if !scalarClose(pr[i], 0.3, 1e-6) {
			t.Errorf("prediction %d: got %v, want 0.3", i, pr[i])
		}
	}

	// Re-deriving the predictions is idempotent.
	pr2, err := rslt.Predict(data1())
	if err != nil {
		t.Fatal(err)
	}
	if !floats.Equal(pr, pr2) {
		t.Error("repeated prediction differs")
	}
}

func TestSubset(t *testing.T) {

	ds := data2()
	sub := ds.Subset([]int{0, 4, 6, 9})

	if sub.NumObs() != 4 {
		t.Errorf("subset has %d rows, want 4", sub.NumObs())
	}

	want := []float64{0, 1, 0, 1}
	if !floats.Equal(sub.Y(), want) {
		t.Errorf("subset outcome: got %v, want %v", sub.Y(), want)
	}
}
