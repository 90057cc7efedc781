package glm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// fitIRLS fits the model by iteratively reweighted least squares.  Each
// iteration solves a weighted least squares problem for an adjusted
// response; at convergence the solution is the maximum likelihood
// estimate.
func (glm *GLM) fitIRLS(start []float64) ([]float64, error) {

	n := glm.data.NumObs()
	nvar := glm.NumParams()

	linpred := make([]float64, n)
	mn := make([]float64, n)
	va := make([]float64, n)
	lderiv := make([]float64, n)
	irlsw := make([]float64, n)
	adjy := make([]float64, n)

	xty := make([]float64, nvar)
	xtx := make([]float64, nvar*nvar)

	var nparam mat.VecDense

	params := make([]float64, nvar)
	copy(params, start)

	xdat := make([][]Dtype, nvar)
	for j, k := range glm.xpos {
		xdat[j] = glm.data.data[k]
	}
	yda := glm.data.data[glm.ypos]

	var dev []float64

	for iter := 0; iter < glm.config.MaxIter; iter++ {

		zero(xtx)
		zero(xty)

		zero(linpred)
		for j := range glm.xpos {
			for i := range linpred {
				linpred[i] += float64(xdat[j][i]) * params[j]
			}
		}

		if iter == 0 {
			glm.startingMu(yda, mn)
		} else {
			glm.link.InvLink(linpred, mn)
			clampProbs(mn)
		}

		glm.link.Deriv(mn, lderiv)
		glm.fam.Var(mn, va)

		devi := glm.fam.Deviance(yda, mn)

		// Weights for WLS
		for i := range yda {
			irlsw[i] = 1 / (lderiv[i] * lderiv[i] * va[i])
		}

		// Adjusted response for WLS
		for i := range yda {
			adjy[i] = linpred[i] + lderiv[i]*(float64(yda[i])-mn[i])
		}

		// Weighted moment matrices
		for j1 := range glm.xpos {

			xda := xdat[j1]
			var u float64
			for i := range adjy {
				u += adjy[i] * float64(xda[i]) * irlsw[i]
			}
			xty[j1] = u

			for j2 := 0; j2 <= j1; j2++ {
				xdb := xdat[j2]
				var u float64
				for i := range xda {
					u += float64(xda[i]*xdb[i]) * irlsw[i]
				}
				xtx[j1*nvar+j2] = u
				xtx[j2*nvar+j1] = u
			}
		}

		// Update the parameters
		xtxm := mat.NewDense(nvar, nvar, xtx)
		xtyv := mat.NewVecDense(nvar, xty)
		if err := nparam.SolveVec(xtxm, xtyv); err != nil {
			return nil, fmt.Errorf("glm: IRLS weighted least squares is singular: %w", err)
		}
		params = nparam.RawVector().Data

		for _, b := range params {
			if math.Abs(b) > glm.config.CoefBound {
				return nil, ErrSeparation
			}
		}

		if glm.config.Log != nil {
			glm.config.Log.Printf("iteration %d: deviance=%.10f\n", iter+1, devi)
		}

		// Check convergence
		dev = append(dev, devi)
		nd := len(dev)
		if nd > 1 && math.Abs(dev[nd-1]-dev[nd-2]) < glm.config.DevianceTol {
			if glm.config.Log != nil {
				glm.config.Log.Print("IRLS converged\n")
			}
			return params, nil
		}
	}

	return nil, ErrNotConverged
}

// startingMu provides an initial mean vector for the IRLS iterations.
func (glm *GLM) startingMu(y []Dtype, mn []float64) {

	for i := range mn {
		mn[i] = (float64(y[i]) + 0.5) / 2
		if mn[i] < 0.1 {
			mn[i] = 0.1
		}
	}
}
