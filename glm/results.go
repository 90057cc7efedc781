package glm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Results contains the results of fitting a model to data.
type Results struct {
	model    *GLM
	loglike  float64
	deviance float64
	params   []float64
	xnames   []string
	vcov     []float64
	stderr   []float64
	zscores  []float64
	pvalues  []float64
}

// Model returns the model that was fit to produce the results.
func (rslt *Results) Model() *GLM {
	return rslt.model
}

// Names returns the covariate names for the variables in the model.
func (rslt *Results) Names() []string {
	return rslt.xnames
}

// Params returns the point estimates for the coefficients in the model.
// The coefficients are on the log-odds scale.
func (rslt *Results) Params() []float64 {
	return rslt.params
}

// VCov returns the sampling variance/covariance matrix for the coefficient
// estimates, vectorized to one dimension.
func (rslt *Results) VCov() []float64 {
	return rslt.vcov
}

// LogLike returns the log-likelihood of the fitted model.
func (rslt *Results) LogLike() float64 {
	return rslt.loglike
}

// Deviance returns the deviance of the fitted model.
func (rslt *Results) Deviance() float64 {
	return rslt.deviance
}

// StdErr returns the standard errors for the coefficients in the model.
func (rslt *Results) StdErr() []float64 {

	p := len(rslt.params)
	if rslt.stderr != nil {
		return rslt.stderr
	}
	rslt.stderr = make([]float64, p)

	for i := range rslt.stderr {
		rslt.stderr[i] = math.Sqrt(rslt.vcov[i*p+i])
	}

	return rslt.stderr
}

// ZScores returns the Z-scores (the coefficient estimates divided by their
// standard errors).
func (rslt *Results) ZScores() []float64 {

	if rslt.zscores != nil {
		return rslt.zscores
	}
	rslt.zscores = make([]float64, len(rslt.params))

	std := rslt.StdErr()
	for i := range std {
		rslt.zscores[i] = rslt.params[i] / std[i]
	}

	return rslt.zscores
}

func normcdf(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt(2))
}

// PValues returns the p-values for the null hypothesis that each
// coefficient's population value is equal to zero.
func (rslt *Results) PValues() []float64 {

	if rslt.pvalues != nil {
		return rslt.pvalues
	}
	rslt.pvalues = make([]float64, len(rslt.params))

	for i, z := range rslt.ZScores() {
		rslt.pvalues[i] = 2 * normcdf(-math.Abs(z))
	}

	return rslt.pvalues
}

// Predict returns the predicted outcome probability for every row of the
// given data set, which must contain all covariate columns of the fitted
// model.
func (rslt *Results) Predict(data Dataset) ([]float64, error) {

	for _, na := range rslt.xnames {
		found := false
		for _, nb := range data.names {
			if na == nb {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("glm: predict: variable '%s' not present in data", na)
		}
	}

	n := data.NumObs()
	lp := make([]float64, n)
	for j, na := range rslt.xnames {
		col := data.Col(na)
		for i := range col {
			lp[i] += rslt.params[j] * float64(col[i])
		}
	}

	pr := make([]float64, n)
	rslt.model.link.InvLink(lp, pr)

	return pr, nil
}

// vcov computes the sampling variance/covariance matrix of the coefficient
// estimates as the inverse of the negative expected Hessian.
func (glm *GLM) vcov(params []float64) ([]float64, error) {

	nvar := glm.NumParams()
	hess := make([]float64, nvar*nvar)
	glm.Hessian(params, hess)

	hmat := mat.NewDense(nvar, nvar, hess)
	hessi := make([]float64, nvar*nvar)
	himat := mat.NewDense(nvar, nvar, hessi)

	if err := himat.Inverse(hmat); err != nil {
		return nil, fmt.Errorf("glm: can't invert Hessian: %w", err)
	}
	himat.Scale(-1, himat)

	return hessi, nil
}
