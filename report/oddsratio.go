// Package report transforms fitted model results into the deliverables of
// the analysis: odds ratios with Wald confidence intervals, text tables and
// CSV artifacts.
package report

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/eleanorharrisonn/Diabetic-Readmissions/glm"
)

// TermEffect is one model term restated on the odds-ratio scale.
type TermEffect struct {

	// Covariate name
	Term string

	// Coefficient on the log-odds scale
	Coef float64

	// Standard error of the coefficient
	StdErr float64

	// exp(Coef)
	OddsRatio float64

	// Wald confidence bounds for the odds ratio
	Lower float64
	Upper float64
}

// OddsRatios exponentiates the fitted coefficients and attaches Wald
// confidence bounds at the given level, e.g. 0.95.
func OddsRatios(rslt *glm.Results, level float64) ([]TermEffect, error) {

	if level <= 0 || level >= 1 {
		return nil, fmt.Errorf("report: confidence level %v is not in (0, 1)", level)
	}

	z := distuv.UnitNormal.Quantile((1 + level) / 2)

	names := rslt.Names()
	params := rslt.Params()
	se := rslt.StdErr()

	effects := make([]TermEffect, len(params))
	for i := range params {
		effects[i] = TermEffect{
			Term:      names[i],
			Coef:      params[i],
			StdErr:    se[i],
			OddsRatio: math.Exp(params[i]),
			Lower:     math.Exp(params[i] - z*se[i]),
			Upper:     math.Exp(params[i] + z*se[i]),
		}
	}

	return effects, nil
}
