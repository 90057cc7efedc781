package glm

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// ErrNotConverged is returned by Fit when the maximum number of IRLS
// iterations is reached before the deviance stabilizes.
var ErrNotConverged = errors.New("glm: fit did not converge")

// ErrSeparation is returned by Fit when a coefficient diverges beyond the
// configured bound, which is how (quasi-)complete separation of the data
// manifests during fitting.
var ErrSeparation = errors.New("glm: coefficients diverged, data may be separable")

// Config holds settings that control how a model is fit.
type Config struct {

	// FitMethod is either "irls" (default) or "gradient".
	FitMethod string

	// MaxIter is the maximum number of IRLS iterations.
	MaxIter int

	// DevianceTol is the convergence tolerance.  IRLS stops when the
	// change in deviance between successive iterations falls below it.
	DevianceTol float64

	// CoefBound is the largest coefficient magnitude (on the log-odds
	// scale) accepted during fitting.  Exceeding it fails the fit with
	// ErrSeparation.
	CoefBound float64

	// Start holds optional starting values for the coefficients.
	Start []float64

	// If not nil, write per-iteration progress messages here.
	Log *log.Logger
}

// DefaultConfig returns a Config with the default fitting settings.
func DefaultConfig() *Config {
	return &Config{
		FitMethod:   "irls",
		MaxIter:     100,
		DevianceTol: 1e-8,
		CoefBound:   30,
	}
}

// GLM represents a generalized linear model.
type GLM struct {
	data Dataset

	// Positions of the covariates
	xpos []int

	// Position of the outcome variable
	ypos int

	// The GLM family
	fam *Family

	// The GLM link function
	link *Link

	config Config
}

// NewGLM creates a binomial/logit GLM for the given data set.  If config is
// nil the default configuration is used.
func NewGLM(data Dataset, config *Config) *GLM {

	if config == nil {
		config = DefaultConfig()
	}

	glm := &GLM{
		data:   data,
		fam:    NewFamily(BinomialFamily),
		link:   NewLink(LogitLink),
		config: *config,
	}

	glm.findvars()
	glm.check()

	return glm
}

// NumParams returns the number of covariates in the model.
func (glm *GLM) NumParams() int {
	return len(glm.xpos)
}

// NumObs returns the number of observations used to fit the model.
func (glm *GLM) NumObs() int {
	return glm.data.NumObs()
}

// FitMethod returns the name of the fitting method.
func (glm *GLM) FitMethod() string {
	return glm.config.FitMethod
}

// Family returns the model family.
func (glm *GLM) Family() *Family {
	return glm.fam
}

// Link returns the model link function.
func (glm *GLM) Link() *Link {
	return glm.link
}

func (glm *GLM) findvars() {

	glm.ypos = glm.data.pos(glm.data.yname)
	glm.xpos = glm.xpos[0:0]
	for _, na := range glm.data.xnames {
		glm.xpos = append(glm.xpos, glm.data.pos(na))
	}
}

func (glm *GLM) check() {

	method := strings.ToLower(glm.config.FitMethod)
	if method != "irls" && method != "gradient" {
		msg := fmt.Sprintf("glm: fitting method %s not allowed", glm.config.FitMethod)
		panic(msg)
	}
	glm.config.FitMethod = method

	if glm.config.Start != nil && len(glm.config.Start) != len(glm.xpos) {
		msg := fmt.Sprintf("glm: %d starting values for %d covariates",
			len(glm.config.Start), len(glm.xpos))
		panic(msg)
	}
}

// checkLabels confirms that the outcome is binary.  This is a property of
// the data, not of the model configuration, so it is an error rather than
// a panic.
func (glm *GLM) checkLabels() error {

	y := glm.data.data[glm.ypos]
	for i := range y {
		if y[i] != 0 && y[i] != 1 {
			return fmt.Errorf("glm: outcome '%s' is not 0/1 at row %d (value %v)",
				glm.data.yname, i, y[i])
		}
	}

	return nil
}

// linpred computes the linear predictor at the given coefficients, writing
// the result into lp.
func (glm *GLM) linpred(coeff []float64, lp []float64) {

	zero(lp)
	for j, k := range glm.xpos {
		floats.AddScaled(lp, coeff[j], glm.data.data[k])
	}
}

// LogLike returns the log-likelihood value for the model at the given
// coefficient values.
func (glm *GLM) LogLike(coeff []float64) float64 {

	n := glm.data.NumObs()
	lp := make([]float64, n)
	mn := make([]float64, n)

	glm.linpred(coeff, lp)
	glm.link.InvLink(lp, mn)
	clampProbs(mn)

	return glm.fam.LogLike(glm.data.data[glm.ypos], mn)
}

// Score computes the score vector for the model at the given coefficient
// values, writing the result into score.
func (glm *GLM) Score(coeff []float64, score []float64) {

	n := glm.data.NumObs()
	lp := make([]float64, n)
	mn := make([]float64, n)
	deriv := make([]float64, n)
	va := make([]float64, n)
	fac := make([]float64, n)

	glm.linpred(coeff, lp)
	glm.link.InvLink(lp, mn)
	clampProbs(mn)
	glm.link.Deriv(mn, deriv)
	glm.fam.Var(mn, va)

	yda := glm.data.data[glm.ypos]
	for i := range yda {
		fac[i] = (float64(yda[i]) - mn[i]) / (deriv[i] * va[i])
	}

	zero(score)
	for j, k := range glm.xpos {
		score[j] = floats.Dot(fac, glm.data.data[k])
	}
}

// Hessian computes the expected Hessian matrix of the log-likelihood at
// the given coefficient values.  The matrix is written into hess in
// vectorized form.
func (glm *GLM) Hessian(coeff []float64, hess []float64) {

	n := glm.data.NumObs()
	nvar := glm.NumParams()
	lp := make([]float64, n)
	mn := make([]float64, n)
	deriv := make([]float64, n)
	va := make([]float64, n)
	fac := make([]float64, n)

	glm.linpred(coeff, lp)
	glm.link.InvLink(lp, mn)
	clampProbs(mn)
	glm.link.Deriv(mn, deriv)
	glm.fam.Var(mn, va)

	for i := range fac {
		fac[i] = 1 / (deriv[i] * deriv[i] * va[i])
	}

	zero(hess)
	for j1 := range glm.xpos {
		x1 := glm.data.data[glm.xpos[j1]]
		for j2 := 0; j2 <= j1; j2++ {
			x2 := glm.data.data[glm.xpos[j2]]
			var u float64
			for i := range x1 {
				u -= fac[i] * x1[i] * x2[i]
			}
			hess[j1*nvar+j2] = u
			hess[j2*nvar+j1] = u
		}
	}
}

// Fit estimates the model coefficients and returns a results value.
func (glm *GLM) Fit() (*Results, error) {

	if err := glm.checkLabels(); err != nil {
		return nil, err
	}

	nvar := glm.NumParams()

	start := make([]float64, nvar)
	if glm.config.Start != nil {
		copy(start, glm.config.Start)
	}

	var params []float64
	var err error

	if glm.config.FitMethod == "gradient" {
		params, err = glm.fitGradient(start)
	} else {
		params, err = glm.fitIRLS(start)
	}
	if err != nil {
		return nil, err
	}

	vcov, err := glm.vcov(params)
	if err != nil {
		return nil, err
	}

	ll := glm.LogLike(params)
	dev := glm.deviance(params)

	return &Results{
		model:    glm,
		loglike:  ll,
		deviance: dev,
		params:   params,
		xnames:   glm.data.xnames,
		vcov:     vcov,
	}, nil
}

// deviance returns the model deviance at the given coefficient values.
func (glm *GLM) deviance(coeff []float64) float64 {

	n := glm.data.NumObs()
	lp := make([]float64, n)
	mn := make([]float64, n)

	glm.linpred(coeff, lp)
	glm.link.InvLink(lp, mn)
	clampProbs(mn)

	return glm.fam.Deviance(glm.data.data[glm.ypos], mn)
}

// fitGradient uses gradient-based optimization to obtain the fitted
// coefficients.
func (glm *GLM) fitGradient(start []float64) ([]float64, error) {

	p := optimize.Problem{
		Func: func(x []float64) float64 {
			return -glm.LogLike(x)
		},
		Grad: func(grad, x []float64) {
			glm.Score(x, grad)
			floats.Scale(-1, grad)
		},
	}

	settings := &optimize.Settings{
		GradientThreshold: 1e-6,
	}

	optrslt, err := optimize.Minimize(p, start, settings, &optimize.BFGS{})
	if err != nil {
		return nil, fmt.Errorf("glm: gradient optimization failed: %w", err)
	}
	if err := optrslt.Status.Err(); err != nil {
		return nil, fmt.Errorf("glm: gradient optimization failed: %w", err)
	}

	params := make([]float64, len(optrslt.X))
	copy(params, optrslt.X)

	for _, b := range params {
		if math.Abs(b) > glm.config.CoefBound {
			return nil, ErrSeparation
		}
	}

	return params, nil
}

// clampProbs restricts fitted probabilities to the open unit interval so
// that the likelihood and IRLS weights stay finite when the linear
// predictor is extreme.
func clampProbs(mn []float64) {
	const eps = 1e-10
	for i := range mn {
		if mn[i] < eps {
			mn[i] = eps
		} else if mn[i] > 1-eps {
			mn[i] = 1 - eps
		}
	}
}

// zero sets all elements of the slice to 0.
func zero(x []float64) {
	for i := range x {
		x[i] = 0
	}
}
