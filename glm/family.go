package glm

import (
	"fmt"
	"math"
)

// FamilyType is the type of GLM family used in a model.
type FamilyType uint8

// BinomialFamily is the family for a binary outcome.  The readmission
// model uses only the binomial family; the family table exists so that
// another family is a data addition rather than a redesign.
const (
	BinomialFamily FamilyType = iota
)

// LogLikeFunc evaluates and returns the log-likelihood for a GLM.  The
// arguments are the outcome data and the fitted mean values.
type LogLikeFunc func([]Dtype, []float64) float64

// DevianceFunc evaluates and returns the deviance for a GLM.  The arguments
// are the outcome data and the fitted mean values.
type DevianceFunc func([]Dtype, []float64) float64

// Family represents a generalized linear model family.
type Family struct {

	// The name of the family
	Name string

	// The numeric code for the family
	TypeCode FamilyType

	// The log-likelihood function for the family
	LogLike LogLikeFunc

	// The deviance function for the family
	Deviance DevianceFunc

	// Var calculates the variance as a function of the mean.
	Var VecFunc

	// The names of valid links for this family.  The first listed link
	// is the canonical link.
	validLinks []LinkType
}

// NewFamily returns a family object corresponding to the given type.
func NewFamily(fam FamilyType) *Family {

	switch fam {
	case BinomialFamily:
		return &binomial
	default:
		msg := fmt.Sprintf("glm: unknown family: %v", fam)
		panic(msg)
	}
}

var binomial = Family{
	Name:       "Binomial",
	TypeCode:   BinomialFamily,
	LogLike:    binomialLogLike,
	Deviance:   binomialDeviance,
	Var:        binomialVar,
	validLinks: []LinkType{LogitLink},
}

// IsValidLink returns true if the link is valid for the family.
func (fam *Family) IsValidLink(link *Link) bool {

	for _, q := range fam.validLinks {
		if link.TypeCode == q {
			return true
		}
	}

	return false
}

func binomialLogLike(y []Dtype, mn []float64) float64 {
	var ll float64
	for i := range y {
		r := mn[i]/(1-mn[i]) + 1e-200
		ll += float64(y[i])*math.Log(r) + math.Log(1-mn[i])
	}
	return ll
}

func binomialDeviance(y []Dtype, mn []float64) float64 {

	var dev float64
	for i := range y {
		dev -= 2 * (float64(y[i])*math.Log(mn[i]) + (1-float64(y[i]))*math.Log(1-mn[i]))
	}

	return dev
}

func binomialVar(mn []float64, va []float64) {
	for i := range mn {
		va[i] = mn[i] * (1 - mn[i])
	}
}
