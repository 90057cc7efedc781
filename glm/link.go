package glm

import (
	"fmt"
	"math"
)

// VecFunc is a function with two float64 array arguments, writing results
// for the first argument into the second.
type VecFunc func([]float64, []float64)

// LinkType is used to specify a GLM link function.
type LinkType uint8

// LogitLink is the canonical link for the binomial family, and the only
// link used by the readmission model.
const (
	LogitLink LinkType = iota
)

// Link specifies a GLM link function.
type Link struct {
	Name string

	TypeCode LinkType

	// Link maps the mean value to the linear predictor.
	Link VecFunc

	// InvLink maps the linear predictor to the mean value.
	InvLink VecFunc

	// Deriv calculates the derivative of the link function.
	Deriv VecFunc
}

// NewLink returns a link function object corresponding to the given type.
func NewLink(link LinkType) *Link {

	switch link {
	case LogitLink:
		return &logitLink
	default:
		msg := fmt.Sprintf("glm: unknown link: %v", link)
		panic(msg)
	}
}

var logitLink = Link{
	Name:     "Logit",
	TypeCode: LogitLink,
	Link:     logitFunc,
	InvLink:  expitFunc,
	Deriv:    logitDerivFunc,
}

func logitFunc(x []float64, y []float64) {
	for i := 0; i < len(x); i++ {
		r := x[i] / (1 - x[i])
		y[i] = math.Log(r)
	}
}

func logitDerivFunc(x []float64, y []float64) {
	for i := 0; i < len(x); i++ {
		y[i] = 1 / (x[i] * (1 - x[i]))
	}
}

func expitFunc(x []float64, y []float64) {
	for i := 0; i < len(x); i++ {
		y[i] = 1 / (1 + math.Exp(-x[i]))
	}
}
