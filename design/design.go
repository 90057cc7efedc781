/*
Package design assembles the numeric design matrix for the readmission
model from the analysis cohort, and partitions it into training and
held-out subsets.

Categorical fields are expanded into indicator columns named in the
name[level] style, with one level per field held out as the reference
category.  The reference levels are fixed a priori in the configuration
rather than inferred from the observed readmission rates, so the model
specification does not depend on the sample.
*/
package design

import (
	"fmt"

	"github.com/eleanorharrisonn/Diabetic-Readmissions/dataset"
	"github.com/eleanorharrisonn/Diabetic-Readmissions/glm"
)

// Yname is the name of the binary outcome column in the built data set.
const Yname = "readmit30"

// Icept is the name of the intercept column.
const Icept = "icept"

// Config selects the reference category for each categorical field.
type Config struct {

	// Reference level for the insulin dosage-change field
	InsulinRef string

	// Reference level for the age bracket field
	AgeRef string
}

// DefaultConfig returns the default design configuration: insulin "No" and
// the first decade bracket as references.
func DefaultConfig() Config {
	return Config{
		InsulinRef: dataset.DoseNo,
		AgeRef:     dataset.AgeLevels()[0],
	}
}

// Build creates the model data set for the given cohort: the binary
// outcome, an intercept, the two count covariates, and indicator columns
// for every non-reference level of the insulin and age fields.
func Build(t *dataset.Table, cfg Config) (glm.Dataset, error) {

	if !containsLevel(dataset.DoseLevels(), cfg.InsulinRef) {
		return glm.Dataset{}, fmt.Errorf("design: unknown insulin reference level '%s'", cfg.InsulinRef)
	}
	if !containsLevel(dataset.AgeLevels(), cfg.AgeRef) {
		return glm.Dataset{}, fmt.Errorf("design: unknown age reference bracket '%s'", cfg.AgeRef)
	}

	n := t.NumRows()
	if n == 0 {
		return glm.Dataset{}, fmt.Errorf("design: empty cohort")
	}

	var data [][]float64
	var names []string

	data = append(data, dataset.Labels(t))
	names = append(names, Yname)

	icept := make([]float64, n)
	for i := range icept {
		icept[i] = 1
	}
	data = append(data, icept)
	names = append(names, Icept)

	data = append(data, t.PriorInpatient)
	names = append(names, dataset.ColPriorInpatient)
	data = append(data, t.TimeInHospital)
	names = append(names, dataset.ColTimeInHospital)

	for _, lev := range dataset.DoseLevels() {
		if lev == cfg.InsulinRef {
			continue
		}
		data = append(data, indicator(t.Insulin, lev))
		names = append(names, fmt.Sprintf("%s[%s]", dataset.ColInsulin, lev))
	}

	for _, lev := range dataset.AgeLevels() {
		if lev == cfg.AgeRef {
			continue
		}
		data = append(data, indicator(t.Age, lev))
		names = append(names, fmt.Sprintf("%s[%s]", dataset.ColAge, lev))
	}

	xnames := names[1:]

	return glm.NewDataset(data, names, Yname, xnames), nil
}

// indicator returns the 0/1 column marking rows equal to the given level.
func indicator(vals []string, level string) []float64 {

	x := make([]float64, len(vals))
	for i, v := range vals {
		if v == level {
			x[i] = 1
		}
	}

	return x
}

func containsLevel(levels []string, v string) bool {
	for _, q := range levels {
		if q == v {
			return true
		}
	}
	return false
}
