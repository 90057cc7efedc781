package dataset

import "fmt"

// Proportion summarizes the readmission rate within one level of a
// categorical field.
type Proportion struct {

	// The level of the field
	Level string

	// Number of cohort rows at this level
	N int

	// Number of those readmitted within 30 days
	Readmitted int

	// Readmitted / N, or 0 when the level is empty
	Prop float64
}

// Proportions computes the within-30-days readmission proportion for every
// level of the named categorical column (ColInsulin or ColAge), in the
// standard level order.  Levels with no rows are included with a zero
// proportion.
func Proportions(t *Table, col string) ([]Proportion, error) {

	var levels []string
	var vals []string

	switch col {
	case ColInsulin:
		levels = DoseLevels()
		vals = t.Insulin
	case ColAge:
		levels = AgeLevels()
		vals = t.Age
	default:
		return nil, fmt.Errorf("dataset: no categorical column '%s'", col)
	}

	y := Labels(t)

	n := make(map[string]int)
	r := make(map[string]int)
	for i, v := range vals {
		n[v]++
		if y[i] == 1 {
			r[v]++
		}
	}

	props := make([]Proportion, len(levels))
	for j, lev := range levels {
		props[j] = Proportion{Level: lev, N: n[lev], Readmitted: r[lev]}
		if n[lev] > 0 {
			props[j].Prop = float64(r[lev]) / float64(n[lev])
		}
	}

	return props, nil
}
