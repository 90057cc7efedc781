package dataset

// Cohort returns the binary-classification cohort: the subset of rows whose
// outcome is NO or <30.  Rows readmitted after 30 days are excluded, since
// the model classifies "readmitted within 30 days" against "not
// readmitted".
func Cohort(t *Table) *Table {

	c := new(Table)
	for i := range t.Readmitted {
		if t.Readmitted[i] == ReadmitLate {
			continue
		}
		c.append(t.PriorInpatient[i], t.TimeInHospital[i], t.Insulin[i], t.Age[i], t.Readmitted[i])
	}

	return c
}

// Labels returns the binary outcome vector for a cohort: 1 if the
// encounter led to readmission within 30 days, else 0.
func Labels(t *Table) []float64 {

	y := make([]float64, t.NumRows())
	for i := range t.Readmitted {
		if t.Readmitted[i] == ReadmitEarly {
			y[i] = 1
		}
	}

	return y
}
