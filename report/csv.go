package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/eleanorharrisonn/Diabetic-Readmissions/eval"
)

func ffmt(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// WriteOddsRatiosCSV writes the term effects as a CSV artifact with one row
// per model term.
func WriteOddsRatiosCSV(w io.Writer, effects []TermEffect) error {

	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"term", "coef", "std_err", "odds_ratio", "ci_lower", "ci_upper"}); err != nil {
		return fmt.Errorf("report: write odds ratios: %w", err)
	}

	for _, e := range effects {
		rec := []string{
			e.Term, ffmt(e.Coef), ffmt(e.StdErr),
			ffmt(e.OddsRatio), ffmt(e.Lower), ffmt(e.Upper),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("report: write odds ratios: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMetricsCSV writes the held-out metrics as a two-column CSV artifact.
// Undefined curve areas are written as the literal word rather than a
// number.
func WriteMetricsCSV(w io.Writer, m *eval.Metrics) error {

	roc, pr := Undefined, Undefined
	if m.Defined {
		roc = ffmt(m.ROCAUC)
		pr = ffmt(m.PRAUC)
	}

	recs := [][]string{
		{"metric", "value"},
		{"threshold", ffmt(m.Threshold)},
		{"accuracy", ffmt(m.Accuracy)},
		{"roc_auc", roc},
		{"pr_auc", pr},
		{"tp", strconv.Itoa(m.Confusion.TP)},
		{"fp", strconv.Itoa(m.Confusion.FP)},
		{"tn", strconv.Itoa(m.Confusion.TN)},
		{"fn", strconv.Itoa(m.Confusion.FN)},
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(recs); err != nil {
		return fmt.Errorf("report: write metrics: %w", err)
	}

	return cw.Error()
}
