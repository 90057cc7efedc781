package report

import (
	"fmt"

	"github.com/eleanorharrisonn/Diabetic-Readmissions/dataset"
	"github.com/eleanorharrisonn/Diabetic-Readmissions/eval"
	"github.com/eleanorharrisonn/Diabetic-Readmissions/glm"
)

// Undefined is printed in place of a metric that does not exist for the
// evaluated partition.
const Undefined = "undefined"

// ModelSummary renders the fitted coefficients as a regression summary
// table.
func ModelSummary(rslt *glm.Results, runID string) *Table {

	top := []string{
		"Model:   Logistic regression",
		fmt.Sprintf("Run:  %s", runID),
		"Family:  Binomial",
		fmt.Sprintf("Observations:  %d", rslt.Model().NumObs()),
		"Link:    Logit",
		fmt.Sprintf("Log-likelihood:  %.2f", rslt.LogLike()),
		fmt.Sprintf("Method:  %s", rslt.Model().FitMethod()),
		fmt.Sprintf("Deviance:  %.2f", rslt.Deviance()),
	}

	return &Table{
		Title:    "Readmission within 30 days",
		Top:      top,
		ColNames: []string{"Variable", "Coefficient", "SE", "Z-score", "P-value"},
		ColFmt:   []Fmter{StringFmt, NumFmt("%12.4f"), NumFmt("%12.4f"), NumFmt("%12.4f"), NumFmt("%12.4f")},
		Cols: []interface{}{
			rslt.Names(), rslt.Params(), rslt.StdErr(), rslt.ZScores(), rslt.PValues(),
		},
	}
}

// OddsRatioTable renders the term effects with their confidence intervals.
func OddsRatioTable(effects []TermEffect, level float64) *Table {

	terms := make([]string, len(effects))
	ors := make([]float64, len(effects))
	cis := make([]string, len(effects))
	for i, e := range effects {
		terms[i] = e.Term
		ors[i] = e.OddsRatio
		cis[i] = fmt.Sprintf("%.2f - %.2f", e.Lower, e.Upper)
	}

	return &Table{
		Title:    "Odds ratios",
		ColNames: []string{"Term", "Odds ratio", fmt.Sprintf("%.0f%% CI", 100*level)},
		ColFmt:   []Fmter{StringFmt, NumFmt("%.3f"), StringFmt},
		Cols:     []interface{}{terms, ors, cis},
		Msg: []string{
			"Odds ratios are relative to the reference category of each group.",
		},
	}
}

// MetricsTable renders the held-out evaluation metrics.  Curve areas that
// are undefined for the partition are shown as such rather than as numbers.
func MetricsTable(m *eval.Metrics) *Table {

	names := []string{
		"Accuracy", "ROC-AUC", "PR-AUC",
		"True positives", "False positives", "True negatives", "False negatives",
	}

	values := []string{
		fmt.Sprintf("%.4f", m.Accuracy),
		Undefined,
		Undefined,
		fmt.Sprintf("%d", m.Confusion.TP),
		fmt.Sprintf("%d", m.Confusion.FP),
		fmt.Sprintf("%d", m.Confusion.TN),
		fmt.Sprintf("%d", m.Confusion.FN),
	}
	if m.Defined {
		values[1] = fmt.Sprintf("%.4f", m.ROCAUC)
		values[2] = fmt.Sprintf("%.4f", m.PRAUC)
	}

	return &Table{
		Title:    "Held-out evaluation",
		Top:      []string{fmt.Sprintf("Threshold:  %.2f", m.Threshold), fmt.Sprintf("Test rows:  %d", m.Confusion.Total())},
		ColNames: []string{"Metric", "Value"},
		ColFmt:   []Fmter{StringFmt, StringFmt},
		Cols:     []interface{}{names, values},
	}
}

// ProportionsTable renders the readmission rate per level of a categorical
// field.
func ProportionsTable(col string, props []dataset.Proportion) *Table {

	levels := make([]string, len(props))
	ns := make([]float64, len(props))
	readm := make([]float64, len(props))
	rates := make([]float64, len(props))
	for i, p := range props {
		levels[i] = p.Level
		ns[i] = float64(p.N)
		readm[i] = float64(p.Readmitted)
		rates[i] = p.Prop
	}

	return &Table{
		Title:    fmt.Sprintf("Readmission rate by %s", col),
		ColNames: []string{"Level", "N", "Readmitted", "Rate"},
		ColFmt:   []Fmter{StringFmt, NumFmt("%.0f"), NumFmt("%.0f"), NumFmt("%.4f")},
		Cols:     []interface{}{levels, ns, readm, rates},
	}
}
