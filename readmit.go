/*
Package readmit runs the full readmission analysis: load the encounters
file, filter to the binary cohort, build the design matrix, split, fit the
logistic model, and write the report artifacts.

Any stage failure aborts the run with a wrapped error; nothing partial is
interpreted.
*/
package readmit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eleanorharrisonn/Diabetic-Readmissions/dataset"
	"github.com/eleanorharrisonn/Diabetic-Readmissions/design"
	"github.com/eleanorharrisonn/Diabetic-Readmissions/eval"
	"github.com/eleanorharrisonn/Diabetic-Readmissions/glm"
	"github.com/eleanorharrisonn/Diabetic-Readmissions/internal/config"
	"github.com/eleanorharrisonn/Diabetic-Readmissions/report"
)

// Artifact file names written into the output directory.
const (
	ReportFile     = "report.txt"
	OddsRatiosFile = "odds_ratios.csv"
	MetricsFile    = "metrics.csv"
)

// RunReport holds everything a completed run produced.
type RunReport struct {

	// Unique id of this run
	ID string

	// Row counts through the pipeline
	InputRows   int
	DroppedRows int
	CohortRows  int
	TrainRows   int
	TestRows    int

	// Fitted model results
	Results *glm.Results

	// Term effects on the odds-ratio scale
	Effects []report.TermEffect

	// Held-out evaluation
	Metrics *eval.Metrics

	// The rendered text report
	Text string
}

// Run executes the analysis described by the configuration and writes the
// report artifacts to the configured output directory.
func Run(cfg *config.Config, logger *zap.Logger) (*RunReport, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger = logger.With(zap.String("run", runID))
	start := time.Now()

	tbl, err := dataset.LoadFile(cfg.InputPath, dataset.LoadConfig{DropMissing: cfg.DropMissing})
	if err != nil {
		return nil, fmt.Errorf("readmit: load: %w", err)
	}
	logger.Info("loaded input",
		zap.String("path", cfg.InputPath),
		zap.Int("rows", tbl.NumRows()),
		zap.Int("dropped", tbl.Dropped))

	cohort := dataset.Cohort(tbl)
	if cohort.NumRows() == 0 {
		return nil, fmt.Errorf("readmit: cohort is empty after excluding late readmissions")
	}
	logger.Info("built cohort",
		zap.Int("rows", cohort.NumRows()),
		zap.Int("excluded", tbl.NumRows()-cohort.NumRows()))

	insProps, err := dataset.Proportions(cohort, dataset.ColInsulin)
	if err != nil {
		return nil, fmt.Errorf("readmit: %w", err)
	}
	ageProps, err := dataset.Proportions(cohort, dataset.ColAge)
	if err != nil {
		return nil, fmt.Errorf("readmit: %w", err)
	}

	ds, err := design.Build(cohort, design.Config{InsulinRef: cfg.InsulinRef, AgeRef: cfg.AgeRef})
	if err != nil {
		return nil, fmt.Errorf("readmit: %w", err)
	}

	train, test, err := design.Split(ds, cfg.TrainFraction, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("readmit: %w", err)
	}
	logger.Info("split data",
		zap.Int64("seed", cfg.Seed),
		zap.Int("train", train.NumObs()),
		zap.Int("test", test.NumObs()))

	glmCfg := glm.DefaultConfig()
	glmCfg.MaxIter = cfg.MaxIter
	glmCfg.FitMethod = cfg.FitMethod
	glmCfg.Log = zap.NewStdLog(logger.Named("fit"))

	fitStart := time.Now()
	rslt, err := glm.NewGLM(train, glmCfg).Fit()
	if err != nil {
		return nil, fmt.Errorf("readmit: fit: %w", err)
	}
	logger.Info("fit model",
		zap.Duration("elapsed", time.Since(fitStart)),
		zap.Float64("loglike", rslt.LogLike()),
		zap.Float64("deviance", rslt.Deviance()))

	effects, err := report.OddsRatios(rslt, cfg.ConfLevel)
	if err != nil {
		return nil, fmt.Errorf("readmit: %w", err)
	}

	probs, err := rslt.Predict(test)
	if err != nil {
		return nil, fmt.Errorf("readmit: predict: %w", err)
	}

	metrics, err := eval.Evaluate(test.Y(), probs, cfg.Threshold)
	if err != nil {
		return nil, fmt.Errorf("readmit: evaluate: %w", err)
	}
	if !metrics.Defined {
		logger.Warn("held-out partition has a single outcome class, curve areas undefined")
	}

	rr := &RunReport{
		ID:          runID,
		InputRows:   tbl.NumRows(),
		DroppedRows: tbl.Dropped,
		CohortRows:  cohort.NumRows(),
		TrainRows:   train.NumObs(),
		TestRows:    test.NumObs(),
		Results:     rslt,
		Effects:     effects,
		Metrics:     metrics,
	}
	rr.Text = renderText(rr, cfg, insProps, ageProps)

	if err := writeArtifacts(cfg.OutputDir, rr); err != nil {
		return nil, err
	}
	logger.Info("run complete",
		zap.String("output", cfg.OutputDir),
		zap.Duration("elapsed", time.Since(start)))

	return rr, nil
}

// renderText assembles the text report from its tables.
func renderText(rr *RunReport, cfg *config.Config, insProps, ageProps []dataset.Proportion) string {

	var b strings.Builder

	fmt.Fprintf(&b, "Diabetic readmission report\n")
	fmt.Fprintf(&b, "Run %s, generated %s\n", rr.ID, time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "Input rows: %d  dropped: %d  cohort: %d  train: %d  test: %d\n\n",
		rr.InputRows, rr.DroppedRows, rr.CohortRows, rr.TrainRows, rr.TestRows)

	b.WriteString(report.ModelSummary(rr.Results, rr.ID).String())
	b.WriteString("\n")
	b.WriteString(report.OddsRatioTable(rr.Effects, cfg.ConfLevel).String())
	b.WriteString("\n")
	b.WriteString(report.MetricsTable(rr.Metrics).String())
	b.WriteString("\n")
	b.WriteString(report.ProportionsTable(dataset.ColInsulin, insProps).String())
	b.WriteString("\n")
	b.WriteString(report.ProportionsTable(dataset.ColAge, ageProps).String())

	return b.String()
}

// writeArtifacts writes the text report and the CSV artifacts to the output
// directory.
func writeArtifacts(dir string, rr *RunReport) error {

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("readmit: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ReportFile), []byte(rr.Text), 0o644); err != nil {
		return fmt.Errorf("readmit: %w", err)
	}

	err := writeFile(filepath.Join(dir, OddsRatiosFile), func(w io.Writer) error {
		return report.WriteOddsRatiosCSV(w, rr.Effects)
	})
	if err != nil {
		return err
	}

	return writeFile(filepath.Join(dir, MetricsFile), func(w io.Writer) error {
		return report.WriteMetricsCSV(w, rr.Metrics)
	})
}

func writeFile(path string, write func(io.Writer) error) error {

	fid, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("readmit: %w", err)
	}

	if err := write(fid); err != nil {
		fid.Close()
		return err
	}

	if err := fid.Close(); err != nil {
		return fmt.Errorf("readmit: %s: %w", path, err)
	}

	return nil
}
