package model

// RunRecord holds everything extracted from the newest log file of one run.
type RunRecord struct {
	// RunName is the base name of the run directory.
	RunName string `json:"run_name"`

	// LogFile is the base name of the log file the record was extracted from.
	LogFile string `json:"log_file"`

	// TrainingMetrics is sorted ascending by step. Duplicate steps are kept.
	TrainingMetrics []TrainingMetric `json:"training_metrics"`

	// EvaluationResults is sorted ascending by step.
	EvaluationResults []EvaluationResult `json:"evaluation_results"`

	// Config is the hyperparameter snapshot found in the log.
	Config ConfigMap `json:"config"`
}

// LastStep returns the highest training step of the run, or 0 if there is none.
func (r *RunRecord) LastStep() int {
	if len(r.TrainingMetrics) == 0 {
		return 0
	}
	return r.TrainingMetrics[len(r.TrainingMetrics)-1].Step
}

// FinalLoss returns the loss of the last training record.
// The second return value is false when the run has no training records.
func (r *RunRecord) FinalLoss() (float64, bool) {
	if len(r.TrainingMetrics) == 0 {
		return 0, false
	}
	return r.TrainingMetrics[len(r.TrainingMetrics)-1].Loss, true
}

// BestPaloma returns the lowest paloma score of the run.
// The second return value is false when the run has no evaluation results.
func (r *RunRecord) BestPaloma() (float64, bool) {
	if len(r.EvaluationResults) == 0 {
		return 0, false
	}
	best := r.EvaluationResults[0].Paloma
	for _, e := range r.EvaluationResults[1:] {
		if e.Paloma < best {
			best = e.Paloma
		}
	}
	return best, true
}

// Summary is the top level summary section of a Report.
type Summary struct {
	// TotalRuns is the number of runs in the report.
	TotalRuns int `json:"total_runs"`

	// RunNames lists the run names in collection order.
	RunNames []string `json:"run_names"`
}

// Report is the aggregate over all valid runs.
type Report struct {
	Runs    []RunRecord `json:"runs"`
	Summary Summary     `json:"summary"`
}

// NewReport builds a Report from runs in the given order and fills in the summary.
func NewReport(runs []RunRecord) *Report {
	if runs == nil {
		runs = []RunRecord{}
	}
	names := make([]string, len(runs))
	for i := range runs {
		names[i] = runs[i].RunName
	}
	return &Report{
		Runs: runs,
		Summary: Summary{
			TotalRuns: len(runs),
			RunNames:  names,
		},
	}
}

// TotalTrainingMetrics returns the number of training records across all runs.
func (r *Report) TotalTrainingMetrics() int {
	total := 0
	for i := range r.Runs {
		total += len(r.Runs[i].TrainingMetrics)
	}
	return total
}

// TotalEvaluationResults returns the number of evaluation records across all runs.
func (r *Report) TotalEvaluationResults() int {
	total := 0
	for i := range r.Runs {
		total += len(r.Runs[i].EvaluationResults)
	}
	return total
}
