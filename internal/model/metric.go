package model

// TrainingMetric is a single training-metrics block of a log file.
type TrainingMetric struct {
	// Step is the optimizer step the block was logged at.
	Step int `json:"step"`

	// Loss is the training loss at Step.
	Loss float64 `json:"loss"`

	// LearningRate is the scheduler learning rate at Step.
	LearningRate float64 `json:"learning_rate"`

	// InfNaNCount is the number of non-finite values reported for Step.
	InfNaNCount int `json:"inf_nan_count"`
}

// EvaluationResult is a single evaluation block of a log file.
type EvaluationResult struct {
	// Step is the optimizer step the evaluation ran at.
	Step int `json:"step"`

	// Paloma is the paloma evaluation score.
	Paloma float64 `json:"paloma"`
}
