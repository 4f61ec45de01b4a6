package parser

import (
	"cmp"
	"slices"

	"github.com/nao1215/logmetrics/internal/model"
)

// trainingBlock matches:
//
//	... - Step 100 -- 🔄 Training Metrics
//	... - ├── Loss: 2.5
//	... - ├── Learning Rate: 3e-4
//	... - └── Inf/NaN count: 0
//
// Groups: 1:Step, 2:Loss, 3:Learning rate, 4:Inf/NaN count
var trainingBlock = blockPattern(
	`Step `+capture(intClass)+` -- \S+ Training Metrics`,
	`├── Loss: `+capture(floatClass),
	`├── Learning Rate: `+capture(floatClass),
	`└── Inf/NaN count: `+capture(intClass),
)

// ParseTrainingMetrics returns one record per training block in text, sorted
// ascending by step. Records logged twice for the same step are both kept.
func ParseTrainingMetrics(text string) []model.TrainingMetric {
	metrics := make([]model.TrainingMetric, 0)

	for _, m := range trainingBlock.FindAllStringSubmatch(text, -1) {
		step, ok := parseCount(m[1])
		if !ok {
			continue
		}
		loss, ok := parseFinite(m[2])
		if !ok {
			continue
		}
		lr, ok := parseFinite(m[3])
		if !ok {
			continue
		}
		infNaN, ok := parseCount(m[4])
		if !ok {
			continue
		}
		metrics = append(metrics, model.TrainingMetric{
			Step:         step,
			Loss:         loss,
			LearningRate: lr,
			InfNaNCount:  infNaN,
		})
	}

	slices.SortStableFunc(metrics, func(a, b model.TrainingMetric) int {
		return cmp.Compare(a.Step, b.Step)
	})
	return metrics
}
