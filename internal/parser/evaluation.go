package parser

import (
	"cmp"
	"slices"

	"github.com/nao1215/logmetrics/internal/model"
)

// EvaluationMetric is the only evaluation metric name the parser recognizes.
const EvaluationMetric = "paloma"

// evaluationBlock matches:
//
//	... - Step 100 -- 📊 Evaluation Results
//	... - └── paloma: 2.5
//
// The value group is any non-space token so that markers such as "inf" are
// captured and then rejected by the numeric check.
// Groups: 1:Step, 2:Value
var evaluationBlock = blockPattern(
	`Step `+capture(intClass)+` -- \S+ Evaluation Results`,
	`└── `+EvaluationMetric+`: `+capture(`\S+`),
)

// ParseEvaluationResults returns one record per evaluation block in text,
// sorted ascending by step. Blocks whose value is not a finite number are dropped.
func ParseEvaluationResults(text string) []model.EvaluationResult {
	results := make([]model.EvaluationResult, 0)

	for _, m := range evaluationBlock.FindAllStringSubmatch(text, -1) {
		step, ok := parseCount(m[1])
		if !ok {
			continue
		}
		value, ok := parseFinite(m[2])
		if !ok {
			continue
		}
		results = append(results, model.EvaluationResult{Step: step, Paloma: value})
	}

	slices.SortStableFunc(results, func(a, b model.EvaluationResult) int {
		return cmp.Compare(a.Step, b.Step)
	})
	return results
}
