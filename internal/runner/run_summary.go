package runner

import "math"

// Summarize aggregates case results into a RunSummary. An empty run yields zero rates.
func Summarize(model string, results []CaseResult) RunSummary {
	summary := RunSummary{Model: model, Total: len(results)}
	if summary.Total == 0 {
		return summary
	}
	var routerMs, execMs int64
	for _, result := range results {
		if result.JSONValid() {
			summary.JSONValid++
		}
		if result.SchemaValid() {
			summary.SchemaValid++
		}
		if result.StrictHit() {
			summary.StrictHits++
		}
		if result.AcceptableHit() {
			summary.AcceptableHits++
		}
		switch result.Status {
		case StatusClarify:
			summary.Clarify++
		case StatusRouterFail:
			summary.RouterFailures++
		case StatusExecutorFail:
			summary.ExecutorFailures++
		}
		routerMs += result.RouterMs
		execMs += result.ExecMs
	}
	summary.JSONValidityRate = percent(summary.JSONValid, summary.Total)
	summary.SchemaValidityRate = percent(summary.SchemaValid, summary.Total)
	summary.StrictToolAccuracyRate = percent(summary.StrictHits, summary.Total)
	summary.AcceptableAccuracyRate = percent(summary.AcceptableHits, summary.Total)
	summary.ClarifyRate = percent(summary.Clarify, summary.Total)
	summary.AvgRouterMs = int64(math.Round(float64(routerMs) / float64(summary.Total)))
	summary.AvgExecMs = int64(math.Round(float64(execMs) / float64(summary.Total)))
	return summary
}

// FailedSummary is the placeholder row for a model whose run could not complete.
func FailedSummary(model string) RunSummary {
	return RunSummary{Model: model, Failed: true}
}

func percent(count, total int) float64 {
	return math.Round(float64(count)/float64(total)*1000) / 10
}
