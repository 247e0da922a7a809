package runner

import "time"

// Results is the artifact written for one model run.
type Results struct {
	RunID      string       `json:"runId"`
	Model      string       `json:"model"`
	Provider   string       `json:"provider"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Repo       *RepoInfo    `json:"repo,omitempty"`
	Summary    RunSummary   `json:"summary"`
	Results    []CaseResult `json:"results"`
}

// RepoInfo records the git state of the prompts and corpus for a run.
type RepoInfo struct {
	Commit string `json:"commit"`
	Branch string `json:"branch"`
	Dirty  bool   `json:"dirty"`
}

// RunSummary aggregates case results for one model. Rates are percentages
// rounded to one decimal; latencies are mean milliseconds.
type RunSummary struct {
	Model string `json:"model"`
	Total int    `json:"total"`

	JSONValid        int `json:"jsonValid"`
	SchemaValid      int `json:"schemaValid"`
	StrictHits       int `json:"strictHits"`
	AcceptableHits   int `json:"acceptableHits"`
	Clarify          int `json:"clarify"`
	RouterFailures   int `json:"routerFailures"`
	ExecutorFailures int `json:"executorFailures"`

	JSONValidityRate       float64 `json:"jsonValidityRate"`
	SchemaValidityRate     float64 `json:"schemaValidityRate"`
	StrictToolAccuracyRate float64 `json:"strictToolAccuracyRate"`
	AcceptableAccuracyRate float64 `json:"acceptableAccuracyRate"`
	ClarifyRate            float64 `json:"clarifyRate"`
	AvgRouterMs            int64   `json:"avgRouterMs"`
	AvgExecMs              int64   `json:"avgExecMs"`

	Failed bool `json:"failed,omitempty"`
}
