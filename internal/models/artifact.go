package models

import "time"

// SnapResult is one asserted snapshot in a finished run.
type SnapResult struct {
	Path   string `json:"path"`
	Status Status `json:"status"`
}

// RunArtifact is the persisted record of one run, kept for CI inspection.
type RunArtifact struct {
	RunID      string       `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Summary    Summary      `json:"summary"`
	Lines      []string     `json:"lines"`
	Results    []SnapResult `json:"results"`
}

// NewRunArtifact flattens root into per-snapshot results.
func NewRunArtifact(runID string, startedAt, finishedAt time.Time, root *Report) *RunArtifact {
	artifact := &RunArtifact{
		RunID:      runID,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Summary:    Summarize(root.Children()...),
		Lines:      root.Lines(),
		Results:    make([]SnapResult, 0, root.LeafCount()),
	}
	root.Walk(func(path string, leaf *Report) {
		artifact.Results = append(artifact.Results, SnapResult{Path: path, Status: leaf.Status()})
	})
	return artifact
}
