package model

import "time"

// ImportSummary captures metrics from a single file import run.
type ImportSummary struct {
	FilePath      string
	FileSHA256    string
	ImportFileID  int64
	IngestBatchID string

	RowsRead        int64
	RowsStaged      int64
	RowsRejected    int64
	EpisodesMerged  int64
	EpisodesRecalc  int64
	CalcDegraded    int64
	PrecheckIssues  int

	DurationPrecheck time.Duration
	DurationCopy     time.Duration
	DurationMerge    time.Duration
	DurationRecalc   time.Duration
	DurationTotal    time.Duration
}
