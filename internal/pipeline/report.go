// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package pipeline

import (
	"time"

	"release-manager/internal/journal"
	"release-manager/internal/ui"
)

// Step names as they appear in reports and the journal.
const (
	StepPreflight = "preflight"
	StepClean     = "clean"
	StepVersion   = "version"
	StepBuild     = "build"
	StepTag       = "tag"
	StepUpload    = "upload"
)

// Status is the outcome of a step.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

type StepReport struct {
	Step   string
	Status Status
	Detail string
}

// Report collects what a run did.
type Report struct {
	Project       string
	VersionBefore string
	VersionAfter  string
	Tag           string // set only when a tag was pushed
	Steps         []StepReport
	StartedAt     time.Time
	FinishedAt    time.Time
}

func (r *Report) add(step string, status Status, detail string) {
	r.Steps = append(r.Steps, StepReport{Step: step, Status: status, Detail: detail})
}

// StatusOf returns the recorded status of step, or "" if the run never reached it.
func (r Report) StatusOf(step string) Status {
	for _, s := range r.Steps {
		if s.Step == step {
			return s.Status
		}
	}
	return ""
}

// Failed reports whether any step failed.
func (r Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Rows converts the report for ui.RenderSummary.
func (r Report) Rows() []ui.Row {
	rows := make([]ui.Row, len(r.Steps))
	for i, s := range r.Steps {
		rows[i] = ui.Row{Step: s.Step, Status: string(s.Status), Detail: s.Detail}
	}
	return rows
}

// Record converts the report into a journal entry.
func (r Report) Record() journal.Record {
	steps := make([]journal.StepResult, len(r.Steps))
	for i, s := range r.Steps {
		steps[i] = journal.StepResult{Step: s.Step, Status: string(s.Status), Detail: s.Detail}
	}
	return journal.Record{
		Project:       r.Project,
		VersionBefore: r.VersionBefore,
		VersionAfter:  r.VersionAfter,
		Tag:           r.Tag,
		Steps:         steps,
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
	}
}
