// Package tasks provides compile task queue management using Asynq
package tasks

import (
	"errors"
	"path/filepath"
	"time"
)

const (
	// TypeIndustryCompile is the task type for industry compilations
	TypeIndustryCompile = "industry:compile"
	// QueueCompile is the queue compile tasks are enqueued on
	QueueCompile = "compile"
)

const (
	// TriggerManual marks tasks enqueued from the command line
	TriggerManual = "manual"
	// TriggerSchedule marks tasks enqueued by the rebuild schedule
	TriggerSchedule = "schedule"
)

var (
	// ErrTaskAlreadyQueued is returned when a compile task for the same industry is still queued
	ErrTaskAlreadyQueued = errors.New("compile task already queued")
	// ErrMissingIndustryDir is returned when a payload names no industry directory
	ErrMissingIndustryDir = errors.New("payload has no industry directory")
)

// CompilePayload represents the payload for a compile task
type CompilePayload struct {
	IndustryDir string    `json:"industry_dir"`
	OutputDir   string    `json:"output_dir,omitempty"` // empty for the configured output directory
	Trigger     string    `json:"trigger"`
	EnqueuedAt  time.Time `json:"enqueued_at"`
}

// UniqueID returns a unique identifier for this task
func (p CompilePayload) UniqueID() string {
	return "compile:" + filepath.Clean(p.IndustryDir)
}

// Industry returns the name of the industry directory
func (p CompilePayload) Industry() string {
	return filepath.Base(p.IndustryDir)
}
