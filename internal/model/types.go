// Package model defines the core data structures for reef.
package model

// Storefront is a snapshot of a remote storefront resource. It is fetched
// fresh on every invocation and never cached across runs.
type Storefront struct {
	ID            string `json:"id" yaml:"id"`
	Title         string `json:"title" yaml:"title"`
	ProductionURL string `json:"productionUrl" yaml:"production_url,omitempty"`
}

// LinkedStorefront is the subset of a storefront persisted in project config
// when a project is linked. Remote deletion after linking is not detected.
type LinkedStorefront struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// ProjectFile represents the contents of .reef/config.yaml.
type ProjectFile struct {
	Version    int               `yaml:"version"`
	Shop       string            `yaml:"shop"`
	Storefront *LinkedStorefront `yaml:"storefront,omitempty"`
}

// Linked reports whether the project is linked to a storefront.
func (p *ProjectFile) Linked() bool {
	return p.Storefront != nil && p.Storefront.ID != ""
}

// CreateJob is the handle returned when storefront creation schedules
// asynchronous provisioning work. It is transient: only the resulting
// storefront is ever persisted.
type CreateJob struct {
	JobID      string     `json:"jobId"`
	Storefront Storefront `json:"storefront"`
}

// JobStatus represents the state of an asynchronous provisioning job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Terminal reports whether the job has finished, successfully or not.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}
