package audit

import (
	"fmt"
	"time"
)

// Tree is the project hierarchy fetched by an Aggregator.
// It is not modified after Aggregate returns it.
type Tree struct {
	Projects []*Project
}

// Project is a top-level container of services.
type Project struct {
	ID       string
	Services []*Service
}

// Service is a deployable unit within a project.
type Service struct {
	ID       string
	Versions []*Version
}

// Version is a deployed revision of a service.
type Version struct {
	ID string
	// CreateTime is the RFC 3339 timestamp reported by the API.
	CreateTime string
	// Instances is nil when the instances were never fetched or the version
	// disappeared before they could be.
	Instances []Instance
}

// Instance is a running execution unit of a version.
type Instance struct {
	ID string
}

// VersionRef identifies a version within the account.
type VersionRef struct {
	ProjectID string
	ServiceID string
	VersionID string
}

func (r VersionRef) String() string {
	return fmt.Sprintf("%s/%s/%s", r.ProjectID, r.ServiceID, r.VersionID)
}

// OrphanCandidate is a version with no known instances.
type OrphanCandidate struct {
	VersionRef
	CreateTime string
	// Age is only meaningful when AgeKnown is true.
	Age      time.Duration
	AgeKnown bool
}

// AgeMillis returns the age in milliseconds, and false when the creation
// time could not be parsed.
func (c OrphanCandidate) AgeMillis() (int64, bool) {
	if !c.AgeKnown {
		return 0, false
	}
	return c.Age.Milliseconds(), true
}

// Refs returns the identities of candidates, in order.
func Refs(candidates []OrphanCandidate) []VersionRef {
	refs := make([]VersionRef, len(candidates))
	for i, c := range candidates {
		refs[i] = c.VersionRef
	}
	return refs
}

// DeletionOutcome is the result of deleting one version.
// Err is nil on success.
type DeletionOutcome struct {
	Ref VersionRef
	Err error
}

// DeletionReport summarises a deletion batch.
// SuccessCount + len(Failures) always equals Requested.
type DeletionReport struct {
	Requested    int
	SuccessCount int
	Succeeded    []VersionRef
	Failures     []DeletionOutcome
}

// Err returns an error describing the failed deletions, or nil if there were none.
func (r DeletionReport) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d version deletions failed", len(r.Failures), r.Requested)
}
