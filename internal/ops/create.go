package ops

import (
	"context"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/driftware/reef/internal/cli"
	"github.com/driftware/reef/internal/model"
)

// Reporter displays the creation pipeline's phases to the user.
// The concrete implementation is ui.PhaseReporter.
type Reporter interface {
	Start(title string)
	Done()
	Fail()
}

// NopReporter is a Reporter that displays nothing.
type NopReporter struct{}

func (NopReporter) Start(string) {}
func (NopReporter) Done()        {}
func (NopReporter) Fail()        {}

// creationPhase is the terminal state of one pipeline run.
type creationPhase int

const (
	// phaseCreatedNoJob: creation returned no job handle, so provisioning
	// was never confirmed and the pipeline holds no result.
	phaseCreatedNoJob creationPhase = iota
	// phaseWaitFailed: the job waiter failed; the held storefront is cleared.
	phaseWaitFailed
	// phaseSucceeded: the storefront was created and provisioned.
	phaseSucceeded
)

// creationResult tags the pipeline outcome explicitly instead of relying on
// mutable capture across phases.
type creationResult struct {
	phase      creationPhase
	storefront *model.Storefront // non-nil only when phase is phaseSucceeded
}

// CreateNewStorefront creates a remote storefront and waits for its API
// credentials to finish provisioning. The default name is derived from the
// last path segment of root. Failures during creation propagate unchanged;
// every other failure mode surfaces as a single generic UnknownError.
func CreateNewStorefront(ctx context.Context, root string, client StorefrontAPI, p Prompter, r Reporter) (*model.Storefront, error) {
	name, err := p.Input("New storefront name", DefaultStorefrontName(root))
	if err != nil {
		return nil, err
	}

	res, err := runCreation(ctx, name, client, r)
	if err != nil {
		// Phase 1 failure: the creator's error propagates uncaught.
		return nil, err
	}
	if res.phase != phaseSucceeded {
		return nil, &cli.UnknownError{}
	}
	return res.storefront, nil
}

// runCreation executes the two-phase pipeline:
//
//	START -> CREATING (create call)
//	CREATING -> CREATED_NO_JOB (no job handle) -> FAILED at final check
//	CREATING -> WAITING (poll job)
//	WAITING -> SUCCESS | FAILED (waiter error swallowed, storefront cleared)
//	CREATING -> error (create call failed; phase 2 never runs)
//
// Exactly one create call and at most one job wait happen per invocation.
func runCreation(ctx context.Context, name string, client StorefrontAPI, r Reporter) (creationResult, error) {
	r.Start("Creating storefront")
	sf, jobID, err := client.CreateStorefront(ctx, name)
	if err != nil {
		r.Fail()
		return creationResult{}, err
	}
	r.Done()

	if jobID == "" {
		return creationResult{phase: phaseCreatedNoJob}, nil
	}

	r.Start("Creating API tokens")
	if err := client.WaitForJob(ctx, jobID); err != nil {
		r.Fail()
		// Deliberate swallow: the waiter's error is not re-raised, the
		// pipeline reports failure through the absence of a result.
		return creationResult{phase: phaseWaitFailed}, nil
	}
	r.Done()

	return creationResult{phase: phaseSucceeded, storefront: sf}, nil
}

// DefaultStorefrontName derives a display name from a project directory:
// the last path segment, split on separators and title-cased.
// "/home/dev/my-cool-shop" becomes "My Cool Shop".
func DefaultStorefrontName(root string) string {
	base := filepath.Base(filepath.Clean(root))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}

	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
