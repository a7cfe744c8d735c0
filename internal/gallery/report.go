package gallery

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseRemote Phase = "remote"
	PhaseStore  Phase = "store"
)

type Failure struct {
	ID  uuid.UUID
	Err error
}

// PhaseResult lists what one step of a delete did. Ids absent from both
// lists were never attempted in that phase.
type PhaseResult struct {
	Succeeded uuid.UUIDs
	Failed    []Failure
}

func (p PhaseResult) Err() error {
	errList := make([]error, 0, len(p.Failed))
	for _, f := range p.Failed {
		errList = append(errList, f.Err)
	}

	return errors.Join(errList...)
}

// DeleteReport is returned by every delete. Remote runs first; Store is only
// attempted when Remote has no failures.
type DeleteReport struct {
	Requested uuid.UUIDs
	Canceled  bool
	Remote    PhaseResult
	Store     PhaseResult
}

// Deleted lists the records removed from both systems.
func (r *DeleteReport) Deleted() uuid.UUIDs {
	return r.Store.Succeeded
}

func (r *DeleteReport) Complete() bool {
	return !r.Canceled && len(r.Requested) > 0 && len(r.Store.Succeeded) == len(r.Requested)
}

// FailedPhase reports the first phase with failures.
func (r *DeleteReport) FailedPhase() (Phase, bool) {
	switch {
	case len(r.Remote.Failed) > 0:
		return PhaseRemote, true
	case len(r.Store.Failed) > 0:
		return PhaseStore, true
	default:
		return "", false
	}
}

// Message is the text shown to the user once the delete has settled.
func (r *DeleteReport) Message() string {
	if r.Canceled || len(r.Requested) == 0 {
		return ""
	}

	phase, failed := r.FailedPhase()
	if !failed {
		if len(r.Requested) == 1 {
			return "Image deleted"
		}

		return fmt.Sprintf("Deleted %d image(s)", len(r.Requested))
	}

	var b strings.Builder

	switch phase {
	case PhaseRemote:
		fmt.Fprintf(&b, "Failed to delete %d of %d image(s) from the image host; no records were removed",
			len(r.Remote.Failed), len(r.Requested))
	case PhaseStore:
		fmt.Fprintf(&b, "Images were removed from the image host but %d record(s) could not be deleted",
			len(r.Store.Failed))
	}

	failures := r.Remote.Failed
	if phase == PhaseStore {
		failures = r.Store.Failed
	}
	for _, f := range failures {
		fmt.Fprintf(&b, "\n  %s: %v", f.ID, f.Err)
	}

	return b.String()
}
