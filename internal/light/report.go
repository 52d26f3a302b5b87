package light

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tingelabs/tinge/internal/colour"
)

// Outcome is the result of applying a colour to one target.
type Outcome struct {
	Target string
	Color  colour.RGB
	Err    *Failure
}

// Report aggregates per-target outcomes for one apply operation.
// It is transient: produced and consumed per operation, never persisted.
type Report struct {
	Succeeded map[string]colour.RGB
	Failed    map[string]Failure
}

// Aggregate collects per-target outcomes into a Report. Pure function.
func Aggregate(outcomes []Outcome) Report {
	report := Report{
		Succeeded: make(map[string]colour.RGB),
		Failed:    make(map[string]Failure),
	}
	for _, o := range outcomes {
		if o.Err != nil {
			report.Failed[o.Target] = *o.Err
			continue
		}
		report.Succeeded[o.Target] = o.Color
	}
	return report
}

// AllSucceeded reports whether no target failed.
func (r Report) AllSucceeded() bool {
	return len(r.Failed) == 0
}

// AllFailed reports whether every target failed.
func (r Report) AllFailed() bool {
	return len(r.Succeeded) == 0 && len(r.Failed) > 0
}

// Partial reports whether some targets failed but not all.
// Partial success is not itself an error state.
func (r Report) Partial() bool {
	return len(r.Succeeded) > 0 && len(r.Failed) > 0
}

// Err returns an aggregate error when every target failed, nil otherwise.
func (r Report) Err() error {
	if !r.AllFailed() {
		return nil
	}
	return fmt.Errorf("all %d targets failed: %s", len(r.Failed), r.failureSummary())
}

// Summary returns a human-readable description of the report.
func (r Report) Summary() string {
	total := len(r.Succeeded) + len(r.Failed)
	switch {
	case total == 0:
		return "no targets"
	case r.AllSucceeded():
		return fmt.Sprintf("all %d targets updated", total)
	case r.AllFailed():
		return fmt.Sprintf("all %d targets failed: %s", total, r.failureSummary())
	default:
		return fmt.Sprintf("%d/%d targets updated (%s)", len(r.Succeeded), total, r.failureSummary())
	}
}

// failureSummary counts failures by kind, e.g. "timeout (2), unavailable (1)".
func (r Report) failureSummary() string {
	counts := make(map[FailureKind]int)
	for _, f := range r.Failed {
		counts[f.Kind]++
	}

	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	parts := make([]string, len(kinds))
	for i, kind := range kinds {
		parts[i] = fmt.Sprintf("%s (%d)", kind, counts[FailureKind(kind)])
	}
	return strings.Join(parts, ", ")
}
