package calendarsync

import (
	"fmt"
	"strings"
)

// FormatValidationResult renders a validation result as a plain-text report
// for console tooling.
func FormatValidationResult(r *ValidationResult) string {
	var b strings.Builder

	status := "VALID"
	if !r.IsValid {
		status = "INVALID"
	}
	fmt.Fprintf(&b, "Calendar validation: %s (%d events)\n", status, r.EventCount)

	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "\nErrors (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "  [%s] %s %s: %s\n", e.Severity, e.Type, e.EventID, e.Message)
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  %s %s: %s\n", w.Type, w.EventID, w.Message)
		}
	}
	if len(r.Duplicates) > 0 {
		fmt.Fprintf(&b, "\nDuplicate clusters (%d):\n", len(r.Duplicates))
		for _, g := range r.Duplicates {
			fmt.Fprintf(&b, "  %s\n", g.Reason)
			for _, e := range g.Events {
				fmt.Fprintf(&b, "    - %s %q\n", e.ID, e.Title)
			}
		}
	}
	return b.String()
}

// FormatSyncResult renders a sync result as a plain-text report.
func FormatSyncResult(r *SyncResult) string {
	var b strings.Builder

	status := "OK"
	if !r.Success {
		status = "FAILED"
	}
	fmt.Fprintf(&b, "Calendar sync: %s - %s\n", status, r.Message)
	fmt.Fprintf(&b, "Events processed: %d\n", r.EventsProcessed)

	if len(r.Resolutions) > 0 {
		fmt.Fprintf(&b, "\nResolutions (%d):\n", len(r.Resolutions))
		for _, res := range r.Resolutions {
			fmt.Fprintf(&b, "  %s [%s] %s", res.DefinitionID, res.Strategy, res.Action)
			if len(res.DeletedIDs) > 0 {
				fmt.Fprintf(&b, " (deleted %d)", len(res.DeletedIDs))
			}
			b.WriteByte('\n')
		}
	}
	if len(r.ManualReview) > 0 {
		fmt.Fprintf(&b, "\nNeeds manual review (%d): %s\n",
			len(r.ManualReview), strings.Join(r.ManualReview, ", "))
	}
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "\nErrors (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "  %s\n", e)
		}
	}
	if r.ValidationResult != nil {
		b.WriteString("\nPost-sync ")
		b.WriteString(FormatValidationResult(r.ValidationResult))
	}
	return b.String()
}
