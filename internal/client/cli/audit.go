package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/zerotask/zerotask/internal/client/models"
)

// Log prints the retained audit entries, newest first. In remote mode the
// server-side trail follows, since task mutations are recorded there.
func (a *App) Log(ctx context.Context) error {
	entries := a.audit.List()
	if len(entries) == 0 {
		printlnFn("Audit log is empty.")
	}
	for _, e := range entries {
		printlnFn(formatAuditEntry(e))
	}

	if a.api != nil {
		remote, err := a.api.Audit(ctx)
		if err != nil {
			printlnFn("Error fetching server audit log:", err.Error())
			return err
		}
		printlnFn("Server audit log:")
		if len(remote) == 0 {
			printlnFn("  (empty)")
		}
		for _, e := range remote {
			printlnFn("  " + formatAuditEntry(e))
		}
	}
	return nil
}

func formatAuditEntry(e models.AuditEntry) string {
	ts := time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04:05")
	return fmt.Sprintf("%s  %-13s %s", ts, e.Action, e.Details)
}

// ClearLog empties the audit log.
func (a *App) ClearLog(ctx context.Context) error {
	if err := a.audit.Clear(ctx); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Audit log cleared.")
	return nil
}
