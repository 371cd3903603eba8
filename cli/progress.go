package cli

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// ProgressReporter reports concurrent repository operation progress as
// line-oriented output, safe for non-interactive terminals and CI logs.
type ProgressReporter struct {
	mu       sync.Mutex
	out      io.Writer
	statuses map[string]string
	start    time.Time
}

// NewProgressReporter creates a new progress reporter writing to out.
func NewProgressReporter(out io.Writer) *ProgressReporter {
	return &ProgressReporter{
		out:      out,
		statuses: make(map[string]string),
		start:    time.Now(),
	}
}

// Update records and prints the new status of a repository.
func (p *ProgressReporter) Update(repo, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Terminal states only; transient states would double-print under
	// concurrency.
	p.statuses[repo] = status

	symbol := styleMuted.Render("…")
	switch status {
	case "ok":
		symbol = styleOK.Render("✓")
	case "failed":
		symbol = styleError.Render("✗")
	case "fetching", "resolving":
		fmt.Fprintf(p.out, "%s %s: %s\n", symbol, repo, status)
		return
	}

	fmt.Fprintf(p.out, "%s %s\n", symbol, repo)
}

// Done prints a summary line with the elapsed time and any failures.
func (p *ProgressReporter) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	var failed []string
	for repo, status := range p.statuses {
		if status == "failed" {
			failed = append(failed, repo)
		}
	}
	sort.Strings(failed)

	elapsed := time.Since(p.start).Round(time.Millisecond)
	if len(failed) == 0 {
		fmt.Fprintf(p.out, "Completed in %s\n", elapsed)
		return
	}
	fmt.Fprintf(p.out, "Completed in %s, %d failed:\n", elapsed, len(failed))
	for _, repo := range failed {
		fmt.Fprintf(p.out, "  %s %s\n", styleError.Render("✗"), repo)
	}
}
