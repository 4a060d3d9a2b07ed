package bots

import (
	"fmt"
	"strings"
	"time"
)

// Summary of a single bot run.
type Report struct {
	Bot      string
	Started  time.Time
	Duration time.Duration

	// Feed pages fetched from the instance.
	Pages int

	// Items which passed every pipeline stage.
	Accepted int

	// Accepted items dropped because their message could not be composed.
	Skipped int

	Posts     int
	Reblogs   int
	Dismissed int
}

func newReport(bot string) *Report {
	return &Report{
		Bot:     bot,
		Started: time.Now(),
	}
}

func (r *Report) finish() {
	r.Duration = time.Since(r.Started)
}

// One-line human readable summary, eg for chatops.
func (r *Report) Summary() string {
	parts := []string{
		fmt.Sprintf("pages=%d", r.Pages),
		fmt.Sprintf("accepted=%d", r.Accepted),
	}
	if r.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("skipped=%d", r.Skipped))
	}
	if r.Posts > 0 {
		parts = append(parts, fmt.Sprintf("posts=%d", r.Posts))
	}
	if r.Reblogs > 0 {
		parts = append(parts, fmt.Sprintf("reblogs=%d", r.Reblogs))
	}
	if r.Dismissed > 0 {
		parts = append(parts, fmt.Sprintf("dismissed=%d", r.Dismissed))
	}
	return fmt.Sprintf("%s done in %s: %s", r.Bot, r.Duration.Round(time.Millisecond), strings.Join(parts, " "))
}
