package repo

import (
	"fmt"
	"strings"
	"time"

	"github.com/dcgit/gitlet/pkg/object"
)

// logDateLayout renders a commit's timestamp the same way `git log`'s
// default format does: "Mon Jan 2 15:04:05 2006 -0700".
const logDateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// FormatLogEntry renders one `===`-delimited log entry for the given commit.
func FormatLogEntry(id object.Hash, c *object.CommitObj) string {
	var b strings.Builder
	fmt.Fprintln(&b, "===")
	fmt.Fprintf(&b, "commit %s\n", id)
	if c.Parent2 != "" {
		fmt.Fprintf(&b, "Merge: %s %s\n", c.Parent1.Short(7), c.Parent2.Short(7))
	}
	t := time.Unix(c.TimestampUnix, 0)
	loc := parseZoneOffset(c.TimestampZone)
	if loc != nil {
		t = t.In(loc)
	}
	fmt.Fprintf(&b, "Date: %s\n", t.Format(logDateLayout))
	fmt.Fprintln(&b, c.Message)
	return b.String()
}

// parseZoneOffset builds a fixed *time.Location from a "+HHMM"/"-HHMM"
// offset string so a commit always prints in the zone it was made in,
// regardless of the machine running `log`.
func parseZoneOffset(zone string) *time.Location {
	t, err := time.Parse("-0700", zone)
	if err != nil {
		return nil
	}
	_, offset := t.Zone()
	return time.FixedZone(zone, offset)
}

// Log walks first-parent history starting at HEAD, newest first.
func (r *Repo) Log() ([]string, error) {
	h, err := r.readHead()
	if err != nil {
		return nil, err
	}

	var entries []string
	current := h.Commit
	for current != "" {
		c, err := r.Store.ReadCommit(current)
		if err != nil {
			return nil, fmt.Errorf("log: read commit %s: %w", current, err)
		}
		entries = append(entries, FormatLogEntry(current, c))
		current = c.Parent1
	}
	return entries, nil
}

// GlobalLog returns a log entry for every stored commit, in no particular
// order.
func (r *Repo) GlobalLog() ([]string, error) {
	ids, err := r.Store.ListCommits()
	if err != nil {
		return nil, err
	}
	entries := make([]string, 0, len(ids))
	for _, id := range ids {
		c, err := r.Store.ReadCommit(id)
		if err != nil {
			return nil, fmt.Errorf("global-log: read commit %s: %w", id, err)
		}
		entries = append(entries, FormatLogEntry(id, c))
	}
	return entries, nil
}

// Find returns the ids of every stored commit whose message equals query
// exactly, one per line in the CLI's expected output. Fails if none match.
func (r *Repo) Find(query string) ([]object.Hash, error) {
	ids, err := r.Store.ListCommits()
	if err != nil {
		return nil, err
	}
	var matches []object.Hash
	for _, id := range ids {
		c, err := r.Store.ReadCommit(id)
		if err != nil {
			return nil, fmt.Errorf("find: read commit %s: %w", id, err)
		}
		if c.Message == query {
			matches = append(matches, id)
		}
	}
	if len(matches) == 0 {
		return nil, NewUserError("Found no commit with that message.")
	}
	return matches, nil
}
