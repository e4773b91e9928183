package object

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MarshalBlob serializes a Blob to raw bytes (identity — a blob's on-disk
// payload is exactly its tracked file content).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// MarshalCommit serializes a CommitObj to a deterministic text format:
//
//	parent1 H         (omitted for the initial commit)
//	parent2 H         (only present for a merge commit)
//	timestamp T
//	zone Z
//	tree name1 hash1
//	tree name2 hash2
//	...
//
//	message
//
// Tree entries are emitted in sorted-by-name order so that two commits with
// identical field values always serialize identically — commit_id is a hash
// of this output, so nondeterministic ordering would break content
// addressing (invariant 1 of the commit engine).
func MarshalCommit(c *CommitObj) []byte {
	var buf bytes.Buffer
	if c.Parent1 != "" {
		fmt.Fprintf(&buf, "parent1 %s\n", string(c.Parent1))
	}
	if c.Parent2 != "" {
		fmt.Fprintf(&buf, "parent2 %s\n", string(c.Parent2))
	}
	fmt.Fprintf(&buf, "timestamp %d\n", c.TimestampUnix)
	fmt.Fprintf(&buf, "zone %s\n", c.TimestampZone)

	names := make([]string, 0, len(c.Tree))
	for name := range c.Tree {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&buf, "tree %s %s\n", name, string(c.Tree[name]))
	}

	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a CommitObj from its serialized form.
func UnmarshalCommit(data []byte) (*CommitObj, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal commit: missing header/message separator")
	}
	header := string(data[:idx])
	message := string(data[idx+2:])

	c := &CommitObj{Message: message, Tree: make(map[string]Hash)}
	if header == "" {
		return c, nil
	}
	for _, line := range strings.Split(header, "\n") {
		key, rest, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unmarshal commit: malformed header line %q", line)
		}
		switch key {
		case "parent1":
			c.Parent1 = Hash(rest)
		case "parent2":
			c.Parent2 = Hash(rest)
		case "timestamp":
			ts, err := strconv.ParseInt(rest, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: bad timestamp %q: %w", rest, err)
			}
			c.TimestampUnix = ts
		case "zone":
			c.TimestampZone = rest
		case "tree":
			name, hash, ok := strings.Cut(rest, " ")
			if !ok {
				return nil, fmt.Errorf("unmarshal commit: malformed tree entry %q", rest)
			}
			c.Tree[name] = Hash(hash)
		default:
			return nil, fmt.Errorf("unmarshal commit: unknown header key %q", key)
		}
	}
	return c, nil
}
