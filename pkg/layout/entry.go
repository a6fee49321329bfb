package layout

import (
	"strings"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
)

const (
	commandPrefix = "@"
	tagSeparator  = ":"
	notPrefix     = "!"
)

// Command is a control instruction placed in a row instead of a logo id.
type Command int

const (
	// CommandNone marks an entry that references a logo.
	CommandNone Command = iota
	// CommandEnd ends the row: later entries on the same row are ignored.
	CommandEnd
)

// String returns the command's document spelling.
func (c Command) String() string {
	switch c {
	case CommandEnd:
		return "@end"
	default:
		return ""
	}
}

// Entry is one parsed slot of a row: either a logo id or a command, plus the
// tags scoped to this placement.
type Entry struct {
	Raw     string
	ID      string
	Command Command
	Tags    TagSet
	NotTags TagSet
}

// IsCommand reports whether the entry is a control command.
func (e Entry) IsCommand() bool { return e.Command != CommandNone }

// IsSpacer reports whether the entry has neither a logo id nor a command.
// Spacers hold a column but never draw anything.
func (e Entry) IsSpacer() bool { return e.ID == "" && e.Command == CommandNone }

// ParseEntry parses a raw slot string such as "app", "app:promo",
// "app:!beta" or "@end". Segments after the first are tags; a leading "!"
// makes a tag negative. Empty tag segments are ignored.
//
// An unknown command fails with an INVALID_ENTRY error.
func ParseEntry(raw string) (Entry, error) {
	parts := strings.Split(raw, tagSeparator)
	e := Entry{Raw: raw}

	head := strings.TrimSpace(parts[0])
	if name, ok := strings.CutPrefix(head, commandPrefix); ok {
		cmd, err := parseCommand(name)
		if err != nil {
			return Entry{}, err
		}
		e.Command = cmd
	} else {
		e.ID = head
	}

	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if neg, ok := strings.CutPrefix(p, notPrefix); ok {
			if neg != "" {
				e.NotTags = e.NotTags.With(neg)
			}
			continue
		}
		if p != "" {
			e.Tags = e.Tags.With(p)
		}
	}
	return e, nil
}

func parseCommand(name string) (Command, error) {
	switch strings.ToLower(name) {
	case "end":
		return CommandEnd, nil
	default:
		return CommandNone, errors.New(errors.ErrCodeInvalidEntry, "unknown command %q", commandPrefix+name)
	}
}

// ParseEntries parses a row of raw slot strings, failing on the first bad entry.
func ParseEntries(raws []string) ([]Entry, error) {
	out := make([]Entry, 0, len(raws))
	for _, raw := range raws {
		e, err := ParseEntry(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// truncateAtEnd drops the first @end entry and everything after it.
func truncateAtEnd(entries []Entry) []Entry {
	for i, e := range entries {
		if e.Command == CommandEnd {
			return entries[:i]
		}
	}
	return entries
}
