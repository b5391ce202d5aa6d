// Package textblock edits marker-delimited blocks inside plain-text files,
// such as the hook blocks aether maintains in shell profiles.
package textblock

import (
	"errors"
	"strings"
)

var ErrMalformedMarkers = errors.New("block markers are malformed")

// Upsert inserts block into content, replacing an existing begin/end-delimited
// block if one is present. It reports whether content changed.
func Upsert(content, begin, end, block string) (string, bool, error) {
	if strings.Contains(content, begin) || strings.Contains(content, end) {
		start := strings.Index(content, begin)
		finish := strings.Index(content, end)
		if start == -1 || finish == -1 || finish < start {
			return "", false, ErrMalformedMarkers
		}
		afterEnd := finish + len(end)
		if content[start:afterEnd] == block {
			return content, false, nil
		}
		return content[:start] + block + content[afterEnd:], true, nil
	}

	if content == "" {
		return block + "\n", true, nil
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + block + "\n", true, nil
}

// Remove deletes the begin/end-delimited block from content, along with the
// blank line Upsert leaves around it. It reports whether content changed.
func Remove(content, begin, end string) (string, bool, error) {
	start := strings.Index(content, begin)
	finish := strings.Index(content, end)
	if start == -1 && finish == -1 {
		return content, false, nil
	}
	if start == -1 || finish == -1 || finish < start {
		return "", false, ErrMalformedMarkers
	}

	afterEnd := finish + len(end)
	head := content[:start]
	tail := content[afterEnd:]

	head = strings.TrimRight(head, "\n")
	tail = strings.TrimLeft(tail, "\n")
	switch {
	case head == "" && tail == "":
		return "", true, nil
	case head == "":
		return tail, true, nil
	case tail == "":
		return head + "\n", true, nil
	default:
		return head + "\n\n" + tail, true, nil
	}
}

// Contains reports whether content holds a well-formed begin/end block.
func Contains(content, begin, end string) bool {
	start := strings.Index(content, begin)
	finish := strings.Index(content, end)
	return start != -1 && finish != -1 && finish > start
}
