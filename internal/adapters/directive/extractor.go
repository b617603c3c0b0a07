// Package directive extracts #Include references from script text.
package directive

import (
	"bufio"
	"strings"
)

const (
	includeKeyword = "#include"
	againSuffix    = "again"
	commentMarker  = ';'
	escapeChar     = '`'
	ignoreOption   = "*i"
)

// Extract returns the raw include references found in text, in order of first
// appearance and without duplicates. It performs no resolution and no I/O.
func Extract(text string) []string {
	var includes []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if _, dup := seen[raw]; dup {
			continue
		}
		seen[raw] = struct{}{}
		includes = append(includes, raw)
	}

	return includes
}

// parseLine returns the raw include on a single line, if any.
func parseLine(line string) (string, bool) {
	line = strings.TrimSpace(stripComment(line))
	rest, ok := cutKeyword(line)
	if !ok {
		return "", false
	}

	payload := strings.TrimSpace(rest)
	// v1 allows a comma after the directive name.
	payload = strings.TrimSpace(strings.TrimPrefix(payload, ","))
	payload = strings.ReplaceAll(payload, "`;", ";")

	return classify(stripIgnoreOption(payload))
}

// cutKeyword strips a leading #Include or #IncludeAgain keyword.
func cutKeyword(line string) (string, bool) {
	if len(line) < len(includeKeyword) || !strings.EqualFold(line[:len(includeKeyword)], includeKeyword) {
		return "", false
	}
	rest := line[len(includeKeyword):]
	if len(rest) >= len(againSuffix) && strings.EqualFold(rest[:len(againSuffix)], againSuffix) {
		rest = rest[len(againSuffix):]
	}
	if rest == "" {
		return "", true
	}
	switch rest[0] {
	case ' ', '\t', ',':
		return rest, true
	default:
		return "", false
	}
}

// stripComment cuts line at the first comment marker not escaped by a backtick.
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] == commentMarker && (i == 0 || line[i-1] != escapeChar) {
			return line[:i]
		}
	}
	return line
}

// stripIgnoreOption removes the *i flag that makes a missing include non-fatal.
// It may appear before the path or, for quoted paths, inside the quotes.
func stripIgnoreOption(payload string) string {
	quoted := strings.HasPrefix(payload, `"`)
	body := payload
	if quoted {
		body = payload[1:]
	}
	if len(body) < 3 || !strings.EqualFold(body[:2], ignoreOption) || (body[2] != ' ' && body[2] != '\t') {
		return payload
	}
	body = strings.TrimSpace(body[3:])
	if quoted {
		return `"` + body
	}
	return body
}

// classify picks the raw include out of a directive payload.
func classify(payload string) (string, bool) {
	if payload == "" {
		return "", false
	}

	switch payload[0] {
	case '<':
		if end := strings.IndexByte(payload, '>'); end > 1 {
			return payload[:end+1], true
		}
	case '"':
		body := payload[1:]
		if end := strings.IndexByte(body, '"'); end >= 0 {
			body = body[:end]
		}
		body = strings.TrimSpace(body)
		return body, body != ""
	}

	fields := strings.Fields(payload)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}
