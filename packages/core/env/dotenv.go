package env

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// Entry is one KEY=VALUE assignment as written in the file
type Entry struct {
	Key   string
	Value string
	// Quote is the quote character that wrapped the value, or 0
	Quote byte
	Line  int
}

// Literal reports whether the value must be used verbatim (single quotes)
func (e Entry) Literal() bool {
	return e.Quote == '\''
}

// Parse reads dotenv content and returns its assignments in file order.
// Supports: KEY=value, export KEY=value, "double", 'single' and `backtick`
// quoted values (quoted values may span lines), # comments, and inline
// comments after whitespace in unquoted values.
func Parse(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading env content: %w", err)
	}
	return ParseString(string(data)), nil
}

// ParseString is Parse for in-memory content
func ParseString(content string) []Entry {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")

	var entries []Entry

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimPrefix(line, "export ")

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		if !keyPattern.MatchString(key) {
			continue
		}

		entry := Entry{Key: key, Line: i + 1}
		value = strings.TrimLeft(value, " \t")

		if q := quoteOf(value); q != 0 {
			body, consumed, ok := readQuoted(value[1:], lines[i+1:], q)
			if ok {
				entry.Quote = q
				entry.Value = body
				if q == '"' {
					entry.Value = unescapeDouble(body)
				}
				i += consumed
				entries = append(entries, entry)
				continue
			}
		}

		entry.Value = stripInlineComment(value)
		entries = append(entries, entry)
	}

	return entries
}

func quoteOf(value string) byte {
	if value == "" {
		return 0
	}
	switch value[0] {
	case '"', '\'', '`':
		return value[0]
	}
	return 0
}

// readQuoted finds the closing quote starting in rest and, if needed, in the
// following lines. It returns the body, the number of extra lines consumed,
// and whether a closing quote was found.
func readQuoted(rest string, following []string, q byte) (string, int, bool) {
	var b strings.Builder
	current := rest

	for consumed := 0; ; consumed++ {
		if idx := closingQuote(current, q); idx >= 0 {
			b.WriteString(current[:idx])
			return b.String(), consumed, true
		}
		if consumed >= len(following) {
			return "", 0, false
		}
		b.WriteString(current)
		b.WriteByte('\n')
		current = following[consumed]
	}
}

func closingQuote(s string, q byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && q == '"' {
			i++
			continue
		}
		if s[i] == q {
			return i
		}
	}
	return -1
}

// unescapeDouble resolves escapes valid inside double quotes. \$ is kept
// so expansion can tell an escaped dollar from a reference.
func unescapeDouble(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '"', '\\':
			b.WriteByte(s[i+1])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i+1])
		}
		i++
	}
	return b.String()
}

func stripInlineComment(value string) string {
	for i := 0; i < len(value); i++ {
		if value[i] == '#' && i > 0 && (value[i-1] == ' ' || value[i-1] == '\t') {
			value = value[:i]
			break
		}
	}
	return strings.TrimSpace(value)
}
