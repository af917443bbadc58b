package database

import "errors"

// ErrMultipleStatements rejects query text holding more than one statement
var ErrMultipleStatements = errors.New("you can only execute one statement at a time")

// firstStatement returns query up to and including its first statement
// terminator. Anything after it other than whitespace, semicolons and
// comments yields ErrMultipleStatements. Quoted strings, quoted identifiers
// and comments never terminate a statement.
func firstStatement(query string) (string, error) {
	n := len(query)
	for i := 0; i < n; {
		switch c := query[i]; {
		case c == '\'' || c == '"' || c == '`':
			i = skipPast(query, i+1, c)
		case c == '[':
			i = skipPast(query, i+1, ']')
		case c == '-' && i+1 < n && query[i+1] == '-':
			i = skipLineComment(query, i+2)
		case c == '/' && i+1 < n && query[i+1] == '*':
			i = skipBlockComment(query, i+2)
		case c == ';':
			if hasContent(query[i+1:]) {
				return "", ErrMultipleStatements
			}
			return query[:i+1], nil
		default:
			i++
		}
	}
	return query, nil
}

// hasContent reports whether s holds anything besides separators and comments
func hasContent(s string) bool {
	n := len(s)
	for i := 0; i < n; {
		switch c := s[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == ';':
			i++
		case c == '-' && i+1 < n && s[i+1] == '-':
			i = skipLineComment(s, i+2)
		case c == '/' && i+1 < n && s[i+1] == '*':
			i = skipBlockComment(s, i+2)
		default:
			return true
		}
	}
	return false
}

// skipPast returns the index after the next occurrence of end.
// A doubled quote ('it''s') reads as a closed string followed by a new one.
func skipPast(s string, i int, end byte) int {
	for ; i < len(s); i++ {
		if s[i] == end {
			return i + 1
		}
	}
	return len(s)
}

func skipLineComment(s string, i int) int {
	for ; i < len(s); i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	return len(s)
}

func skipBlockComment(s string, i int) int {
	for ; i+1 < len(s); i++ {
		if s[i] == '*' && s[i+1] == '/' {
			return i + 2
		}
	}
	return len(s)
}
