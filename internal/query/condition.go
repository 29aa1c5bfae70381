// Package query parses and evaluates single-comparison conditions of the
// form "field OP value" against documents.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jdb-tool/jdb/internal/document"
)

// Operator is a comparison operator in a condition.
type Operator string

const (
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
)

// operators in match order: two-character operators before their
// single-character prefixes so ">=" is never read as ">" then "=".
var operators = []Operator{OpEqual, OpNotEqual, OpGreaterEqual, OpLessEqual, OpGreater, OpLess}

// ParseError describes a malformed condition string.
type ParseError struct {
	Query   string
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("invalid query %q: %s", e.Query, e.Message)
}

// Condition is a parsed, immutable comparison. The operand is either a
// string literal or a number, never both.
type Condition struct {
	Field   string
	Op      Operator
	StrVal  string
	NumVal  float64
	Numeric bool
}

// Relational reports whether the operator is an ordering comparison.
func (c *Condition) Relational() bool {
	switch c.Op {
	case OpGreater, OpLess, OpGreaterEqual, OpLessEqual:
		return true
	}
	return false
}

// Parse parses a condition string such as `name == "john"` or `age > 25`.
//
// The field is a bare token of letters, digits and underscores. The
// operand is either a quoted string (single or double quotes, stripped,
// no escape processing) or a numeric literal. Ordering operators require
// a numeric operand; pairing them with a quoted string fails here rather
// than silently never matching.
func Parse(text string) (*Condition, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ParseError{Query: text, Message: "condition is empty"}
	}

	field, rest := scanField(trimmed)
	if field == "" {
		return nil, ParseError{Query: text, Message: "missing field name (letters, digits and underscores only)"}
	}

	rest = strings.TrimLeft(rest, " \t")
	op, rest, ok := scanOperator(rest)
	if !ok {
		return nil, ParseError{Query: text, Message: "expected one of ==, !=, >=, <=, >, < after the field name"}
	}

	operand := strings.TrimSpace(rest)
	if operand == "" {
		return nil, ParseError{Query: text, Message: "missing value after operator"}
	}

	cond := &Condition{Field: field, Op: op}

	if s, isString := unquote(operand); isString {
		if cond.Relational() {
			return nil, ParseError{Query: text, Message: fmt.Sprintf("operator %s requires a numeric value, got a string", op)}
		}
		cond.StrVal = s
		return cond, nil
	}

	num, err := strconv.ParseFloat(operand, 64)
	if err != nil {
		return nil, ParseError{Query: text, Message: fmt.Sprintf("value %q is neither a quoted string nor a number", operand)}
	}
	cond.NumVal = num
	cond.Numeric = true
	return cond, nil
}

// scanField splits off the leading field token.
func scanField(s string) (string, string) {
	i := 0
	for i < len(s) && isWordByte(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// scanOperator matches the longest operator prefix of s.
func scanOperator(s string) (Operator, string, bool) {
	for _, op := range operators {
		if strings.HasPrefix(s, string(op)) {
			return op, s[len(op):], true
		}
	}
	return "", s, false
}

// unquote strips matching single or double quotes. It reports whether the
// operand was a quoted string literal.
func unquote(s string) (string, bool) {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1], true
		}
	}
	return s, false
}

// Match evaluates the condition against a document.
//
// Equality is type-aware: a numeric operand only matches a numeric field
// value, a string operand only a string value. A missing field is false
// under == and true under != (the document differs from any stated
// value). Ordering operators match only when the field value is numeric;
// missing or non-numeric values are simply not matches, never errors.
func (c *Condition) Match(doc *document.Document) bool {
	value, exists := doc.Get(c.Field)

	switch c.Op {
	case OpEqual:
		return exists && c.equals(value)
	case OpNotEqual:
		return !exists || !c.equals(value)
	}

	if !exists {
		return false
	}
	fieldNum, isNum := document.NumberValue(value)
	if !isNum {
		return false
	}

	switch c.Op {
	case OpGreater:
		return fieldNum > c.NumVal
	case OpLess:
		return fieldNum < c.NumVal
	case OpGreaterEqual:
		return fieldNum >= c.NumVal
	case OpLessEqual:
		return fieldNum <= c.NumVal
	}
	return false
}

func (c *Condition) equals(value any) bool {
	if c.Numeric {
		num, ok := document.NumberValue(value)
		return ok && num == c.NumVal
	}
	s, ok := value.(string)
	return ok && s == c.StrVal
}
