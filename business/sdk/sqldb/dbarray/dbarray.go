// Package dbarray provides support for postgres array types.
package dbarray

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// String represents a postgres text array for use with sqlx named parameters.
type String []string

// Value implements the driver.Valuer interface.
func (a String) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}

	if len(a) == 0 {
		return "{}", nil
	}

	var b strings.Builder
	b.WriteByte('{')
	for i, s := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`))
		b.WriteByte('"')
	}
	b.WriteByte('}')

	return b.String(), nil
}

// Scan implements the sql.Scanner interface.
func (a *String) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*a = nil
		return nil

	case []byte:
		return a.scanString(string(src))

	case string:
		return a.scanString(src)
	}

	return fmt.Errorf("unsupported scan type for dbarray.String: %T", src)
}

func (a *String) scanString(src string) error {
	src = strings.TrimSpace(src)
	if !strings.HasPrefix(src, "{") || !strings.HasSuffix(src, "}") {
		return fmt.Errorf("malformed array literal: %q", src)
	}

	inner := src[1 : len(src)-1]
	if inner == "" {
		*a = String{}
		return nil
	}

	var (
		elems   []string
		cur     strings.Builder
		quoted  bool
		escaped bool
	)

	flush := func() {
		elems = append(elems, cur.String())
		cur.Reset()
	}

	for _, r := range inner {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()

	*a = elems

	return nil
}
