package builtin

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"movieetl/internal/frame"
)

// TrimText trims surrounding whitespace from every string cell of Column.
// Null and non-string cells are left as they are.
type TrimText struct {
	Column string
}

func (s TrimText) Name() string { return "trim_" + s.Column }

func (s TrimText) Apply(t *frame.Table) error {
	if !t.Map(s.Column, func(v any) any {
		if str, ok := v.(string); ok {
			return strings.TrimSpace(str)
		}
		return v
	}) {
		return fmt.Errorf("trim: no column %q", s.Column)
	}
	return nil
}

// TitleCase rewrites every string cell of Column so each word starts with
// an upper-case letter and continues in lower case ("sci-fi" -> "Sci-Fi").
type TitleCase struct {
	Column string
}

func (s TitleCase) Name() string { return "title_case_" + s.Column }

func (s TitleCase) Apply(t *frame.Table) error {
	caser := cases.Title(language.Und)
	if !t.Map(s.Column, func(v any) any {
		if str, ok := v.(string); ok {
			return caser.String(str)
		}
		return v
	}) {
		return fmt.Errorf("title case: no column %q", s.Column)
	}
	return nil
}
