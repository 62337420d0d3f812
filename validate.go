package docxconv

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationRule checks one column's extracted value. Check returns a
// human-readable violation message, or "" when the value is acceptable.
type ValidationRule struct {
	Column string
	Check  func(value string) string
}

// Validator applies per-field rules to a record. Violations are advisory:
// the record keeps the offending value and is still emitted.
type Validator struct {
	Rules []ValidationRule
}

// NewValidator returns the standard rule set: the body field must fall
// within the policy's rune bounds, short identifying fields must not be
// empty.
func NewValidator(policy BodyPolicy) *Validator {
	rules := []ValidationRule{
		{
			Column: ColumnBody,
			Check: func(value string) string {
				n := utf8.RuneCountInString(value)
				if n < policy.MinRunes || n > policy.MaxRunes {
					return fmt.Sprintf("%sが%d文字です（%d〜%d文字が必要です）",
						ColumnBody, n, policy.MinRunes, policy.MaxRunes)
				}
				return ""
			},
		},
	}
	for _, column := range []string{ColumnName, ColumnDepartment, ColumnProject} {
		column := column
		rules = append(rules, ValidationRule{
			Column: column,
			Check: func(value string) string {
				if strings.TrimSpace(value) == "" {
					return fmt.Sprintf("%sが未入力です", column)
				}
				return ""
			},
		})
	}
	return &Validator{Rules: rules}
}

// Validate evaluates every rule whose column is present in the record and
// returns the violation messages. The record is not mutated.
func (v *Validator) Validate(rec *Record) []string {
	var violations []string
	for _, rule := range v.Rules {
		value, ok := rec.Get(rule.Column)
		if !ok {
			continue
		}
		if msg := rule.Check(value); msg != "" {
			violations = append(violations, msg)
		}
	}
	return violations
}
