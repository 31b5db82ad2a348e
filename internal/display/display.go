// Package display normalizes loosely structured form-field values into
// human-readable strings for the notification email bodies. Booking forms
// submit JSON of no fixed schema: strings, numbers, arrays, and small ad hoc
// objects whose display value hides behind keys like "label" or "value".
package display

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// NotProvided is the placeholder for absent, null or empty fields.
	NotProvided = "N/A"
	// Provided is the placeholder for objects no extraction rule matched.
	Provided = "Provided"
)

// Value converts a decoded JSON value of unknown shape into a display string.
// It is pure; recursion depth is bounded by the input's nesting.
func Value(v any) string {
	switch t := v.(type) {
	case nil:
		return NotProvided
	case string:
		if t == "" {
			return NotProvided
		}
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		return fromSequence(t)
	case map[string]any:
		return fromObject(t)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func fromSequence(seq []any) string {
	if len(seq) == 0 {
		return NotProvided
	}
	parts := make([]string, 0, len(seq))
	for _, item := range seq {
		parts = append(parts, Value(item))
	}
	return strings.Join(parts, ", ")
}

// extractionRule is one named attempt at pulling a display value out of an
// ad hoc object. Rules run in declaration order; the first hit wins.
type extractionRule struct {
	name    string
	extract func(obj map[string]any) (string, bool)
}

// objectRules is assigned in init rather than a package-level initializer to
// break the objectRules -> fieldValue -> Value -> fromObject cycle.
var objectRules []extractionRule

func init() {
	objectRules = []extractionRule{
		{name: "label", extract: fieldValue("label")},
		{name: "value", extract: fieldValue("value")},
		{name: "name", extract: fieldValue("name")},
		{name: "id-unless-other", extract: idUnlessOther},
		{name: "other", extract: fieldValue("other")},
		{name: "first-string", extract: firstStringValue},
	}
}

func fromObject(obj map[string]any) string {
	for _, rule := range objectRules {
		if s, ok := rule.extract(obj); ok {
			return s
		}
	}
	return Provided
}

// fieldValue extracts the named field when it formats to something non-empty.
func fieldValue(key string) func(map[string]any) (string, bool) {
	return func(obj map[string]any) (string, bool) {
		raw, ok := obj[key]
		if !ok || raw == nil {
			return "", false
		}
		s := Value(raw)
		if s == NotProvided {
			return "", false
		}
		return s, true
	}
}

// idUnlessOther extracts the id field, skipping the sentinel "other" so the
// free-text companion field can take over.
func idUnlessOther(obj map[string]any) (string, bool) {
	s, ok := fieldValue("id")(obj)
	if !ok || s == "other" {
		return "", false
	}
	return s, true
}

// firstStringValue keys are sorted so the fallback stays deterministic.
func firstStringValue(obj map[string]any) (string, bool) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// BestDays formats the "best available days" booking field. The client sends
// either a plain list of days or an object holding the list under bestDays
// with an optional free-text other entry.
func BestDays(v any) string {
	if seq, ok := v.([]any); ok {
		return fromSequence(seq)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return Value(v)
	}
	nested, ok := obj["bestDays"].([]any)
	if !ok {
		return Value(v)
	}
	s := fromSequence(nested)
	if other, ok := obj["other"].(string); ok && other != "" {
		s += " (Other: " + other + ")"
	}
	return s
}

// CurrentCleaner formats the "current cleaner" booking field, which may wrap
// its display text in a currentCleaner sub-value with a free-text companion.
func CurrentCleaner(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return Value(v)
	}
	raw, ok := obj["currentCleaner"]
	if !ok {
		return Value(v)
	}
	s := Value(raw)
	if other, ok := obj["other"].(string); ok && other != "" {
		s += " (" + other + ")"
	}
	return s
}

// CleaningType formats the cleaning type with the sibling free-text field the
// form submits alongside it.
func CleaningType(v, other any) string {
	s := Value(v)
	if other == nil {
		return s
	}
	if extra := Value(other); extra != NotProvided {
		s += " (" + extra + ")"
	}
	return s
}
