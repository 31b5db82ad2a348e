package display

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_EmptyInputs(t *testing.T) {
	assert.Equal(t, "N/A", Value(nil))
	assert.Equal(t, "N/A", Value(""))
	assert.Equal(t, "N/A", Value([]any{}))
}

func TestValue_Primitives(t *testing.T) {
	assert.Equal(t, "hello", Value("hello"))
	assert.Equal(t, "3", Value(float64(3)))
	assert.Equal(t, "3.5", Value(3.5))
	assert.Equal(t, "7", Value(7))
	assert.Equal(t, "true", Value(true))
}

func TestValue_Sequence(t *testing.T) {
	assert.Equal(t, "Mon, Wed", Value([]any{"Mon", "Wed"}))
	assert.Equal(t, "1, two, N/A", Value([]any{float64(1), "two", nil}))
}

func TestValue_ObjectRulePriority(t *testing.T) {
	// label wins over value
	assert.Equal(t, "X", Value(map[string]any{"label": "X", "value": "Y"}))
	assert.Equal(t, "Y", Value(map[string]any{"value": "Y", "name": "Z"}))
	assert.Equal(t, "Z", Value(map[string]any{"name": "Z"}))
}

func TestValue_IdSkipsOtherSentinel(t *testing.T) {
	assert.Equal(t, "Custom", Value(map[string]any{"id": "other", "other": "Custom"}))
	assert.Equal(t, "foo", Value(map[string]any{"id": "foo"}))
}

func TestValue_ObjectFallbacks(t *testing.T) {
	// empty label falls through to value
	assert.Equal(t, "Y", Value(map[string]any{"label": "", "value": "Y"}))
	// no known key: first string value by sorted key
	assert.Equal(t, "abc", Value(map[string]any{"zz": "def", "aa": "abc"}))
	// nothing usable
	assert.Equal(t, "Provided", Value(map[string]any{"n": float64(1)}))
}

func TestValue_DecodedJSON(t *testing.T) {
	var v any
	require.NoError(t, json.Unmarshal([]byte(`{"label":"Weekly","id":"weekly"}`), &v))
	assert.Equal(t, "Weekly", Value(v))
}

func TestBestDays(t *testing.T) {
	assert.Equal(t, "Mon, Wed", BestDays([]any{"Mon", "Wed"}))

	withOther := map[string]any{
		"bestDays": []any{"Mon", "Wed"},
		"other":    "evenings",
	}
	assert.Equal(t, "Mon, Wed (Other: evenings)", BestDays(withOther))

	noOther := map[string]any{"bestDays": []any{"Fri"}}
	assert.Equal(t, "Fri", BestDays(noOther))

	// no nested list falls back to the generic formatter
	assert.Equal(t, "Anytime", BestDays(map[string]any{"label": "Anytime"}))
	assert.Equal(t, "N/A", BestDays(nil))
}

func TestCurrentCleaner(t *testing.T) {
	wrapped := map[string]any{"currentCleaner": "Yes", "other": "agency"}
	assert.Equal(t, "Yes (agency)", CurrentCleaner(wrapped))

	assert.Equal(t, "No", CurrentCleaner(map[string]any{"currentCleaner": "No"}))
	assert.Equal(t, "Self", CurrentCleaner("Self"))
	assert.Equal(t, "X", CurrentCleaner(map[string]any{"label": "X"}))
}

func TestCleaningType(t *testing.T) {
	assert.Equal(t, "Deep clean", CleaningType("Deep clean", nil))
	assert.Equal(t, "Deep clean (ovens too)", CleaningType("Deep clean", "ovens too"))
	assert.Equal(t, "Standard", CleaningType(map[string]any{"label": "Standard"}, ""))
}
