package htmlmail

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_WrapsFragmentInBrandedLayout(t *testing.T) {
	doc, err := Render("<p>hello</p>")
	require.NoError(t, err)

	assert.Contains(t, doc, ServiceName)
	assert.Contains(t, doc, Tagline)
	assert.Contains(t, doc, "<p>hello</p>")
	assert.Contains(t, doc, fmt.Sprintf("%d", time.Now().Year()))
	assert.Contains(t, doc, "hello@loksar.com")
}

func TestFragment_EscapesUserInput(t *testing.T) {
	frag, err := Fragment("Hi <script>alert(1)</script>", "", []Row{
		{Label: "Message", Value: `<img src=x onerror=alert(1)>`},
	})
	require.NoError(t, err)

	s := string(frag)
	assert.NotContains(t, s, "<script>")
	assert.NotContains(t, s, "<img")
	assert.Contains(t, s, "&lt;script&gt;")
}

func TestFragment_OmitsEmptyParts(t *testing.T) {
	frag, err := Fragment("", "", []Row{{Label: "Name", Value: "Ann"}})
	require.NoError(t, err)

	s := string(frag)
	assert.False(t, strings.Contains(s, "<p>"))
	assert.Contains(t, s, "<td class=\"label\">Name</td><td>Ann</td>")
}

func TestFragment_RowOrderPreserved(t *testing.T) {
	frag, err := Fragment("", "", []Row{
		{Label: "First", Value: "1"},
		{Label: "Second", Value: "2"},
	})
	require.NoError(t, err)

	s := string(frag)
	assert.Less(t, strings.Index(s, "First"), strings.Index(s, "Second"))
}
