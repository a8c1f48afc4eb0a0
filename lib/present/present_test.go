package present

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func sceneFixture() map[string]any {
	return map[string]any{
		"title":      "X",
		"details":    nil,
		"url":        "u",
		"date":       "2020-01-01",
		"image":      nil,
		"studio":     nil,
		"tags":       []any{},
		"performers": []any{},
		"movies":     []any{},
		"galleryId":  float64(42),
	}
}

func TestWriteSceneReport(t *testing.T) {
	var out strings.Builder
	image := WriteScene(&out, sceneFixture())

	want := strings.Join([]string{
		"Title: 'X'",
		"Date: '2020-01-01'",
		"Image: No",
		"URL: 'u'",
		"Details: None",
		"Studio: None",
		"Tags (0):",
		"  ",
		"Performers (0):",
		"  ",
		"Movies (0):",
		"  ",
		"",
		"EXTRA DATA:",
		"{",
		`  "galleryId": 42`,
		"}",
		"",
	}, "\n")
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("unexpected report (-want +got):\n%s", diff)
	}
	require.Empty(t, image, "a null image must not trigger a preview")
}

func TestWriteSceneDoesNotMutateInput(t *testing.T) {
	fields := sceneFixture()
	WriteScene(&strings.Builder{}, fields)
	if diff := cmp.Diff(sceneFixture(), fields); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestWriteScenePopulatedFields(t *testing.T) {
	var out strings.Builder
	image := WriteScene(&out, map[string]any{
		"title":   "Big Scene",
		"details": "line one\nline two",
		"url":     "https://example.com/s",
		"date":    "2021-06-01",
		"image":   "data:image/png;base64,aGk=",
		"studio":  map[string]any{"name": "Studio A", "url": "https://studio.example"},
		"tags": []any{
			map[string]any{"name": "one"},
			map[string]any{"name": "two"},
		},
		"performers": []any{
			map[string]any{"name": "P1", "url": "https://p1.example"},
			map[string]any{"name": "P2", "url": "https://p2.example"},
		},
		"movies": []any{
			map[string]any{"name": "M1"},
		},
	})

	report := out.String()
	require.Contains(t, report, "Image: Yes")
	require.Contains(t, report, "Details: {\n  line one\n  line two\n}")
	require.Contains(t, report, "Studio: ('Studio A', 'https://studio.example')")
	require.Contains(t, report, "Tags (2):\n  'one', 'two'")
	require.Contains(t, report, "Performers (2):\n  ('P1', 'https://p1.example')\n  ('P2', 'https://p2.example')")
	require.Contains(t, report, "Movies (1):\n  ('M1', None)")
	require.NotContains(t, report, "EXTRA DATA")
	require.Equal(t, "data:image/png;base64,aGk=", image)
}

func TestWriteSceneNullLists(t *testing.T) {
	var out strings.Builder
	WriteScene(&out, map[string]any{
		"title":      "X",
		"tags":       nil,
		"performers": nil,
		"movies":     nil,
	})

	report := out.String()
	require.Contains(t, report, "Tags (0):\n  None")
	require.Contains(t, report, "Performers (0):\n  None")
	require.Contains(t, report, "Movies (0):\n  None")
}

func TestWriteSceneKnownAndExtraArePartition(t *testing.T) {
	fields := map[string]any{
		"title":     "X",
		"rating":    float64(5),
		"galleryId": float64(42),
	}
	var out strings.Builder
	WriteScene(&out, fields)

	report := out.String()
	_, extra, found := strings.Cut(report, "EXTRA DATA:")
	require.True(t, found)
	// known fields never reappear in the extra bucket, extras always do
	require.NotContains(t, extra, "title")
	require.Contains(t, extra, `"rating": 5`)
	require.Contains(t, extra, `"galleryId": 42`)
}

func TestWriteGalleryReport(t *testing.T) {
	var out strings.Builder
	WriteGallery(&out, map[string]any{
		"title":      "G",
		"details":    nil,
		"url":        "https://example.com/g",
		"date":       nil,
		"studio":     map[string]any{"name": "S"},
		"tags":       []any{map[string]any{"name": "t"}},
		"performers": []any{},
	})

	report := out.String()
	require.Contains(t, report, "Title: 'G'")
	require.Contains(t, report, "Date: None")
	require.Contains(t, report, "Studio: ('S', None)")
	require.Contains(t, report, "Tags (1):\n  't'")
	require.NotContains(t, report, "Image:")
	require.NotContains(t, report, "Movies")
}

func TestTagChunking(t *testing.T) {
	items := make([]string, 15)
	groups := chunk(items, tagsPerLine)

	var sizes []int
	for _, g := range groups {
		sizes = append(sizes, len(g))
	}
	require.Equal(t, []int{7, 7, 1}, sizes)
}

func TestTagListWrapsLongLists(t *testing.T) {
	var tags []any
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		tags = append(tags, map[string]any{"name": name})
	}
	require.Equal(t, "'a', 'b', 'c', 'd', 'e', 'f', 'g'\n  'h'", tagList(tags))
}

func TestQuoteEscapes(t *testing.T) {
	require.Equal(t, `'it\'s'`, quote("it's"))
	require.Equal(t, "None", quote(nil))
}
