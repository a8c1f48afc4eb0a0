package stash

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOperationCatalog(t *testing.T) {
	for kind, want := range map[OperationKind]struct {
		name       string
		resultRoot string
	}{
		OpReloadScrapers:   {"ReloadScrapers", "reloadScrapers"},
		OpScrapeSceneURL:   {"ScrapeSceneURL", "scrapeSceneURL"},
		OpScrapeGalleryURL: {"ScrapeGalleryURL", "scrapeGalleryURL"},
	} {
		op := BuildOperation(kind)
		require.Equal(t, want.name, op.Name)
		require.Equal(t, want.resultRoot, op.ResultRoot)
		// the document must declare the operation name and request the
		// result root it promises
		require.Contains(t, op.Document, fmt.Sprintf(" %s", op.Name))
		require.Contains(t, op.Document, op.ResultRoot)
	}
}

func TestScrapeDocumentsDeclareURLVariable(t *testing.T) {
	require.Contains(t, BuildOperation(OpScrapeSceneURL).Document, "$url: String!")
	require.Contains(t, BuildOperation(OpScrapeGalleryURL).Document, "$url: String!")
	require.NotContains(t, BuildOperation(OpReloadScrapers).Document, "$url")
}

func TestSceneDocumentFields(t *testing.T) {
	doc := BuildOperation(OpScrapeSceneURL).Document
	for _, field := range []string{"title", "details", "url", "date", "image", "studio", "tags", "performers", "movies"} {
		require.Contains(t, doc, field)
	}
	gallery := BuildOperation(OpScrapeGalleryURL).Document
	require.NotContains(t, gallery, "image")
	require.NotContains(t, gallery, "movies")
}

func TestNewEnvelope(t *testing.T) {
	op := BuildOperation(OpScrapeSceneURL)

	a := NewEnvelope(op, map[string]string{"url": "https://example.com/a"})
	b := NewEnvelope(op, map[string]string{"url": "https://example.com/b"})

	// only the bound variable differs between two envelopes
	require.Equal(t, a.OperationName, b.OperationName)
	require.Equal(t, a.Query, b.Query)
	require.NotEqual(t, a.Variables["url"], b.Variables["url"])

	require.Equal(t, op.Name, a.OperationName)
	require.True(t, strings.HasPrefix(a.Query, "query ScrapeSceneURL"))
}

func TestNewEnvelopeReloadHasNoVariables(t *testing.T) {
	envelope := NewEnvelope(BuildOperation(OpReloadScrapers), nil)
	require.NotNil(t, envelope.Variables)
	require.Empty(t, envelope.Variables)
}
