package stash

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDecodeMalformedBody(t *testing.T) {
	_, err := decodeResult(502, []byte("<html>bad gateway</html>"), "scrapeSceneURL")

	var malformed *MalformedBodyError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, 502, malformed.Status)
	require.Equal(t, "<html>bad gateway</html>", malformed.Body)
}

func TestDecodeErrorsDominateData(t *testing.T) {
	body := []byte(`{
		"errors": [{"message": "bad url", "path": ["scrapeSceneURL"]}],
		"data": {"scrapeSceneURL": {"title": "partial"}}
	}`)

	result, err := decodeResult(200, body, "scrapeSceneURL")
	require.Nil(t, result)

	var gqlErrs *GraphQLErrors
	require.ErrorAs(t, err, &gqlErrs)
	require.Len(t, gqlErrs.Errors, 1)
}

func TestDecodeEmptyVariants(t *testing.T) {
	for _, body := range []string{
		`{"data": null}`,
		`{"data": {}}`,
		`{"data": {"scrapeSceneURL": null}}`,
		`{"data": {"somethingElse": {"title": "x"}}}`,
		`{}`,
	} {
		_, err := decodeResult(200, []byte(body), "scrapeSceneURL")
		require.ErrorIs(t, err, ErrEmptyResult, "body: %s", body)
	}
}

func TestDecodeResultObject(t *testing.T) {
	body := []byte(`{"data": {"scrapeSceneURL": {"title": "X", "tags": [{"name": "a"}]}}}`)

	result, err := decodeResult(200, body, "scrapeSceneURL")
	require.NoError(t, err)

	want := map[string]any{
		"title": "X",
		"tags":  []any{map[string]any{"name": "a"}},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestDecodeResultBool(t *testing.T) {
	result, err := decodeResult(200, []byte(`{"data": {"reloadScrapers": true}}`), "reloadScrapers")
	require.NoError(t, err)
	require.Equal(t, true, result)
}

func TestReportPath(t *testing.T) {
	body := []byte(`{"errors": [{"message": "bad url", "path": ["scrapeSceneURL"]}]}`)

	_, err := decodeResult(200, body, "scrapeSceneURL")
	var gqlErrs *GraphQLErrors
	require.ErrorAs(t, err, &gqlErrs)
	require.Equal(t, "At path /scrapeSceneURL: bad url", gqlErrs.Report())
}

func TestReportPathWithIndices(t *testing.T) {
	body := []byte(`{"errors": [{"message": "boom", "path": ["scrapeSceneURL", "tags", 3]}]}`)

	_, err := decodeResult(200, body, "scrapeSceneURL")
	var gqlErrs *GraphQLErrors
	require.ErrorAs(t, err, &gqlErrs)
	require.Equal(t, "At path /scrapeSceneURL/tags/3: boom", gqlErrs.Report())
}

func TestReportLocations(t *testing.T) {
	body := []byte(`{"errors": [{
		"message": "Cannot query field",
		"locations": [{"line": 2, "column": 5}, {"line": 7, "column": 1}],
		"extensions": {"code": "GRAPHQL_VALIDATION_FAILED"}
	}]}`)

	_, err := decodeResult(200, body, "scrapeSceneURL")
	var gqlErrs *GraphQLErrors
	require.ErrorAs(t, err, &gqlErrs)
	require.Equal(t,
		"At line 2 column 5\n"+
			"  [GRAPHQL_VALIDATION_FAILED] Cannot query field\n"+
			"At line 7 column 1\n"+
			"  [GRAPHQL_VALIDATION_FAILED] Cannot query field",
		gqlErrs.Report())
}

func TestReportRawFallback(t *testing.T) {
	body := []byte(`{"errors": [{"weird": true}]}`)

	_, err := decodeResult(200, body, "scrapeSceneURL")
	var gqlErrs *GraphQLErrors
	require.ErrorAs(t, err, &gqlErrs)
	require.Equal(t, `{"weird": true}`, gqlErrs.Report())
}

func TestReportRetainsEveryError(t *testing.T) {
	body := []byte(`{"errors": [
		{"message": "first", "path": ["a"]},
		{"message": "second", "path": ["b"]}
	]}`)

	_, err := decodeResult(200, body, "scrapeSceneURL")
	var gqlErrs *GraphQLErrors
	require.ErrorAs(t, err, &gqlErrs)
	require.Len(t, gqlErrs.Errors, 2)
	require.Equal(t, "At path /a: first\nAt path /b: second", gqlErrs.Report())
	require.False(t, errors.Is(err, ErrEmptyResult))
}
