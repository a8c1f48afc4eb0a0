package stash

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyResult means the server answered without errors but produced no
// usable payload: "data" was null or empty, or the operation's result root
// was missing or null.
var ErrEmptyResult = errors.New("stash: empty result")

// MalformedBodyError is returned when the response body is not JSON at
// all. The raw text and HTTP status are retained so the operator can see
// what the server actually said.
type MalformedBodyError struct {
	Status int
	Body   string
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("invalid api response (%d):\n%s", e.Status, e.Body)
}

type ErrorLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// GraphQLError is a single entry of the response's "errors" list, kept
// verbatim from the server.
type GraphQLError struct {
	Message    string          `json:"message"`
	Locations  []ErrorLocation `json:"locations"`
	Path       []any           `json:"path"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`

	raw json.RawMessage
}

func (e GraphQLError) reportLines() []string {
	if len(e.Locations) > 0 {
		var lines []string
		for _, loc := range e.Locations {
			lines = append(lines, fmt.Sprintf("At line %d column %d", loc.Line, loc.Column))
			lines = append(lines, fmt.Sprintf("  [%s] %s", e.Extensions.Code, e.Message))
		}
		return lines
	}
	if len(e.Path) > 0 {
		segments := make([]string, len(e.Path))
		for i, seg := range e.Path {
			segments[i] = pathSegment(seg)
		}
		return []string{fmt.Sprintf("At path /%s: %s", strings.Join(segments, "/"), e.Message)}
	}
	return []string{string(e.raw)}
}

func pathSegment(seg any) string {
	// json numbers decode as float64, list indices should render bare
	if f, ok := seg.(float64); ok && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprintf("%v", seg)
}

// GraphQLErrors carries the full "errors" list of a response. Every entry
// is retained, never just the first.
type GraphQLErrors struct {
	Errors []GraphQLError
}

func (e *GraphQLErrors) Error() string {
	return fmt.Sprintf("stash: %d graphql error(s)", len(e.Errors))
}

// Report renders every error for the operator, one block per entry:
// source locations with their extension code where present, a /-joined
// path otherwise, the raw error value as a last resort.
func (e *GraphQLErrors) Report() string {
	var lines []string
	for _, entry := range e.Errors {
		lines = append(lines, entry.reportLines()...)
	}
	return strings.Join(lines, "\n")
}

// decodeResult turns a raw /graphql response into the payload under
// resultRoot. The "errors" channel always dominates "data": a partial
// success is treated as a full failure.
func decodeResult(status int, body []byte, resultRoot string) (any, error) {
	var parsed struct {
		Errors []json.RawMessage          `json:"errors"`
		Data   map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &MalformedBodyError{Status: status, Body: string(body)}
	}

	if len(parsed.Errors) > 0 {
		decoded := &GraphQLErrors{}
		for _, raw := range parsed.Errors {
			var entry GraphQLError
			// a failed unmarshal leaves a zero entry, which still
			// reports via its raw value
			_ = json.Unmarshal(raw, &entry)
			entry.raw = raw
			decoded.Errors = append(decoded.Errors, entry)
		}
		return nil, decoded
	}

	if len(parsed.Data) == 0 {
		return nil, ErrEmptyResult
	}

	rawRoot, ok := parsed.Data[resultRoot]
	if !ok {
		return nil, ErrEmptyResult
	}
	var result any
	if err := json.Unmarshal(rawRoot, &result); err != nil {
		return nil, &MalformedBodyError{Status: status, Body: string(body)}
	}
	if result == nil {
		return nil, ErrEmptyResult
	}
	return result, nil
}
