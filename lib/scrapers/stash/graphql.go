package stash

// OperationKind selects one of the fixed GraphQL operations this client
// knows how to send. The schema surface is small and static, so the
// documents are plain literals rather than anything composed at runtime.
type OperationKind int

const (
	OpReloadScrapers OperationKind = iota
	OpScrapeSceneURL
	OpScrapeGalleryURL
)

// Operation is an immutable GraphQL document plus the identifiers needed
// to address it and unwrap its result.
type Operation struct {
	// Name is sent as operationName and must match the name declared
	// inside Document.
	Name string
	// ResultRoot is the top-level key under the response's "data" object
	// holding this operation's payload.
	ResultRoot string
	// Document is the full GraphQL document text.
	Document string
}

const reloadScrapersDocument = `mutation ReloadScrapers {
    reloadScrapers
}`

const scrapeSceneURLDocument = `query ScrapeSceneURL($url: String!) {
    scrapeSceneURL(url: $url) {
        title
        details
        url
        date
        image

        studio {
            name
        }

        tags {
            name
        }

        performers {
            name
            url
        }

        movies {
            name
        }
    }
}`

const scrapeGalleryURLDocument = `query ScrapeGalleryURL($url: String!) {
    scrapeGalleryURL(url: $url) {
        title
        details
        url
        date

        studio {
            name
        }

        tags {
            name
        }

        performers {
            name
            url
        }
    }
}`

var operations = map[OperationKind]Operation{
	OpReloadScrapers: {
		Name:       "ReloadScrapers",
		ResultRoot: "reloadScrapers",
		Document:   reloadScrapersDocument,
	},
	OpScrapeSceneURL: {
		Name:       "ScrapeSceneURL",
		ResultRoot: "scrapeSceneURL",
		Document:   scrapeSceneURLDocument,
	},
	OpScrapeGalleryURL: {
		Name:       "ScrapeGalleryURL",
		ResultRoot: "scrapeGalleryURL",
		Document:   scrapeGalleryURLDocument,
	},
}

// BuildOperation returns the catalog entry for a kind. It is total over
// the three declared kinds.
func BuildOperation(kind OperationKind) Operation {
	return operations[kind]
}

// Envelope is the JSON body posted to the /graphql endpoint.
type Envelope struct {
	OperationName string            `json:"operationName"`
	Query         string            `json:"query"`
	Variables     map[string]string `json:"variables"`
}

// NewEnvelope binds variables into an operation. Variables are attached
// as-is; which keys are valid is a property of the static documents
// (`url` for the scrape queries, none for reload), not re-validated here.
func NewEnvelope(op Operation, variables map[string]string) Envelope {
	if variables == nil {
		variables = map[string]string{}
	}
	return Envelope{
		OperationName: op.Name,
		Query:         op.Document,
		Variables:     variables,
	}
}
