package entity

type InputField string

const (
	FieldAPIKey InputField = "api_key"
	FieldTopic  InputField = "topic"
)

type OutcomeKind int

const (
	OutcomeMissingInput OutcomeKind = iota
	OutcomeSucceeded
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeMissingInput:
		return "missing_input"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one generation. Exactly one of Missing, Article
// or Detail is meaningful, selected by Kind.
type Outcome struct {
	Kind    OutcomeKind
	Missing InputField
	Article Article
	Detail  string
}

func MissingInput(field InputField) Outcome {
	return Outcome{Kind: OutcomeMissingInput, Missing: field}
}

func Succeeded(article Article) Outcome {
	return Outcome{Kind: OutcomeSucceeded, Article: article}
}

func Failed(err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Detail: err.Error()}
}

// ValidateRequest reports the first missing field, API key before topic.
// Only empty values are missing; whitespace is passed through as given.
func ValidateRequest(req ArticleRequest) (InputField, bool) {
	if req.APIKey == "" {
		return FieldAPIKey, false
	}
	if req.Topic == "" {
		return FieldTopic, false
	}
	return "", true
}
