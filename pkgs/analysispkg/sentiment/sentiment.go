package sentiment

import (
	"context"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////

const (
	PROVIDER_LEXICON = "lexicon"
	PROVIDER_OPENAI  = "openai"
)

// Sentiment of a text. Polarity is within [-1, 1] and Subjectivity within [0, 1].
type Sentiment struct {
	Polarity     float64 `json:"polarity" jsonschema:"description=from -1 (negative) to 1 (positive)"`
	Subjectivity float64 `json:"subjectivity" jsonschema:"description=from 0 (objective) to 1 (subjective)"`
}

type Annotator interface {
	Annotate(ctx context.Context, text string) (Sentiment, error)
}

////////////////////////////////////////////////////////////////////////////////

// New builds the annotator of the given provider, the lexicon one by default
func New(provider, model, apiKey string) (Annotator, error) {
	switch provider {
	case "", PROVIDER_LEXICON:
		return NewLexiconAnnotator(), nil
	case PROVIDER_OPENAI:
		if apiKey == "" {
			return nil, fmt.Errorf("openai sentiment provider requires an api key")
		}
		return NewOpenAIAnnotator(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unsupported sentiment provider: %s", provider)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s Sentiment) clamped() Sentiment {
	return Sentiment{
		Polarity:     clamp(s.Polarity, -1, 1),
		Subjectivity: clamp(s.Subjectivity, 0, 1),
	}
}
