package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	log "github.com/sirupsen/logrus"
)

const (
	DEFAULT_OPENAI_MODEL = "gpt-4o-mini"

	openAIMaxAttempts = 3
	openAIMaxOutput   = 200
)

const sentimentInstructions = `You rate the sentiment of a social media post about a traded asset.
Return polarity from -1 (very negative) to 1 (very positive) and subjectivity
from 0 (purely factual) to 1 (purely opinion). Return only the JSON object.`

var sentimentSchema = generateSchema[Sentiment]()

////////////////////////////////////////////////////////////////////////////////

// OpenAIAnnotator asks a responses model for a strict json sentiment object
type OpenAIAnnotator struct {
	client *openai.Client
	model  string
	waits  []time.Duration
}

func NewOpenAIAnnotator(apiKey, model string, opts ...option.RequestOption) *OpenAIAnnotator {
	if model == "" {
		model = DEFAULT_OPENAI_MODEL
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(opts...)
	return &OpenAIAnnotator{
		client: &client,
		model:  model,
		waits:  []time.Duration{5 * time.Second, 30 * time.Second},
	}
}

func (a *OpenAIAnnotator) Annotate(ctx context.Context, text string) (Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return Sentiment{}, nil
	}

	params := responses.ResponseNewParams{
		Model:           a.model,
		MaxOutputTokens: openai.Int(openAIMaxOutput),
		Instructions:    openai.String(sentimentInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "Sentiment",
					Schema:      sentimentSchema,
					Strict:      openai.Bool(true),
					Description: openai.String("Sentiment JSON"),
					Type:        "json_schema",
				},
			},
		},
	}

	resp, err := a.callWithRetry(ctx, params)
	if err != nil {
		return Sentiment{}, err
	}

	var out Sentiment
	if err := json.Unmarshal([]byte(resp.OutputText()), &out); err != nil {
		return Sentiment{}, fmt.Errorf("unmarshal sentiment: %w", err)
	}
	return out.clamped(), nil
}

func (a *OpenAIAnnotator) callWithRetry(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error) {
	logger := log.WithFields(log.Fields{
		"caller": "OpenAIAnnotator.callWithRetry",
		"model":  a.model,
	})

	for attempt := 0; ; attempt++ {
		resp, err := a.client.Responses.New(ctx, params)
		if err == nil {
			return resp, nil
		}
		if !isRetryable(err) || attempt >= len(a.waits) || attempt+1 >= openAIMaxAttempts {
			return nil, err
		}

		logger.WithError(err).Debugf("retrying in %s", a.waits[attempt])
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.waits[attempt]):
		}
	}
}

func isRetryable(err error) bool {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
}

////////////////////////////////////////////////////////////////////////////////

func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	b, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		panic(err)
	}
	var schema map[string]any
	if err := json.Unmarshal(b, &schema); err != nil {
		panic(err)
	}
	ensureStrict(schema)
	return schema
}

// ensureStrict makes every object closed with all of its properties required
func ensureStrict(schema map[string]any) {
	if typ, ok := schema["type"].(string); ok && typ == "object" {
		schema["additionalProperties"] = false
		if props, ok := schema["properties"].(map[string]any); ok {
			required := make([]string, 0, len(props))
			for name := range props {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema["required"] = required
			}
		}
	}
	if props, ok := schema["properties"].(map[string]any); ok {
		for _, prop := range props {
			if m, ok := prop.(map[string]any); ok {
				ensureStrict(m)
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		ensureStrict(items)
	}
}
