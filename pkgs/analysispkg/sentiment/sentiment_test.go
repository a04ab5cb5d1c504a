package sentiment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/WangWilly/xConvo/pkgs/analysispkg/texthelper"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexiconAnnotator(t *testing.T) {
	a := NewLexiconAnnotator()

	tests := []struct {
		name string
		text string
		want func(t *testing.T, s Sentiment)
	}{
		{
			name: "empty text is neutral",
			text: "  ",
			want: func(t *testing.T, s Sentiment) {
				assert.Equal(t, Sentiment{}, s)
			},
		},
		{
			name: "unknown words are neutral",
			text: "ticker earnings tomorrow",
			want: func(t *testing.T, s Sentiment) {
				assert.Equal(t, Sentiment{}, s)
			},
		},
		{
			name: "positive",
			text: "great quarter",
			want: func(t *testing.T, s Sentiment) {
				assert.Greater(t, s.Polarity, 0.0)
				assert.InDelta(t, 0.75, s.Subjectivity, 1e-9)
			},
		},
		{
			name: "negative",
			text: "bad quarter",
			want: func(t *testing.T, s Sentiment) {
				assert.Less(t, s.Polarity, 0.0)
			},
		},
		{
			name: "intensifier scales subjectivity",
			text: "very good",
			want: func(t *testing.T, s Sentiment) {
				assert.InDelta(t, 0.78, s.Subjectivity, 1e-9)
			},
		},
		{
			name: "bounded",
			text: "extremely excellent great awesome amazing good",
			want: func(t *testing.T, s Sentiment) {
				assert.LessOrEqual(t, s.Polarity, 1.0)
				assert.LessOrEqual(t, s.Subjectivity, 1.0)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := a.Annotate(context.Background(), tt.text)
			require.NoError(t, err)
			tt.want(t, s)
		})
	}
}

func TestNegationSurvivesNormalize(t *testing.T) {
	a := NewLexiconAnnotator()

	plain := a.Score(texthelper.Normalize("earnings good"))
	require.Greater(t, plain.Polarity, 0.0)

	for _, text := range []string{
		"earnings aren't good",
		"earnings isn't good",
		"won't be good",
		"can't be good",
	} {
		normalized := texthelper.Normalize(text)
		s := a.Score(normalized)
		assert.Less(t, s.Polarity, 0.0, normalized)
		assert.InDelta(t, a.Score(text).Polarity, s.Polarity, 1e-9, text)
	}
}

func TestRejoinContractions(t *testing.T) {
	assert.Equal(t, "earnings arent good", rejoinContractions("earnings aren t good"))
	assert.Equal(t, "I DONT know", rejoinContractions("I DON T know"))
	assert.Equal(t, "wont cant", rejoinContractions("won t can t"))
	assert.Equal(t, "buy the dip t", rejoinContractions("buy the dip t"))
	assert.Equal(t, "Spain t shirt", rejoinContractions("Spain t shirt"))
	assert.Equal(t, "shouldnt sell", rejoinContractions("shouldn t sell"))
}

func TestParseLexicon(t *testing.T) {
	lex := parseLexicon("# header\nfoo\t0.4\t1\nbar\tx\t1\nbaz\t0.1\n")
	require.Len(t, lex, 1)
	assert.Equal(t, lexiconEntry{subjectivity: 0.4, intensity: 1}, lex["foo"])

	embedded := parseLexicon(lexiconRaw)
	assert.True(t, embedded["very"].isIntensifier())
	assert.False(t, embedded["good"].isIntensifier())
}

func TestNew(t *testing.T) {
	a, err := New("", "", "")
	require.NoError(t, err)
	assert.IsType(t, &LexiconAnnotator{}, a)

	_, err = New(PROVIDER_OPENAI, "", "")
	assert.Error(t, err)

	_, err = New("vader", "", "")
	assert.Error(t, err)
}

func TestSentimentSchema(t *testing.T) {
	assert.Equal(t, "object", sentimentSchema["type"])
	assert.Equal(t, false, sentimentSchema["additionalProperties"])
	assert.ElementsMatch(t, []string{"polarity", "subjectivity"}, sentimentSchema["required"])
}

////////////////////////////////////////////////////////////////////////////////

func responsesBody(text string) string {
	body := map[string]any{
		"id":         "resp_1",
		"object":     "response",
		"created_at": 0,
		"model":      DEFAULT_OPENAI_MODEL,
		"status":     "completed",
		"output": []any{
			map[string]any{
				"type":   "message",
				"id":     "msg_1",
				"role":   "assistant",
				"status": "completed",
				"content": []any{
					map[string]any{"type": "output_text", "text": text, "annotations": []any{}},
				},
			},
		},
	}
	b, _ := json.Marshal(body)
	return string(b)
}

func TestOpenAIAnnotator(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/responses") {
			http.NotFound(w, r)
			return
		}
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, responsesBody(`{"polarity":1.7,"subjectivity":0.4}`))
	}))
	defer srv.Close()

	a := NewOpenAIAnnotator("test-key", "", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	s, err := a.Annotate(context.Background(), "to the moon")
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Polarity)
	assert.InDelta(t, 0.4, s.Subjectivity, 1e-9)
	assert.Contains(t, gotBody, "to the moon")
	assert.Contains(t, gotBody, "json_schema")
}

func TestOpenAIAnnotatorEmptyText(t *testing.T) {
	a := NewOpenAIAnnotator("test-key", "", option.WithBaseURL("http://127.0.0.1:1"), option.WithMaxRetries(0))

	s, err := a.Annotate(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, Sentiment{}, s)
}

func TestOpenAIAnnotatorBadRequest(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"message":"bad","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	a := NewOpenAIAnnotator("test-key", "", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	_, err := a.Annotate(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.False(t, isRetryable(err))
}
