package sentiment

import (
	"context"
	_ "embed"
	"regexp"
	"strconv"
	"strings"

	"github.com/WangWilly/xConvo/pkgs/analysispkg/texthelper"
	"github.com/jonreiter/govader"
)

//go:embed lexicon.tsv
var lexiconRaw string

// "aren t" as left by normalization, rejoined to "arent"
var splitContraction = regexp.MustCompile(`(?i)\b(ain|aren|can|couldn|didn|doesn|don|hadn|hasn|haven|isn|mightn|mustn|needn|shan|shouldn|wasn|weren|won|wouldn) (t)\b`)

////////////////////////////////////////////////////////////////////////////////

type lexiconEntry struct {
	subjectivity float64
	intensity    float64
}

func (e lexiconEntry) isIntensifier() bool {
	return e.intensity != 1
}

// LexiconAnnotator scores polarity with the VADER compound score and
// subjectivity as the mean of the subjectivity table entries of the words.
type LexiconAnnotator struct {
	vader   *govader.SentimentIntensityAnalyzer
	lexicon map[string]lexiconEntry
}

func NewLexiconAnnotator() *LexiconAnnotator {
	return &LexiconAnnotator{
		vader:   govader.NewSentimentIntensityAnalyzer(),
		lexicon: parseLexicon(lexiconRaw),
	}
}

func (a *LexiconAnnotator) Annotate(_ context.Context, text string) (Sentiment, error) {
	return a.Score(text), nil
}

func (a *LexiconAnnotator) Score(text string) Sentiment {
	text = rejoinContractions(text)
	if strings.TrimSpace(text) == "" {
		return Sentiment{}
	}
	return Sentiment{
		Polarity:     a.vader.PolarityScores(text).Compound,
		Subjectivity: a.subjectivity(text),
	}.clamped()
}

func (a *LexiconAnnotator) subjectivity(text string) float64 {
	var sum float64
	var scored int

	multiplier := 1.0
	for _, word := range texthelper.Words(strings.ToLower(text)) {
		e, ok := a.lexicon[word]
		if !ok {
			continue
		}
		if e.isIntensifier() {
			multiplier *= e.intensity
			continue
		}
		sum += clamp(e.subjectivity*multiplier, 0, 1)
		scored++
		multiplier = 1.0
	}

	if scored == 0 {
		return 0
	}
	return sum / float64(scored)
}

// rejoinContractions undoes the apostrophe removal of texthelper.Normalize on
// n't contractions, so negations like "dont" and "isnt" stay recognizable.
func rejoinContractions(text string) string {
	return splitContraction.ReplaceAllString(text, "${1}${2}")
}

////////////////////////////////////////////////////////////////////////////////

// parseLexicon reads tab separated "word subjectivity intensity" rows.
// Comment lines and malformed rows are skipped.
func parseLexicon(raw string) map[string]lexiconEntry {
	m := make(map[string]lexiconEntry, 128)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) != 3 {
			continue
		}
		subjectivity, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}
		intensity, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			continue
		}
		m[strings.ToLower(parts[0])] = lexiconEntry{subjectivity: subjectivity, intensity: intensity}
	}
	return m
}
