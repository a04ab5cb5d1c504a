package aggregator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/WangWilly/xConvo/pkgs/analysispkg/stopwords"
	"github.com/WangWilly/xConvo/pkgs/analysispkg/texthelper"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
)

var ErrInvalidN = errors.New("n-gram size must be at least 1")

// TextTable is any table exposing its text columns by name
type TextTable interface {
	Column(name string) ([]string, error)
}

// Corpus is the filtered, lower-cased word sequence of a text column
type Corpus []string

////////////////////////////////////////////////////////////////////////////////

func BuildCorpus(rows TextTable, column, excludeTerm string) (Corpus, error) {
	values, err := rows.Column(column)
	if err != nil {
		return nil, fmt.Errorf("build corpus: %w", err)
	}
	text := strings.ToLower(strings.Join(values, " "))
	return Filter(texthelper.Words(text), excludeTerm), nil
}

// Filter drops english stop words, all-digit tokens and the exclude term
// (case-insensitive, a leading "$" ignored on both sides). Survivors keep
// their order, so words around a dropped token become adjacent.
func Filter(tokens []string, excludeTerm string) Corpus {
	exclude := strings.TrimPrefix(strings.ToLower(excludeTerm), "$")

	res := make(Corpus, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		switch {
		case stopwords.IsEnglish(tok):
		case texthelper.IsNumeric(tok):
		case exclude != "" && strings.TrimPrefix(tok, "$") == exclude:
		default:
			res = append(res, tok)
		}
	}
	return res
}

// CountNgrams counts every window of n consecutive tokens. Rows are sorted by
// count, ties in order of first occurrence.
func CountNgrams(corpus Corpus, n int) (model.WordCountTable, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidN, n)
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for i := 0; i+n <= len(corpus); i++ {
		gram := strings.Join(corpus[i:i+n], " ")
		if _, ok := counts[gram]; !ok {
			order = append(order, gram)
		}
		counts[gram]++
	}

	table := make(model.WordCountTable, 0, len(order))
	for _, gram := range order {
		table = append(table, model.WordCount{Word: gram, Count: counts[gram]})
	}
	sort.SliceStable(table, func(a, b int) bool {
		return table[a].Count > table[b].Count
	})
	return table, nil
}

// Head returns at most k leading rows
func Head(table model.WordCountTable, k int) model.WordCountTable {
	if k < 0 {
		k = 0
	}
	if k > len(table) {
		k = len(table)
	}
	res := make(model.WordCountTable, k)
	copy(res, table[:k])
	return res
}
