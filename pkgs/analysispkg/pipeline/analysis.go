package pipeline

import (
	"context"
	"strings"

	"github.com/WangWilly/xConvo/pkgs/analysispkg/aggregator"
	"github.com/WangWilly/xConvo/pkgs/analysispkg/enricher"
	"github.com/WangWilly/xConvo/pkgs/analysispkg/sentiment"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
)

////////////////////////////////////////////////////////////////////////////////

// Analysis holds the word statistics and overall tone of a dataset
type Analysis struct {
	// n-gram tables keyed by n
	PostWords  map[int]model.WordCountTable
	ReplyWords map[int]model.WordCountTable
	// top description unigrams with the mean net influence of their authors
	DescriptionWords model.WordCountTable

	PostSentiment  sentiment.Sentiment
	ReplySentiment sentiment.Sentiment
}

// Analyze counts n-grams of the post and reply texts, enriches the most
// frequent description words and scores the sentiment of both corpora. The
// ticker itself is excluded from every corpus.
func (p *Pipeline) Analyze(ctx context.Context, ticker string, ds *Dataset) (*Analysis, error) {
	var postCorpus, replyCorpus, descCorpus aggregator.Corpus
	res := &Analysis{
		PostWords:  make(map[int]model.WordCountTable, len(NGRAM_SIZES)),
		ReplyWords: make(map[int]model.WordCountTable, len(NGRAM_SIZES)),
	}

	err := stage(STAGE_AGGREGATE, func() error {
		var err error
		if postCorpus, err = aggregator.BuildCorpus(ds.Posts, model.COL_CLEAN_TEXT, ticker); err != nil {
			return err
		}
		if replyCorpus, err = aggregator.BuildCorpus(ds.Replies, model.COL_CLEAN_TEXT, ticker); err != nil {
			return err
		}
		if descCorpus, err = aggregator.BuildCorpus(ds.Users, model.COL_DESCRIPTION, ticker); err != nil {
			return err
		}

		for _, n := range NGRAM_SIZES {
			if res.PostWords[n], err = aggregator.CountNgrams(postCorpus, n); err != nil {
				return err
			}
			if res.ReplyWords[n], err = aggregator.CountNgrams(replyCorpus, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = stage(STAGE_ENRICH, func() error {
		unigrams, err := aggregator.CountNgrams(descCorpus, 1)
		if err != nil {
			return err
		}
		res.DescriptionWords = enricher.Enrich(aggregator.Head(unigrams, p.cfg.TopWords), ds.Users)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = stage(STAGE_SENTIMENT, func() error {
		var err error
		if res.PostSentiment, err = p.annotator.Annotate(ctx, strings.Join(postCorpus, " ")); err != nil {
			return err
		}
		res.ReplySentiment, err = p.annotator.Annotate(ctx, strings.Join(replyCorpus, " "))
		return err
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
