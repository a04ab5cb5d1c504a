package pipeline

import (
	"github.com/WangWilly/xConvo/pkgs/commonpkg/storage"
)

////////////////////////////////////////////////////////////////////////////////

// SaveDataset writes the tables and the raw records of ds under dp
func SaveDataset(dp *storage.DatasetPath, ds *Dataset) error {
	return stage(STAGE_SAVE, func() error {
		if err := storage.SavePosts(dp.Posts, ds.Posts); err != nil {
			return err
		}
		if err := storage.SaveReplies(dp.Replies, ds.Replies); err != nil {
			return err
		}
		if err := storage.SaveUsers(dp.Users, ds.Users); err != nil {
			return err
		}
		if err := storage.DumpRaw(dp.RawPosts, ds.RawPosts); err != nil {
			return err
		}
		return storage.DumpRaw(dp.RawReplies, ds.RawReplies)
	})
}

// LoadDataset reads back the tables saved by SaveDataset. Raw records are
// not loaded.
func LoadDataset(dp *storage.DatasetPath) (*Dataset, error) {
	ds := &Dataset{Ticker: dp.Ticker}
	err := stage(STAGE_LOAD, func() error {
		var err error
		if ds.Posts, err = storage.LoadPosts(dp.Posts); err != nil {
			return err
		}
		if ds.Replies, err = storage.LoadReplies(dp.Replies); err != nil {
			return err
		}
		ds.Users, err = storage.LoadUsers(dp.Users)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// LoadRaw reads the raw records dumped by SaveDataset
func LoadRaw(dp *storage.DatasetPath) (*Dataset, error) {
	ds := &Dataset{Ticker: dp.Ticker}
	err := stage(STAGE_LOAD, func() error {
		var err error
		if ds.RawPosts, err = storage.LoadRaw(dp.RawPosts); err != nil {
			return err
		}
		ds.RawReplies, err = storage.LoadRaw(dp.RawReplies)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// SaveAnalysis writes every word table of res next to the dataset
func SaveAnalysis(dp *storage.DatasetPath, res *Analysis) error {
	return stage(STAGE_SAVE, func() error {
		for _, n := range NGRAM_SIZES {
			if err := storage.SaveWordCounts(dp.WordCounts(CORPUS_POSTS, n), res.PostWords[n]); err != nil {
				return err
			}
			if err := storage.SaveWordCounts(dp.WordCounts(CORPUS_REPLIES, n), res.ReplyWords[n]); err != nil {
				return err
			}
		}
		return storage.SaveWordCounts(dp.WordCounts(CORPUS_DESCRIPTIONS, 1), res.DescriptionWords)
	})
}
