package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// Storage Path Management Structure
////////////////////////////////////////////////////////////////////////////////

// file names inside a dataset directory
const (
	FILE_POSTS       = "posts.csv"
	FILE_REPLIES     = "replies.csv"
	FILE_USERS       = "users.csv"
	FILE_RAW_POSTS   = "raw_posts.json"
	FILE_RAW_REPLIES = "raw_replies.json"
	FILE_METRICS     = "metrics.prom"
	FILE_DB          = "xconvo.db"
)

var ErrInvalidTicker = errors.New("invalid ticker")

// StorePath represents the application's storage paths
type StorePath struct {
	Root     string
	Datasets string
	Data     string
	DB       string
	Metrics  string
}

// DatasetPath holds the files of one ticker's dataset
type DatasetPath struct {
	Ticker     string
	Dir        string
	Html       string
	Posts      string
	Replies    string
	Users      string
	RawPosts   string
	RawReplies string
}

////////////////////////////////////////////////////////////////////////////////
// Storage Path Management Functions
////////////////////////////////////////////////////////////////////////////////

// NewStorePath creates a new StorePath instance and ensures directories exist
func NewStorePath(root string) (*StorePath, error) {
	ph := StorePath{}
	ph.Root = root
	ph.Datasets = filepath.Join(root, "datasets")
	ph.Data = filepath.Join(root, ".data")

	ph.DB = filepath.Join(ph.Data, FILE_DB)
	ph.Metrics = filepath.Join(ph.Data, FILE_METRICS)

	for _, dir := range []string{ph.Root, ph.Datasets, ph.Data} {
		if err := ensureDir(dir); err != nil {
			return nil, err
		}
	}
	return &ph, nil
}

// NewDatasetPath creates <root>/<TICKER>/ and its html/ directory
func NewDatasetPath(root string, ticker string) (*DatasetPath, error) {
	name, err := TickerDir(ticker)
	if err != nil {
		return nil, err
	}

	dp := DatasetPath{Ticker: name}
	dp.Dir = filepath.Join(root, name)
	dp.Html = filepath.Join(dp.Dir, "html")
	dp.Posts = filepath.Join(dp.Dir, FILE_POSTS)
	dp.Replies = filepath.Join(dp.Dir, FILE_REPLIES)
	dp.Users = filepath.Join(dp.Dir, FILE_USERS)
	dp.RawPosts = filepath.Join(dp.Dir, FILE_RAW_POSTS)
	dp.RawReplies = filepath.Join(dp.Dir, FILE_RAW_REPLIES)

	if err := ensureDir(root); err != nil {
		return nil, err
	}
	for _, dir := range []string{dp.Dir, dp.Html} {
		if err := ensureDir(dir); err != nil {
			return nil, err
		}
	}
	return &dp, nil
}

// Dataset is NewDatasetPath under the datasets directory
func (ph *StorePath) Dataset(ticker string) (*DatasetPath, error) {
	return NewDatasetPath(ph.Datasets, ticker)
}

// TickerDir upper-cases ticker and strips a leading "$"
func TickerDir(ticker string) (string, error) {
	name := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(ticker), "$"))
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTicker, ticker)
	}
	return name, nil
}

func ensureDir(dir string) error {
	err := os.Mkdir(dir, 0755)
	if err != nil && !os.IsExist(err) {
		return err
	}
	return nil
}

// WordCounts is the csv of the n-gram table of one corpus
func (dp *DatasetPath) WordCounts(corpus string, n int) string {
	return filepath.Join(dp.Dir, fmt.Sprintf("words_%s_%d.csv", corpus, n))
}
