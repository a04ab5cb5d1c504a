package model

import (
	"database/sql"
	"time"
)

// WordCount is one n-gram frequency row. AvgNetInfluence is invalid when no
// author description contains Word.
type WordCount struct {
	Word            string          `db:"word"`
	Count           int             `db:"count"`
	AvgNetInfluence sql.NullFloat64 `db:"avg_net_influence"`
}

type WordCountTable []WordCount

////////////////////////////////////////////////////////////////////////////////

// Run is one execution of the pipeline for a ticker
type Run struct {
	Id        string    `db:"id"`
	Ticker    string    `db:"ticker"`
	CreatedAt time.Time `db:"created_at"`
}
