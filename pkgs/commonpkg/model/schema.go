package model

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	id VARCHAR NOT NULL,
	ticker VARCHAR NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (id)
);

CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id VARCHAR NOT NULL,
	post_id INTEGER NOT NULL,
	username VARCHAR NOT NULL,
	user_id INTEGER NOT NULL,
	raw_text TEXT NOT NULL,
	clean_text TEXT NOT NULL,
	favorites INTEGER NOT NULL,
	retweets INTEGER NOT NULL,
	followers INTEGER NOT NULL,
	following INTEGER NOT NULL,
	polarity REAL NOT NULL,
	subjectivity REAL NOT NULL,
	composite_rank REAL NOT NULL,
	FOREIGN KEY(run_id) REFERENCES runs (id),
	UNIQUE (run_id, post_id)
);

CREATE TABLE IF NOT EXISTS replies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id VARCHAR NOT NULL,
	post_id INTEGER NOT NULL,
	reply_id INTEGER NOT NULL,
	username VARCHAR NOT NULL,
	user_id INTEGER NOT NULL,
	raw_text TEXT NOT NULL,
	clean_text TEXT NOT NULL,
	favorites INTEGER NOT NULL,
	retweets INTEGER NOT NULL,
	followers INTEGER NOT NULL,
	following INTEGER NOT NULL,
	polarity REAL NOT NULL,
	subjectivity REAL NOT NULL,
	composite_rank REAL NOT NULL,
	FOREIGN KEY(run_id) REFERENCES runs (id),
	UNIQUE (run_id, post_id)
);

CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id VARCHAR NOT NULL,
	username VARCHAR NOT NULL,
	user_id INTEGER NOT NULL,
	full_description TEXT NOT NULL,
	description TEXT NOT NULL,
	followers INTEGER NOT NULL,
	following INTEGER NOT NULL,
	favorites INTEGER NOT NULL,
	tweet_count INTEGER NOT NULL,
	FOREIGN KEY(run_id) REFERENCES runs (id),
	UNIQUE (run_id, username)
);

CREATE TABLE IF NOT EXISTS word_counts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id VARCHAR NOT NULL,
	corpus VARCHAR NOT NULL,
	n INTEGER NOT NULL,
	word VARCHAR NOT NULL,
	count INTEGER NOT NULL,
	avg_net_influence REAL,
	FOREIGN KEY(run_id) REFERENCES runs (id),
	UNIQUE (run_id, corpus, n, word)
);

CREATE INDEX IF NOT EXISTS idx_posts_run_id ON posts (run_id);
CREATE INDEX IF NOT EXISTS idx_replies_run_id ON replies (run_id);
CREATE INDEX IF NOT EXISTS idx_replies_reply_id ON replies (reply_id);
CREATE INDEX IF NOT EXISTS idx_users_run_id ON users (run_id);
CREATE INDEX IF NOT EXISTS idx_word_counts_run_id ON word_counts (run_id);
`

// PostgreSQL-compatible schema
const SchemaPostgres = `
CREATE TABLE IF NOT EXISTS runs (
	id VARCHAR NOT NULL,
	ticker VARCHAR NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (id)
);

CREATE TABLE IF NOT EXISTS posts (
	id SERIAL PRIMARY KEY,
	run_id VARCHAR NOT NULL REFERENCES runs (id),
	post_id BIGINT NOT NULL,
	username VARCHAR NOT NULL,
	user_id BIGINT NOT NULL,
	raw_text TEXT NOT NULL,
	clean_text TEXT NOT NULL,
	favorites BIGINT NOT NULL,
	retweets BIGINT NOT NULL,
	followers BIGINT NOT NULL,
	following BIGINT NOT NULL,
	polarity DOUBLE PRECISION NOT NULL,
	subjectivity DOUBLE PRECISION NOT NULL,
	composite_rank DOUBLE PRECISION NOT NULL,
	UNIQUE (run_id, post_id)
);

CREATE TABLE IF NOT EXISTS replies (
	id SERIAL PRIMARY KEY,
	run_id VARCHAR NOT NULL REFERENCES runs (id),
	post_id BIGINT NOT NULL,
	reply_id BIGINT NOT NULL,
	username VARCHAR NOT NULL,
	user_id BIGINT NOT NULL,
	raw_text TEXT NOT NULL,
	clean_text TEXT NOT NULL,
	favorites BIGINT NOT NULL,
	retweets BIGINT NOT NULL,
	followers BIGINT NOT NULL,
	following BIGINT NOT NULL,
	polarity DOUBLE PRECISION NOT NULL,
	subjectivity DOUBLE PRECISION NOT NULL,
	composite_rank DOUBLE PRECISION NOT NULL,
	UNIQUE (run_id, post_id)
);

CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	run_id VARCHAR NOT NULL REFERENCES runs (id),
	username VARCHAR NOT NULL,
	user_id BIGINT NOT NULL,
	full_description TEXT NOT NULL,
	description TEXT NOT NULL,
	followers BIGINT NOT NULL,
	following BIGINT NOT NULL,
	favorites BIGINT NOT NULL,
	tweet_count BIGINT NOT NULL,
	UNIQUE (run_id, username)
);

CREATE TABLE IF NOT EXISTS word_counts (
	id SERIAL PRIMARY KEY,
	run_id VARCHAR NOT NULL REFERENCES runs (id),
	corpus VARCHAR NOT NULL,
	n INTEGER NOT NULL,
	word VARCHAR NOT NULL,
	count INTEGER NOT NULL,
	avg_net_influence DOUBLE PRECISION,
	UNIQUE (run_id, corpus, n, word)
);

CREATE INDEX IF NOT EXISTS idx_posts_run_id ON posts (run_id);
CREATE INDEX IF NOT EXISTS idx_replies_run_id ON replies (run_id);
CREATE INDEX IF NOT EXISTS idx_replies_reply_id ON replies (reply_id);
CREATE INDEX IF NOT EXISTS idx_users_run_id ON users (run_id);
CREATE INDEX IF NOT EXISTS idx_word_counts_run_id ON word_counts (run_id);
`

// CreateTables picks the schema matching the driver of db
func CreateTables(db *sqlx.DB) error {
	schema := Schema
	if db.DriverName() == "postgres" {
		schema = SchemaPostgres
	}
	_, err := db.Exec(schema)
	return err
}
