package storage

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
)

////////////////////////////////////////////////////////////////////////////////

// csv column names
const (
	COL_ID                = "id"
	COL_USERNAME          = model.COL_USERNAME
	COL_USER_ID           = "user_id"
	COL_RAW_TEXT          = model.COL_RAW_TEXT
	COL_CLEAN_TEXT        = model.COL_CLEAN_TEXT
	COL_FAVORITES         = "favorites"
	COL_RETWEETS          = "retweets"
	COL_FOLLOWERS         = "followers"
	COL_FOLLOWING         = "following"
	COL_POLARITY          = "polarity"
	COL_SUBJECTIVITY      = "subjectivity"
	COL_RANK              = "rank"
	COL_NET_INFLUENCE     = "net_influence"
	COL_REPLY_ID          = "reply_id"
	COL_FULL_DESCRIPTION  = model.COL_FULL_DESCRIPTION
	COL_DESCRIPTION       = model.COL_DESCRIPTION
	COL_TWEET_COUNT       = "tweet_count"
	COL_WORD              = "word"
	COL_COUNT             = "count"
	COL_AVG_NET_INFLUENCE = "avg_net_influence"
)

var ErrMissingColumn = errors.New("missing column")

var (
	postHeader = []string{
		COL_ID, COL_USERNAME, COL_USER_ID, COL_RAW_TEXT, COL_CLEAN_TEXT,
		COL_FAVORITES, COL_RETWEETS, COL_FOLLOWERS, COL_FOLLOWING,
		COL_POLARITY, COL_SUBJECTIVITY, COL_RANK, COL_NET_INFLUENCE,
	}
	replyHeader = append(append([]string{}, postHeader...), COL_REPLY_ID)
	userHeader  = []string{
		COL_USERNAME, COL_USER_ID, COL_FULL_DESCRIPTION, COL_DESCRIPTION,
		COL_FOLLOWERS, COL_FOLLOWING, COL_FAVORITES, COL_TWEET_COUNT, COL_NET_INFLUENCE,
	}
	wordCountHeader = []string{COL_WORD, COL_COUNT, COL_AVG_NET_INFLUENCE}
)

////////////////////////////////////////////////////////////////////////////////
// Save

func SavePosts(path string, posts model.PostTable) error {
	rows := make([][]string, 0, len(posts))
	for i := range posts {
		rows = append(rows, postRecord(&posts[i]))
	}
	return writeTable(path, postHeader, rows)
}

func SaveReplies(path string, replies model.ReplyTable) error {
	rows := make([][]string, 0, len(replies))
	for i := range replies {
		rec := postRecord(&replies[i].Post)
		rows = append(rows, append(rec, formatUint(replies[i].ReplyId)))
	}
	return writeTable(path, replyHeader, rows)
}

func SaveUsers(path string, users model.UserTable) error {
	rows := make([][]string, 0, len(users))
	for i := range users {
		u := &users[i]
		rows = append(rows, []string{
			u.Username,
			formatUint(u.UserId),
			u.FullDescription,
			u.Description,
			formatInt(u.Followers),
			formatInt(u.Following),
			formatInt(u.Favorites),
			formatInt(u.TweetCount),
			formatInt(u.NetInfluence()),
		})
	}
	return writeTable(path, userHeader, rows)
}

func SaveWordCounts(path string, words model.WordCountTable) error {
	rows := make([][]string, 0, len(words))
	for _, w := range words {
		rows = append(rows, []string{w.Word, strconv.Itoa(w.Count), formatNullFloat(w.AvgNetInfluence)})
	}
	return writeTable(path, wordCountHeader, rows)
}

func postRecord(p *model.Post) []string {
	return []string{
		formatUint(p.Id),
		p.Username,
		formatUint(p.UserId),
		p.RawText,
		p.CleanText,
		formatInt(p.Favorites),
		formatInt(p.Retweets),
		formatInt(p.Followers),
		formatInt(p.Following),
		formatFloat(p.Polarity),
		formatFloat(p.Subjectivity),
		formatFloat(p.Rank),
		formatInt(p.NetInfluence()),
	}
}

////////////////////////////////////////////////////////////////////////////////
// Load

func LoadPosts(path string) (model.PostTable, error) {
	res := make(model.PostTable, 0)
	err := readTable(path, postHeader, func(r *rowReader) {
		res = append(res, r.post())
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func LoadReplies(path string) (model.ReplyTable, error) {
	res := make(model.ReplyTable, 0)
	err := readTable(path, replyHeader, func(r *rowReader) {
		res = append(res, model.Reply{Post: r.post(), ReplyId: r.u64(COL_REPLY_ID)})
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func LoadUsers(path string) (model.UserTable, error) {
	res := make(model.UserTable, 0)
	err := readTable(path, userHeader, func(r *rowReader) {
		res = append(res, model.User{
			Username:        r.str(COL_USERNAME),
			UserId:          r.u64(COL_USER_ID),
			FullDescription: r.str(COL_FULL_DESCRIPTION),
			Description:     r.str(COL_DESCRIPTION),
			Followers:       r.i64(COL_FOLLOWERS),
			Following:       r.i64(COL_FOLLOWING),
			Favorites:       r.i64(COL_FAVORITES),
			TweetCount:      r.i64(COL_TWEET_COUNT),
		})
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func LoadWordCounts(path string) (model.WordCountTable, error) {
	res := make(model.WordCountTable, 0)
	err := readTable(path, wordCountHeader, func(r *rowReader) {
		res = append(res, model.WordCount{
			Word:            r.str(COL_WORD),
			Count:           int(r.i64(COL_COUNT)),
			AvgNetInfluence: r.nullFloat(COL_AVG_NET_INFLUENCE),
		})
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

////////////////////////////////////////////////////////////////////////////////

// encoding/csv reads \r\n inside a quoted field back as \n, so carriage
// returns are written as the two characters \r and backslashes are doubled.
var (
	fieldEscaper   = strings.NewReplacer(`\`, `\\`, "\r", `\r`)
	fieldUnescaper = strings.NewReplacer(`\\`, `\`, `\r`, "\r")
)

func writeTable(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		escaped := make([]string, len(row))
		for i, field := range row {
			escaped[i] = fieldEscaper.Replace(field)
		}
		if err := w.Write(escaped); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Close()
}

// readTable calls fn for every data row of the csv at path. Columns are
// looked up by header name, so their order in the file does not matter.
// The net influence column is ignored on read.
func readTable(path string, required []string, fn func(r *rowReader)) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err == io.EOF {
		return fmt.Errorf("%s: %w: empty file", path, ErrMissingColumn)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range required {
		if name == COL_NET_INFLUENCE {
			continue
		}
		if _, ok := idx[name]; !ok {
			return fmt.Errorf("%s: %w: %q", path, ErrMissingColumn, name)
		}
	}

	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		r := &rowReader{idx: idx, rec: rec}
		fn(r)
		if r.err != nil {
			return fmt.Errorf("%s:%d: %w", path, line, r.err)
		}
	}
}

////////////////////////////////////////////////////////////////////////////////

// rowReader parses typed fields out of one record and keeps the first error
type rowReader struct {
	idx map[string]int
	rec []string
	err error
}

func (r *rowReader) str(col string) string {
	return fieldUnescaper.Replace(r.rec[r.idx[col]])
}

func (r *rowReader) u64(col string) uint64 {
	v := r.str(col)
	if v == "" || r.err != nil {
		return 0
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		r.err = fmt.Errorf("column %s: %w", col, err)
	}
	return n
}

func (r *rowReader) i64(col string) int64 {
	v := r.str(col)
	if v == "" || r.err != nil {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.err = fmt.Errorf("column %s: %w", col, err)
	}
	return n
}

func (r *rowReader) f64(col string) float64 {
	return r.nullFloat(col).Float64
}

func (r *rowReader) nullFloat(col string) sql.NullFloat64 {
	v := r.str(col)
	if v == "" || r.err != nil {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.err = fmt.Errorf("column %s: %w", col, err)
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func (r *rowReader) post() model.Post {
	return model.Post{
		Id:           r.u64(COL_ID),
		Username:     r.str(COL_USERNAME),
		UserId:       r.u64(COL_USER_ID),
		RawText:      r.str(COL_RAW_TEXT),
		CleanText:    r.str(COL_CLEAN_TEXT),
		Favorites:    r.i64(COL_FAVORITES),
		Retweets:     r.i64(COL_RETWEETS),
		Followers:    r.i64(COL_FOLLOWERS),
		Following:    r.i64(COL_FOLLOWING),
		Polarity:     r.f64(COL_POLARITY),
		Subjectivity: r.f64(COL_SUBJECTIVITY),
		Rank:         r.f64(COL_RANK),
	}
}

////////////////////////////////////////////////////////////////////////////////

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatNullFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return formatFloat(v.Float64)
}
