package enricher

import (
	"database/sql"
	"strings"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
)

// Enrich sets AvgNetInfluence of every row to the mean net influence of the
// users whose description contains the word, ignoring case. Rows matching no
// user get an invalid value. The input table is left untouched.
func Enrich(words model.WordCountTable, users model.UserTable) model.WordCountTable {
	descriptions := make([]string, len(users))
	for i := range users {
		descriptions[i] = strings.ToLower(users[i].Description)
	}

	res := make(model.WordCountTable, len(words))
	for i, w := range words {
		needle := strings.ToLower(w.Word)

		var sum int64
		var matched int
		for j, desc := range descriptions {
			if !strings.Contains(desc, needle) {
				continue
			}
			sum += users[j].NetInfluence()
			matched++
		}

		res[i] = w
		res[i].AvgNetInfluence = sql.NullFloat64{}
		if matched > 0 {
			res[i].AvgNetInfluence = sql.NullFloat64{
				Float64: float64(sum) / float64(matched),
				Valid:   true,
			}
		}
	}
	return res
}
