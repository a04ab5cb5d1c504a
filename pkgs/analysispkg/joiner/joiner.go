package joiner

import "github.com/WangWilly/xConvo/pkgs/commonpkg/model"

// FilterRepliesToRanked keeps the replies answering one of the ranked posts
func FilterRepliesToRanked(replies model.ReplyTable, ranked model.PostTable) model.ReplyTable {
	ids := ranked.Ids()
	res := make(model.ReplyTable, 0, len(replies))
	for _, r := range replies {
		if _, ok := ids[r.ReplyId]; ok {
			res = append(res, r)
		}
	}
	return res
}

// FilterUsersToRanked keeps the authors of the ranked posts. Users are unique
// by construction, so an author of several ranked posts is kept once.
func FilterUsersToRanked(users model.UserTable, ranked model.PostTable) model.UserTable {
	ids := ranked.UserIds()
	res := make(model.UserTable, 0, len(users))
	for _, u := range users {
		if _, ok := ids[u.UserId]; ok {
			res = append(res, u)
		}
	}
	return res
}

// DedupReplies drops repeated reply ids, keeping the first occurrence
func DedupReplies(replies model.ReplyTable) model.ReplyTable {
	seen := make(map[uint64]struct{}, len(replies))
	res := make(model.ReplyTable, 0, len(replies))
	for _, r := range replies {
		if _, ok := seen[r.Id]; ok {
			continue
		}
		seen[r.Id] = struct{}{}
		res = append(res, r)
	}
	return res
}
