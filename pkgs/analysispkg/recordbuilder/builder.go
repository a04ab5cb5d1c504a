package recordbuilder

import (
	"context"
	"fmt"

	"github.com/WangWilly/xConvo/pkgs/analysispkg/sentiment"
	"github.com/WangWilly/xConvo/pkgs/analysispkg/texthelper"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/dtos/rawpostdto"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
	log "github.com/sirupsen/logrus"
)

////////////////////////////////////////////////////////////////////////////////

// Stats counts raw records dropped for lacking usable text
type Stats struct {
	DroppedPosts   int
	DroppedReplies int
}

type Builder struct {
	annotator sentiment.Annotator
	stats     Stats
}

func New(annotator sentiment.Annotator) *Builder {
	return &Builder{annotator: annotator}
}

func (b *Builder) Stats() Stats {
	return b.stats
}

////////////////////////////////////////////////////////////////////////////////

// BuildPosts turns raw statuses into post rows. Records without text, or whose
// text normalizes to nothing, are dropped. Any other missing field aborts.
func (b *Builder) BuildPosts(ctx context.Context, raws []rawpostdto.RawPost) (model.PostTable, error) {
	logger := log.WithFields(log.Fields{
		"caller": "Builder.BuildPosts",
		"total":  len(raws),
	})

	posts := make(model.PostTable, 0, len(raws))
	for i, raw := range raws {
		post, ok, err := b.buildPost(ctx, raw, i)
		if err != nil {
			return nil, err
		}
		if !ok {
			b.stats.DroppedPosts++
			logger.WithField("index", i).Debugln("dropped post without text")
			continue
		}
		posts = append(posts, post)
	}

	logger.WithField("kept", len(posts)).Debugln("posts built")
	return posts, nil
}

// BuildReplies is BuildPosts keeping the id of the answered post
func (b *Builder) BuildReplies(ctx context.Context, raws []rawpostdto.RawPost) (model.ReplyTable, error) {
	logger := log.WithFields(log.Fields{
		"caller": "Builder.BuildReplies",
		"total":  len(raws),
	})

	replies := make(model.ReplyTable, 0, len(raws))
	for i, raw := range raws {
		post, ok, err := b.buildPost(ctx, raw, i)
		if err != nil {
			return nil, err
		}
		if !ok {
			b.stats.DroppedReplies++
			logger.WithField("index", i).Debugln("dropped reply without text")
			continue
		}

		replyTo, ok := raw.InReplyTo()
		if !ok {
			return nil, &MissingFieldError{Index: i, Field: rawpostdto.PATH_REPLY_TO_ID}
		}
		replies = append(replies, model.Reply{Post: post, ReplyId: replyTo})
	}

	logger.WithField("kept", len(replies)).Debugln("replies built")
	return replies, nil
}

// BuildUsers keeps one row per screen name, a later record of the same author
// overwriting the earlier one in place. A nil filterIds keeps every author.
func (b *Builder) BuildUsers(raws []rawpostdto.RawPost, filterIds map[uint64]struct{}) (model.UserTable, error) {
	positions := make(map[string]int, len(raws))
	users := make(model.UserTable, 0, len(raws))

	for i, raw := range raws {
		a, err := readUser(raw, i)
		if err != nil {
			return nil, err
		}
		user := model.User{
			Username:        a.screenName,
			UserId:          a.id,
			FullDescription: a.description,
			Description:     texthelper.Normalize(a.description),
			Followers:       a.followers,
			Following:       a.following,
			Favorites:       a.favorites,
			TweetCount:      a.tweetCount,
		}

		if pos, ok := positions[user.Username]; ok {
			users[pos] = user
			continue
		}
		positions[user.Username] = len(users)
		users = append(users, user)
	}

	if filterIds == nil {
		return users, nil
	}
	filtered := make(model.UserTable, 0, len(users))
	for _, u := range users {
		if _, ok := filterIds[u.UserId]; ok {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

////////////////////////////////////////////////////////////////////////////////

func (b *Builder) buildPost(ctx context.Context, raw rawpostdto.RawPost, index int) (model.Post, bool, error) {
	text, ok := raw.Text()
	if !ok {
		return model.Post{}, false, nil
	}
	clean := texthelper.Normalize(text)
	if clean == "" {
		return model.Post{}, false, nil
	}

	rec, err := readRecord(raw, index, text)
	if err != nil {
		return model.Post{}, false, err
	}

	s, err := b.annotator.Annotate(ctx, clean)
	if err != nil {
		return model.Post{}, false, fmt.Errorf("annotate post %d: %w", rec.id, err)
	}

	return model.Post{
		Id:           rec.id,
		Username:     rec.author.screenName,
		UserId:       rec.author.id,
		RawText:      rec.text,
		CleanText:    clean,
		Favorites:    rec.favorites,
		Retweets:     rec.retweets,
		Followers:    rec.author.followers,
		Following:    rec.author.following,
		Polarity:     s.Polarity,
		Subjectivity: s.Subjectivity,
	}, true, nil
}
