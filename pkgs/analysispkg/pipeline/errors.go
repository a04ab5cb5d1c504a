package pipeline

import "fmt"

// stage names
const (
	STAGE_FETCH         = "fetch"
	STAGE_BUILD_POSTS   = "build_posts"
	STAGE_RANK          = "rank"
	STAGE_FETCH_REPLIES = "fetch_replies"
	STAGE_BUILD_REPLIES = "build_replies"
	STAGE_BUILD_USERS   = "build_users"
	STAGE_AGGREGATE     = "aggregate"
	STAGE_ENRICH        = "enrich"
	STAGE_SENTIMENT     = "sentiment"
	STAGE_LOAD          = "load"
	STAGE_SAVE          = "save"
	STAGE_PERSIST       = "persist"
)

// StageError names the pipeline stage that failed
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
