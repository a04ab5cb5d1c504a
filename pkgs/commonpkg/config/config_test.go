package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/WangWilly/xConvo/pkgs/analysispkg/sentiment"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfigDefaults(t *testing.T) {
	t.Setenv(ENV_BEARER_TOKEN, "")
	path := filepath.Join(t.TempDir(), "conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root_path: /tmp/x\ntop_n: 0\n"), 0600))

	conf, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", conf.RootPath)
	assert.Equal(t, DEFAULT_MAX_POSTS, conf.MaxPosts)
	assert.Equal(t, DEFAULT_TOP_N, conf.TopN)
	assert.Equal(t, DEFAULT_TOP_WORDS, conf.TopWords)
	assert.True(t, conf.FetchThreadReplies)
	assert.True(t, conf.Metrics.Enabled)
	assert.Equal(t, sentiment.PROVIDER_LEXICON, conf.Sentiment.Provider)
	assert.False(t, conf.Database.Enabled())
	assert.ErrorIs(t, conf.Validate(), ErrMissingBearerToken)
}

func TestReadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	content := `
root_path: /data
credentials:
  bearer_token: file-token
max_posts: 100
fetch_thread_replies: false
sentiment:
  provider: openai
  model: gpt-4o
database:
  type: postgres
  host: localhost
  port: "5432"
metrics:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv(ENV_BEARER_TOKEN, "env-token")
	t.Setenv(ENV_OPENAI_API_KEY, "sk-env")

	conf, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", conf.Credentials.BearerToken)
	assert.Equal(t, "sk-env", conf.Sentiment.ApiKey)
	assert.Equal(t, 100, conf.MaxPosts)
	assert.False(t, conf.FetchThreadReplies)
	assert.False(t, conf.Metrics.Enabled)
	assert.Equal(t, database.DATABASE_TYPE_POSTGRES, conf.Database.Type)
	assert.Equal(t, "5432", conf.Database.Port)
	assert.NoError(t, conf.Validate())
}

func TestWriteReadRoundTrip(t *testing.T) {
	t.Setenv(ENV_OPENAI_API_KEY, "")
	path := filepath.Join(t.TempDir(), "conf.yaml")
	conf := Default()
	conf.RootPath = "/data"
	conf.Credentials.BearerToken = "tok"
	conf.TopWords = 10

	require.NoError(t, WriteConfig(path, conf))
	got, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, conf, got)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(ENV_BEARER_TOKEN+"=from-dotenv\n"), 0600))

	t.Setenv(ENV_BEARER_TOKEN, "")
	os.Unsetenv(ENV_BEARER_TOKEN)

	require.NoError(t, LoadEnvFiles(filepath.Join(dir, "absent.env"), envPath))
	assert.Equal(t, "from-dotenv", os.Getenv(ENV_BEARER_TOKEN))

	conf := Default()
	conf.ApplyEnv()
	assert.Equal(t, "from-dotenv", conf.Credentials.BearerToken)
}

func TestPromptConfig(t *testing.T) {
	dir := t.TempDir()
	saveto := filepath.Join(dir, "conf.yaml")
	store := filepath.Join(dir, "store")
	input := strings.Join([]string{store, "tok", "", "", filepath.Join(store, "x.db")}, "\n") + "\n"

	var out strings.Builder
	conf, err := PromptConfig(saveto, strings.NewReader(input), &out)
	require.NoError(t, err)
	assert.Equal(t, store, conf.RootPath)
	assert.Equal(t, "tok", conf.Credentials.BearerToken)
	assert.Equal(t, DEFAULT_MAX_POSTS, conf.MaxPosts)
	assert.Equal(t, sentiment.PROVIDER_LEXICON, conf.Sentiment.Provider)
	assert.Equal(t, database.DATABASE_TYPE_SQLITE, conf.Database.Type)
	assert.Contains(t, out.String(), "enter storage dir: ")

	_, err = os.Stat(saveto)
	assert.NoError(t, err)

	_, err = PromptConfig(saveto, strings.NewReader(store+"\ntok\nmany\n"), &out)
	assert.Error(t, err)
}
