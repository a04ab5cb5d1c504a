package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/WangWilly/xConvo/pkgs/analysispkg/sentiment"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/database"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// Configuration Structures
////////////////////////////////////////////////////////////////////////////////

// env fallbacks for credentials
const (
	ENV_BEARER_TOKEN   = "X_BEARER_TOKEN"
	ENV_OPENAI_API_KEY = "OPENAI_API_KEY"
)

// Default Values
const (
	DEFAULT_MAX_POSTS = 500
	DEFAULT_TOP_N     = 50
	DEFAULT_TOP_WORDS = 25
)

var ErrMissingBearerToken = errors.New("missing bearer token")

// Credentials holds the app-only token for the search api
type Credentials struct {
	BearerToken string `yaml:"bearer_token"`
}

type SentimentConfig struct {
	Provider string `yaml:"provider"` // "lexicon" or "openai"
	Model    string `yaml:"model"`
	ApiKey   string `yaml:"api_key"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config represents the main application configuration
type Config struct {
	RootPath           string                  `yaml:"root_path"`
	Credentials        Credentials             `yaml:"credentials"`
	MaxPosts           int                     `yaml:"max_posts"`
	TopN               int                     `yaml:"top_n"`
	TopWords           int                     `yaml:"top_words"`
	FetchThreadReplies bool                    `yaml:"fetch_thread_replies"`
	Sentiment          SentimentConfig         `yaml:"sentiment"`
	Database           database.DatabaseConfig `yaml:"database"`
	Metrics            MetricsConfig           `yaml:"metrics"`
}

func Default() *Config {
	return &Config{
		MaxPosts:           DEFAULT_MAX_POSTS,
		TopN:               DEFAULT_TOP_N,
		TopWords:           DEFAULT_TOP_WORDS,
		FetchThreadReplies: true,
		Sentiment: SentimentConfig{
			Provider: sentiment.PROVIDER_LEXICON,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// FillDefaults replaces unset numeric limits and the sentiment provider
func (c *Config) FillDefaults() {
	if c.MaxPosts <= 0 {
		c.MaxPosts = DEFAULT_MAX_POSTS
	}
	if c.TopN <= 0 {
		c.TopN = DEFAULT_TOP_N
	}
	if c.TopWords <= 0 {
		c.TopWords = DEFAULT_TOP_WORDS
	}
	if c.Sentiment.Provider == "" {
		c.Sentiment.Provider = sentiment.PROVIDER_LEXICON
	}
}

// ApplyEnv fills empty credentials from the environment
func (c *Config) ApplyEnv() {
	if c.Credentials.BearerToken == "" {
		c.Credentials.BearerToken = os.Getenv(ENV_BEARER_TOKEN)
	}
	if c.Sentiment.ApiKey == "" {
		c.Sentiment.ApiKey = os.Getenv(ENV_OPENAI_API_KEY)
	}
}

func (c *Config) Validate() error {
	if c.Credentials.BearerToken == "" {
		return fmt.Errorf("%w: set credentials.bearer_token or %s", ErrMissingBearerToken, ENV_BEARER_TOKEN)
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// Configuration Management Functions
////////////////////////////////////////////////////////////////////////////////

// LoadEnvFiles loads the existing ones of paths into the environment.
// Variables already set are kept.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ReadConfig reads configuration from the specified path. Keys missing from
// the file keep their default.
func ReadConfig(path string) (*Config, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	result := Default()
	err = yaml.Unmarshal(data, result)
	if err != nil {
		return nil, err
	}
	result.FillDefaults()
	result.ApplyEnv()
	return result, nil
}

// WriteConfig writes configuration to the specified path
func WriteConfig(path string, conf *Config) error {
	file, err := os.OpenFile(path, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := yaml.Marshal(conf)
	if err != nil {
		return err
	}
	_, err = io.Copy(file, bytes.NewReader(data))
	return err
}

// PromptConfig interactively prompts user for configuration and saves it.
// Empty answers keep the default.
func PromptConfig(saveto string, in io.Reader, out io.Writer) (*Config, error) {
	conf := Default()
	scan := bufio.NewScanner(in)

	ask := func(prompt string) string {
		fmt.Fprint(out, prompt)
		scan.Scan()
		return strings.TrimSpace(scan.Text())
	}

	storePath := ask("enter storage dir: ")
	if storePath == "" {
		storePath = "."
	}
	// ensure path is available
	err := os.MkdirAll(storePath, 0755)
	if err != nil {
		return nil, err
	}
	storePath, err = filepath.Abs(storePath)
	if err != nil {
		return nil, err
	}
	conf.RootPath = storePath

	conf.Credentials.BearerToken = ask(fmt.Sprintf("enter bearer token (empty to use $%s): ", ENV_BEARER_TOKEN))

	if v := ask(fmt.Sprintf("enter max posts [%d]: ", DEFAULT_MAX_POSTS)); v != "" {
		conf.MaxPosts, err = strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
	}

	if v := ask("enter sentiment provider (lexicon/openai) [lexicon]: "); v != "" {
		conf.Sentiment.Provider = v
	}

	if v := ask("enter sqlite db path (empty to skip): "); v != "" {
		conf.Database = database.DatabaseConfig{
			Type: database.DATABASE_TYPE_SQLITE,
			Path: v,
		}
	}

	if err := scan.Err(); err != nil {
		return nil, err
	}
	conf.FillDefaults()
	return conf, WriteConfig(saveto, conf)
}
