package config

import (
	"os"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"

	"github.com/agencyhub/agencyhub/internal/domain"
)

type Config struct {
	Server   Server   `yaml:"server"`
	AI       AI       `yaml:"ai"`
	Storage  Storage  `yaml:"storage"`
	Firebase Firebase `yaml:"firebase"`
	Mail     Mail     `yaml:"mail"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PublicBaseURL string `yaml:"publicBaseURL"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	RedisPassword string `yaml:"redisPassword"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
	RequireAuth   *bool  `yaml:"requireAuth"` // unset means true
	VoteDedup     string `yaml:"voteDedup"`   // cookie, server
	VoteSalt      string `yaml:"voteSalt"`
}

type AI struct {
	APIKey      string `yaml:"apiKey"`
	BaseURL     string `yaml:"baseURL"`
	Model       string `yaml:"model"`
	VisionModel string `yaml:"visionModel"`
}

type Storage struct {
	Bucket        string `yaml:"bucket"`
	PublicBaseURL string `yaml:"publicBaseURL"`
}

type Firebase struct {
	ProjectID       string `yaml:"projectId"`
	CredentialsFile string `yaml:"credentialsFile"`
}

type Mail struct {
	SendgridKey string `yaml:"sendgridKey"`
	FromAddress string `yaml:"fromAddress"`
	FromName    string `yaml:"fromName"`
}

// Domain returns the subset of the configuration the usecases read.
func (c Config) Domain() domain.Config {
	return domain.Config{
		PublicBaseURL: c.Server.PublicBaseURL,
		RequireAuth:   c.Server.RequireAuth == nil || *c.Server.RequireAuth,
		VoteDedup:     c.Server.VoteDedup,
	}
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	applyEnv(&config)
	applyDefaults(&config)

	err = config.Validate()
	if err != nil {
		return Config{}, err
	}

	return config, nil
}

func applyEnv(config *Config) {
	if v := os.Getenv("AGENCYHUB_AI_API_KEY"); v != "" {
		config.AI.APIKey = v
	}
	if v := os.Getenv("AGENCYHUB_SENDGRID_KEY"); v != "" {
		config.Mail.SendgridKey = v
	}
	if v := os.Getenv("AGENCYHUB_POSTGRES_DSN"); v != "" {
		config.Server.PostgresDsn = v
	}
}

func applyDefaults(config *Config) {
	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}
	if config.Server.PublicBaseURL == "" {
		config.Server.PublicBaseURL = "http://localhost:8000"
	}
	if config.Server.RequireAuth == nil {
		requireAuth := true
		config.Server.RequireAuth = &requireAuth
	}
	if config.Server.VoteDedup == "" {
		config.Server.VoteDedup = domain.VoteDedupCookie
	}
	if config.AI.BaseURL == "" {
		config.AI.BaseURL = "https://api.openai.com/v1/"
	}
	if config.AI.Model == "" {
		config.AI.Model = "gpt-4o-mini"
	}
	if config.AI.VisionModel == "" {
		config.AI.VisionModel = config.AI.Model
	}
	if config.Storage.PublicBaseURL == "" && config.Storage.Bucket != "" {
		config.Storage.PublicBaseURL = "https://storage.googleapis.com/" + config.Storage.Bucket
	}
	if config.Mail.FromName == "" {
		config.Mail.FromName = "Agency Hub"
	}
}

func (c Config) Validate() error {
	if c.Server.PostgresDsn == "" {
		return errors.New("server.postgresDsn is required")
	}
	switch c.Server.VoteDedup {
	case domain.VoteDedupCookie:
	case domain.VoteDedupServer:
		if c.Server.RedisAddr == "" {
			return errors.New("server.voteDedup=server requires server.redisAddr")
		}
		if c.Server.VoteSalt == "" {
			return errors.New("server.voteDedup=server requires server.voteSalt")
		}
	default:
		return errors.Errorf("unknown server.voteDedup %q", c.Server.VoteDedup)
	}
	return nil
}
