package config

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// ApplicationConfig is the resolved runtime configuration: defaults, then an
// optional YAML config file, then functional options from CLI flags.
type ApplicationConfig struct {
	Context context.Context `yaml:"-"`

	Address      string `yaml:"address"`
	CORS         bool   `yaml:"cors"`
	DisableWebUI bool   `yaml:"disable_webui"`

	CivitaiEndpoint     string `yaml:"civitai_endpoint"`
	CivitaiToken        string `yaml:"civitai_token"`
	HuggingFaceEndpoint string `yaml:"huggingface_endpoint"`
	HuggingFaceToken    string `yaml:"huggingface_token"`

	PageSize     int           `yaml:"page_size"`
	MaxResults   int           `yaml:"max_results"`
	MaxRetries   int           `yaml:"max_retries"`
	RequestDelay time.Duration `yaml:"request_delay"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
}

type AppOption func(*ApplicationConfig)

func NewApplicationConfig(o ...AppOption) *ApplicationConfig {
	opt := &ApplicationConfig{
		Context:      context.Background(),
		Address:      ":8099",
		PageSize:     100,
		MaxResults:   500,
		MaxRetries:   3,
		RequestDelay: 500 * time.Millisecond,
		SessionTTL:   30 * time.Minute,
	}
	for _, oo := range o {
		oo(opt)
	}
	return opt
}

func WithContext(ctx context.Context) AppOption {
	return func(o *ApplicationConfig) {
		o.Context = ctx
	}
}

func WithAddress(address string) AppOption {
	return func(o *ApplicationConfig) {
		o.Address = address
	}
}

func WithCors(b bool) AppOption {
	return func(o *ApplicationConfig) {
		o.CORS = b
	}
}

func WithDisableWebUI(b bool) AppOption {
	return func(o *ApplicationConfig) {
		o.DisableWebUI = b
	}
}

func WithCivitaiEndpoint(endpoint string) AppOption {
	return func(o *ApplicationConfig) {
		if endpoint != "" {
			o.CivitaiEndpoint = endpoint
		}
	}
}

func WithCivitaiToken(token string) AppOption {
	return func(o *ApplicationConfig) {
		if token != "" {
			o.CivitaiToken = token
		}
	}
}

func WithHuggingFaceEndpoint(endpoint string) AppOption {
	return func(o *ApplicationConfig) {
		if endpoint != "" {
			o.HuggingFaceEndpoint = endpoint
		}
	}
}

func WithHuggingFaceToken(token string) AppOption {
	return func(o *ApplicationConfig) {
		if token != "" {
			o.HuggingFaceToken = token
		}
	}
}

func WithPageSize(n int) AppOption {
	return func(o *ApplicationConfig) {
		if n > 0 {
			o.PageSize = n
		}
	}
}

func WithMaxResults(n int) AppOption {
	return func(o *ApplicationConfig) {
		if n > 0 {
			o.MaxResults = n
		}
	}
}

func WithMaxRetries(n int) AppOption {
	return func(o *ApplicationConfig) {
		if n > 0 {
			o.MaxRetries = n
		}
	}
}

func WithRequestDelay(d time.Duration) AppOption {
	return func(o *ApplicationConfig) {
		if d > 0 {
			o.RequestDelay = d
		}
	}
}

func WithSessionTTL(d time.Duration) AppOption {
	return func(o *ApplicationConfig) {
		if d > 0 {
			o.SessionTTL = d
		}
	}
}

// WithConfigFile overlays values from a YAML config file onto the config
// built so far. Fields the file does not mention keep their current value.
func WithConfigFile(path string) AppOption {
	return func(o *ApplicationConfig) {
		if path == "" {
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("failed to read config file")
			return
		}
		if err := yaml.Unmarshal(data, o); err != nil {
			log.Error().Err(err).Str("path", path).Msg("failed to parse config file")
		}
	}
}
