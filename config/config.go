package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath      = "."
	defaultUserAgent = "afisha-go"

	defaultAPITimeout   = 10 * time.Second
	defaultReferenceTTL = 10 * time.Minute
	defaultVolatileTTL  = 5 * time.Minute
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// API describes the remote Afisha backend the accessors talk to.
	API struct {
		BaseURL   string        `json:"baseUrl" yaml:"baseUrl"`
		Timeout   time.Duration `json:"timeout" yaml:"timeout"`
		UserAgent string        `json:"userAgent" yaml:"userAgent"`
	} `json:"api" yaml:"api"`

	// Cache holds the freshness windows of the query layer. Reference data
	// (cities) tolerates a longer window than volatile catalog resources.
	Cache struct {
		ReferenceTTL time.Duration `json:"referenceTtl" yaml:"referenceTtl"`
		VolatileTTL  time.Duration `json:"volatileTtl" yaml:"volatileTtl"`
	} `json:"cache" yaml:"cache"`

	// Storage locates the persisted client state file (token, user,
	// selected city). Empty means the OS user config directory.
	Storage struct {
		Path string `json:"path" yaml:"path"`
	} `json:"storage" yaml:"storage"`

	// Stub configures the development stub API server.
	Stub *StubConfig `json:"stub" yaml:"stub"`

	// Upload configures the image upload provider. Nil means uploads are
	// unavailable and callers get the degraded URL-entry path.
	Upload *UploadProviderConfig `json:"upload" yaml:"upload"`

	// Assist configures the AI image-idea provider.
	Assist *AssistProviderConfig `json:"assist" yaml:"assist"`

	// Email configures the outbound email provider used by the backend;
	// carried here so the stub can report a realistic configuration state.
	Email *EmailProviderConfig `json:"email" yaml:"email"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StubConfig defines the development stub API server settings.
type StubConfig struct {
	Port      int           `json:"port" yaml:"port"`
	JWTSecret string        `json:"jwtSecret" yaml:"jwtSecret"`
	TokenTTL  time.Duration `json:"tokenTtl" yaml:"tokenTtl"`
}

// UploadProviderConfig defines the folder-scoped signed upload provider.
type UploadProviderConfig struct {
	CloudName  string `json:"cloudName" yaml:"cloudName"`
	APIKey     string `json:"apiKey" yaml:"apiKey"`
	APISecret  string `json:"apiSecret" yaml:"apiSecret"`
	BaseFolder string `json:"baseFolder" yaml:"baseFolder"`
}

// Configured reports whether the provider can issue signed upload configs.
func (c *UploadProviderConfig) Configured() bool {
	return c != nil && c.CloudName != "" && c.APIKey != ""
}

// AssistProviderConfig defines the AI image-idea generation provider.
type AssistProviderConfig struct {
	APIKey string `json:"apiKey" yaml:"apiKey"`
	Model  string `json:"model" yaml:"model"`
}

// Configured reports whether image-idea generation is available.
func (c *AssistProviderConfig) Configured() bool {
	return c != nil && c.APIKey != ""
}

// EmailProviderConfig defines the transactional email provider identity.
type EmailProviderConfig struct {
	APIKey string `json:"apiKey" yaml:"apiKey"`
	Sender string `json:"sender" yaml:"sender"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: API_BASEURL -> api.baseUrl (not api.baseurl)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		return nil, errors.New("api.baseUrl must be configured")
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = defaultAPITimeout
	}
	if strings.TrimSpace(cfg.API.UserAgent) == "" {
		cfg.API.UserAgent = defaultUserAgent
	}
	if cfg.Cache.ReferenceTTL <= 0 {
		cfg.Cache.ReferenceTTL = defaultReferenceTTL
	}
	if cfg.Cache.VolatileTTL <= 0 {
		cfg.Cache.VolatileTTL = defaultVolatileTTL
	}
}

// StatePath resolves the client state file location, falling back to the
// OS user config directory when no explicit path is configured.
func (cfg *Config) StatePath() (string, error) {
	if cfg.Storage.Path != "" {
		return cfg.Storage.Path, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve user config dir")
	}

	return filepath.Join(base, "afisha", "state.json"), nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
