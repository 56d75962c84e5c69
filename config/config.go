package config

import (
	"fmt"
	"os"
	"time"

	"github.com/promptforge/image-relay/internal/consts"
	"gopkg.in/yaml.v3"
)

var GConfig *Config

func Init(filePath string) {
	config, err := os.ReadFile(filePath)
	if err != nil {
		panic(err)
	}
	initFromYaml(config)
	GConfig.loadEnv()
	err = GConfig.Verify()
	if err != nil {
		panic(err)
	}
}

func initFromYaml(config []byte) {
	err := yaml.Unmarshal(config, &GConfig)
	if err != nil {
		panic(err)
	}
}

type Config struct {
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	LogMaxSize    int    `yaml:"log_max_size"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	LogMaxAge     int    `yaml:"log_max_age"`

	ProviderTimeout  string `yaml:"provider_timeout"`
	ProviderOverride string `yaml:"provider_override"`
	FallbackPolicy   string `yaml:"fallback_policy"`

	Credentials `yaml:"credentials"`
}

type Credentials struct {
	GeminiKey       string `yaml:"gemini_key"`
	StabilityKey    string `yaml:"stability_key"`
	HuggingFaceKey  string `yaml:"huggingface_key"`
	OpenAIKey       string `yaml:"openai_key"`
	PollinationsKey string `yaml:"pollinations_key"`
}

// loadEnv lets environment variables override file values, so secrets can
// stay out of the YAML entirely.
func (c *Config) loadEnv() {
	setIfPresent := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setIfPresent(&c.GeminiKey, "GEMINI_API_KEY")
	setIfPresent(&c.StabilityKey, "STABILITY_API_KEY")
	setIfPresent(&c.HuggingFaceKey, "HF_API_TOKEN")
	setIfPresent(&c.OpenAIKey, "OPENAI_API_KEY")
	setIfPresent(&c.PollinationsKey, "POLLINATIONS_API_KEY")
	setIfPresent(&c.ProviderOverride, "PROVIDER_OVERRIDE")
	setIfPresent(&c.FallbackPolicy, "FALLBACK_POLICY")
}

func (c *Config) Verify() error {
	if c.FallbackPolicy == "" {
		c.FallbackPolicy = consts.PolicySignal.String()
	}
	if c.FallbackPolicy != consts.PolicySignal.String() && c.FallbackPolicy != consts.PolicyStock.String() {
		return fmt.Errorf("fallback_policy must be %q or %q", consts.PolicySignal, consts.PolicyStock)
	}
	if c.ProviderTimeout == "" {
		c.ProviderTimeout = consts.DefaultProviderTimeout.String()
	}
	if _, err := time.ParseDuration(c.ProviderTimeout); err != nil {
		return err
	}
	return nil
}

func (c *Config) Timeout() time.Duration {
	d, _ := time.ParseDuration(c.ProviderTimeout)
	return d
}

func (c *Config) Policy() consts.FallbackPolicy {
	return consts.FallbackPolicy(c.FallbackPolicy)
}
