package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rohmanhakim/robotstxt/pkg/hashutil"
)

// Config holds everything a single CLI invocation needs: which robots.txt
// to read, which user-agent(s) to evaluate, which URL to check, and how
// to present the result.
type Config struct {
	robotsPath string
	agents     []string
	url        string
	report     bool
	hashAlgo   hashutil.HashAlgo
}

type configDTO struct {
	RobotsPath string   `json:"robotsPath"`
	Agents     []string `json:"agents"`
	URL        string   `json:"url"`
	Report     bool     `json:"report,omitempty"`
	HashAlgo   string   `json:"hashAlgo,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg, err := WithDefault(dto.RobotsPath, dto.Agents, dto.URL).Build()
	if err != nil {
		return Config{}, err
	}
	cfg.report = dto.Report
	if dto.HashAlgo != "" {
		cfg.hashAlgo = hashutil.HashAlgo(dto.HashAlgo)
	}
	return cfg, nil
}

// WithConfigFile loads a Config from a JSON file instead of CLI flags.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	if err := json.Unmarshal(configContent, &cfgDTO); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config builder with the mandatory fields set
// and sha256 as the default fingerprint algorithm.
func WithDefault(robotsPath string, agents []string, url string) *Config {
	return &Config{
		robotsPath: robotsPath,
		agents:     agents,
		url:        url,
		hashAlgo:   hashutil.HashAlgoSHA256,
	}
}

func (c *Config) WithRobotsPath(path string) *Config {
	c.robotsPath = path
	return c
}

func (c *Config) WithAgents(agents []string) *Config {
	c.agents = agents
	return c
}

func (c *Config) WithURL(url string) *Config {
	c.url = url
	return c
}

func (c *Config) WithReport(report bool) *Config {
	c.report = report
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

// Build validates the accumulated fields and returns the finished Config.
func (c *Config) Build() (Config, error) {
	if c.robotsPath == "" {
		return Config{}, fmt.Errorf("%w: robotsPath cannot be empty", ErrInvalidConfig)
	}
	if len(c.agents) == 0 {
		return Config{}, fmt.Errorf("%w: at least one user-agent is required", ErrInvalidConfig)
	}
	if c.hashAlgo == "" {
		c.hashAlgo = hashutil.HashAlgoSHA256
	}
	return *c, nil
}

func (c Config) RobotsPath() string {
	return c.robotsPath
}

func (c Config) Agents() []string {
	agents := make([]string, len(c.agents))
	copy(agents, c.agents)
	return agents
}

func (c Config) URL() string {
	return c.url
}

func (c Config) Report() bool {
	return c.report
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}
