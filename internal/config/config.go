package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TobiSchelling/billtally/internal/tabulate"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

// FileName is the config file looked up in the working directory.
const FileName = "billtally.yaml"

type Config struct {
	Inputs   Inputs   `yaml:"inputs"`
	Report   Report   `yaml:"report"`
	Output   Output   `yaml:"output"`
	Snapshot Snapshot `yaml:"snapshot"`
	Logging  Logging  `yaml:"logging"`
}

type Inputs struct {
	Legislators string `yaml:"legislators"`
	Bills       string `yaml:"bills"`
	Votes       string `yaml:"votes"`
	VoteResults string `yaml:"vote_results"`
}

type Report struct {
	DeliverMode string `yaml:"deliver_mode"`
}

type Output struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

type Snapshot struct {
	Path string `yaml:"path"`
}

type Logging struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Inputs: Inputs{
			Legislators: "legislators.csv",
			Bills:       "bills_input.csv",
			Votes:       "votes.csv",
			VoteResults: "vote_results.csv",
		},
		Report:  Report{DeliverMode: "1"},
		Output:  Output{Path: "output.csv", Format: "csv"},
		Logging: Logging{File: "logging.log", Level: "INFO"},
	}
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ./billtally.yaml. An empty result means no file was found
// and defaults apply.
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	if _, err := os.Stat(FileName); err == nil {
		return FileName, nil
	}
	return "", nil
}

// Load reads and parses a config YAML file. An empty path yields defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Paths returns the configured input table locations.
func (c *Config) Paths() tabulate.Paths {
	return tabulate.Paths{
		Legislators: c.Inputs.Legislators,
		Bills:       c.Inputs.Bills,
		Votes:       c.Inputs.Votes,
		VoteResults: c.Inputs.VoteResults,
	}
}
