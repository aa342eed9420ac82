package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

type Config struct {
	// BinDir is where installed binaries land.
	BinDir string `toml:"bin_dir"`
	// RegistryDB and ToolsFile hold the predefined tool catalog.
	RegistryDB string `toml:"registry_db"`
	ToolsFile  string `toml:"tools_file"`
}

// BaseDir is the coolclis data directory, ~/.coolclis unless COOLCLIS_HOME
// is set.
func BaseDir() (string, error) {
	if dir := os.Getenv("COOLCLIS_HOME"); dir != "" {
		return dir, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".coolclis"), nil
}

func Default() (*Config, error) {
	base, err := BaseDir()
	if err != nil {
		return nil, err
	}
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	return &Config{
		BinDir:     filepath.Join(home, ".local", "bin"),
		RegistryDB: filepath.Join(base, "tools.db"),
		ToolsFile:  filepath.Join(base, "tools.json"),
	}, nil
}

// Load reads config.toml from the base directory. On first run the
// defaults are written out so users have a file to edit. Tilde paths in
// the file are expanded.
func Load() (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	base, err := BaseDir()
	if err != nil {
		return nil, err
	}
	configPath := filepath.Join(base, "config.toml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, err
	}

	for _, p := range []*string{&cfg.BinDir, &cfg.RegistryDB, &cfg.ToolsFile} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, err
		}
		*p = expanded
	}

	return cfg, nil
}

func Save(cfg *Config) error {
	base, err := BaseDir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(base, "config.toml")

	if err := os.MkdirAll(base, 0755); err != nil {
		return err
	}
	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
