package config

import (
	"fmt"
	"path/filepath"

	"github.com/zeromicro/go-zero/rest"

	"hlgw-api/pkg/confkit"
	exchangepkg "hlgw-api/pkg/exchange"
)

type Config struct {
	rest.RestConf
	// Env indicates the running environment: test | dev | prod
	Env string `json:",default=test"`

	Exchange confkit.Section[exchangepkg.Config] `json:",optional"`

	mainPath string
	baseDir  string
}

func (c *Config) IsTestEnv() bool {
	return c.Env == "test" || c.Env == ""
}

// MainPath returns the absolute path of the loaded config file.
func (c *Config) MainPath() string {
	return c.mainPath
}

// BaseDir returns the directory the config file was loaded from. Section file
// paths resolve relative to it.
func (c *Config) BaseDir() string {
	return c.baseDir
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	cfg, err := confkit.LoadFile[Config](absPath, true)
	if err != nil {
		return nil, err
	}

	cfg.mainPath = absPath
	cfg.baseDir = confkit.BaseDir(absPath)
	return cfg, nil
}
