// Package confkit carries the small config-loading conventions shared by the
// gateway binaries: env-expanded path resolution, go-zero file loading, and
// sections that hydrate from sidecar files next to the main config.
package confkit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeromicro/go-zero/core/conf"
)

// LoadFile reads a config file into T via go-zero's conf loader. With useEnv
// set, ${VAR} references inside the file are expanded from the environment.
func LoadFile[T any](path string, useEnv bool) (*T, error) {
	var cfg T
	var opts []conf.Option
	if useEnv {
		opts = append(opts, conf.UseEnv())
	}
	if err := conf.Load(path, &cfg, opts...); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &cfg, nil
}

// ResolvePath expands environment variables in file and, unless the result is
// already absolute, anchors it under base.
func ResolvePath(base, file string) string {
	file = os.ExpandEnv(file)
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}

// BaseDir is the directory sidecar section files resolve against, taken from
// the main config file's location.
func BaseDir(mainPath string) string {
	return filepath.Dir(mainPath)
}

// Section is a config subtree whose body lives in its own file. The main
// config names the file; Hydrate fills in the parsed value.
type Section[T any] struct {
	File  string `json:",optional"`
	Value *T     `json:"-"`
}

// Hydrate resolves File against base and runs loader on it, storing the
// resolved path and parsed value. A Section with no File stays empty.
func (s *Section[T]) Hydrate(base string, loader func(string) (*T, error)) error {
	if s.File == "" {
		return nil
	}
	p := ResolvePath(base, s.File)
	v, err := loader(p)
	if err != nil {
		return err
	}
	s.File, s.Value = p, v
	return nil
}
