package confkit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath expands environment variables in file and, when the result is
// relative, joins it onto base.
func ResolvePath(base, file string) string {
	file = os.ExpandEnv(file)
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}

// Loader parses one module config file.
type Loader[T any] func(path string) (*T, error)

// Section is a block of the main config whose body lives in its own file, e.g.
//
//	Capsule:
//	  File: capsule.yaml
//
// Value is filled by Hydrate, or set directly by callers building a config in
// code.
type Section[T any] struct {
	File  string `json:",optional"`
	Value *T     `json:"-"`
}

// Hydrate loads File relative to base. A blank File leaves the section as it
// is. On success File holds the resolved path.
func (s *Section[T]) Hydrate(base string, load Loader[T]) error {
	if strings.TrimSpace(s.File) == "" {
		return nil
	}
	path := ResolvePath(base, s.File)
	v, err := load(path)
	if err != nil {
		return fmt.Errorf("section %s: %w", path, err)
	}
	if v == nil {
		return fmt.Errorf("section %s: loader returned no value", path)
	}
	s.File, s.Value = path, v
	return nil
}

// ValueOr returns Value, or fallback() when the section was never filled.
func (s *Section[T]) ValueOr(fallback func() *T) *T {
	if s.Value != nil {
		return s.Value
	}
	return fallback()
}

// Origin describes where the section's value comes from: the file path,
// "inline" for a value set in code, or "defaults".
func (s *Section[T]) Origin() string {
	switch {
	case strings.TrimSpace(s.File) != "":
		return s.File
	case s.Value != nil:
		return "inline"
	default:
		return "defaults"
	}
}
