package env

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// FilePrefix is the optional location prefix accepted by DefaultResourceLoader.
const FilePrefix = "file:"

// ResourceLoader reads resources such as configuration files.
type ResourceLoader interface {
	Resource(location string) ([]byte, error)
}

// DefaultResourceLoader loads resources from an afero filesystem.
type DefaultResourceLoader struct {
	fs afero.Fs
}

// NewDefaultResourceLoader returns a loader reading from fs. A nil fs reads
// from the operating system.
func NewDefaultResourceLoader(fs afero.Fs) *DefaultResourceLoader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &DefaultResourceLoader{fs: fs}
}

func (l *DefaultResourceLoader) Resource(location string) ([]byte, error) {
	path := strings.TrimPrefix(location, FilePrefix)
	if path == "" {
		return nil, fmt.Errorf("empty resource location")
	}
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("load resource %q: %w", location, err)
	}
	return data, nil
}

// Fs returns the filesystem backing the loader.
func (l *DefaultResourceLoader) Fs() afero.Fs {
	return l.fs
}
