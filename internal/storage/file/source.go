package file

import (
	"context"
	"fmt"
	"os"
)

// Source reads the catalog document from a local JSON file.
type Source struct{ path string }

func New(path string) *Source { return &Source{path: path} }

func (s *Source) Name() string { return "file:" + s.path }

func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return b, nil
}
