package corpus

import (
	"context"
	"fmt"
	"os"
)

// Source fetches the raw bytes of a corpus document. Name is used for
// format detection and logging.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// FileSource reads a document from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("corpus: read %s: %w", s.Path, err)
	}
	return data, nil
}

// Load fetches and decodes a document from src.
func Load(ctx context.Context, src Source) (*Corpus, LoadReport, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, LoadReport{}, err
	}
	return Decode(data, FormatFromName(src.Name()))
}

//Personal.AI order the ending
