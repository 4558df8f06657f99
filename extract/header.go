package extract

import (
	"context"
	"fmt"

	"github.com/gcnml/gcnkit/circular"
)

// headerExtractor parses the HeaderInformation paragraph deterministically.
// It is the one mandatory extractor: its failure aborts the whole run.
type headerExtractor struct{}

func (headerExtractor) Extract(_ context.Context, paragraph string) (map[string]any, error) {
	h, err := circular.ParseHeader(paragraph)
	if err != nil {
		return nil, fmt.Errorf("parsing header paragraph: %w", err)
	}
	return h.Fields(), nil
}
