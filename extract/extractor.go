package extract

import "context"

// Extractor turns one labeled paragraph's text into structured fields, or
// reports a failure. Implementations must not retain the paragraph text.
type Extractor interface {
	Extract(ctx context.Context, paragraph string) (map[string]any, error)
}

// verbatimExtractor is the fallback for labels without a dedicated
// extractor, including labels outside the closed vocabulary. It stores the
// paragraph text unchanged under the label's field key and never fails.
type verbatimExtractor struct {
	key string
}

func (v verbatimExtractor) Extract(_ context.Context, paragraph string) (map[string]any, error) {
	return map[string]any{v.key: paragraph}, nil
}
