package llm

import "context"

// deepseekProvider talks to the DeepSeek platform API, which is
// OpenAI-compatible.
type deepseekProvider struct {
	base openAICompatClient
}

// NewDeepSeek creates a provider for DeepSeek.
func NewDeepSeek(cfg Config) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.deepseek.com"
	}
	if cfg.Model == "" {
		cfg.Model = "deepseek-chat"
	}
	return &deepseekProvider{base: newOpenAICompatClient(cfg)}
}

func (p *deepseekProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	return p.base.chat(ctx, req)
}
