package llm

import (
	"errors"
	"net/http"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter attribution headers. OpenRouter lists calls under this app
// name on its usage pages.
const (
	openRouterReferer = "https://github.com/abhisek/unitutor"
	openRouterTitle   = "UniTutor"
)

// OpenRouterProvider speaks the OpenAI wire format to OpenRouter, which
// routes the call to the vendor named in the model ID prefix.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	headers := http.Header{}
	headers.Set("HTTP-Referer", openRouterReferer)
	headers.Set("X-Title", openRouterTitle)

	return &OpenRouterProvider{
		OpenAIProvider: newOpenAICompatible(cfg.APIKey, baseURL, cfg.Model, headers),
	}, nil
}

// headerTransport adds fixed headers to each outgoing request.
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, vs := range t.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return t.base.RoundTrip(req)
}
