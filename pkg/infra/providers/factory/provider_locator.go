package factory

import (
	"fmt"

	"github.com/devfest-tools/modgate/pkg/infra/providers"
	"github.com/devfest-tools/modgate/pkg/infra/providers/anthropic"
	"github.com/devfest-tools/modgate/pkg/infra/providers/gemini"
	"github.com/devfest-tools/modgate/pkg/infra/providers/openai"
	"github.com/valyala/fasthttp"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

//go:generate mockery --name=ProviderLocator --dir=. --output=./mocks --filename=provider_locator_mock.go --case=underscore --with-expecter

type ProviderLocator interface {
	Get(provider string) (providers.Client, error)
}

type providerLocator struct {
	httpClient *fasthttp.Client
}

func NewProviderLocator(httpClient *fasthttp.Client) ProviderLocator {
	return &providerLocator{
		httpClient: httpClient,
	}
}

func (f *providerLocator) Get(provider string) (providers.Client, error) {
	switch provider {
	case ProviderGemini:
		return gemini.NewGeminiClient(f.httpClient), nil
	case ProviderOpenAI:
		return openai.NewOpenaiClient(), nil
	case ProviderAnthropic:
		return anthropic.NewAnthropicClient(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
