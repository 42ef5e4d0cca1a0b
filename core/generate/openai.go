package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/gaurav-prasanna/newscast/core"
	"github.com/gaurav-prasanna/newscast/core/sources"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultOpenAIModel supports web search through chat completions.
const DefaultOpenAIModel = "gpt-4o-search-preview"

// OpenAI implements core.Generator using the official openai-go SDK (chat completions).
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates an OpenAI generator. baseURL may point at any
// OpenAI-compatible endpoint. SDK retries are disabled.
func NewOpenAI(apiKey, model, baseURL string, opts ...option.RequestOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing; set OPENAI_API_KEY")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &OpenAI{client: openai.NewClient(reqOpts...), model: model}, nil
}

// Generate sends the prompt as a single user message.
func (o *OpenAI) Generate(ctx context.Context, req core.GenerationRequest) (*core.Generation, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(req.Prompt)},
	}
	if req.WebSearch {
		params.WebSearchOptions = openai.ChatCompletionNewParamsWebSearchOptions{
			SearchContextSize: "medium",
		}
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}

	gen := &core.Generation{Model: model}
	if len(resp.Choices) == 0 {
		return gen, nil
	}
	msg := resp.Choices[0].Message
	if msg.Content != "" {
		gen.Outputs = append(gen.Outputs, core.Output{Kind: core.OutputText, Text: msg.Content})
	}
	for _, call := range msg.ToolCalls {
		gen.Outputs = append(gen.Outputs, core.Output{Kind: core.OutputFunctionCall, Text: call.Function.Name})
	}

	set := sources.NewSet()
	for _, a := range msg.Annotations {
		set.Add(core.Source{Title: a.URLCitation.Title, URL: a.URLCitation.URL})
	}
	gen.Sources = set.All()
	return gen, nil
}
