// Package generate implements the Generator interface for the supported
// generation services. Every client maps its SDK response onto the tagged
// core.Output list plus grounding metadata.
package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/gaurav-prasanna/newscast/core"
	"github.com/gaurav-prasanna/newscast/core/sources"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini calls the Gemini API through the official genai SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini generator. The API key is required.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key missing; set API_KEY")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Generate sends the prompt, with Google Search grounding when requested.
func (g *Gemini) Generate(ctx context.Context, req core.GenerationRequest) (*core.Generation, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}

	var cfg *genai.GenerateContentConfig
	if req.WebSearch {
		cfg = &genai.GenerateContentConfig{
			Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return fromGemini(model, resp), nil
}

// fromGemini maps the first candidate onto a Generation. Adjacent text
// parts are merged into one text output, since grounded answers are often
// split at citation boundaries.
func fromGemini(model string, resp *genai.GenerateContentResponse) *core.Generation {
	gen := &core.Generation{Model: model}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return gen
	}
	cand := resp.Candidates[0]

	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			out, ok := outputFromPart(part)
			if !ok {
				continue
			}
			last := len(gen.Outputs) - 1
			if out.Kind == core.OutputText && last >= 0 && gen.Outputs[last].Kind == core.OutputText {
				gen.Outputs[last].Text += out.Text
				continue
			}
			gen.Outputs = append(gen.Outputs, out)
		}
	}

	if gm := cand.GroundingMetadata; gm != nil {
		set := sources.NewSet()
		for _, chunk := range gm.GroundingChunks {
			if chunk == nil || chunk.Web == nil {
				continue
			}
			set.Add(core.Source{Title: chunk.Web.Title, URL: chunk.Web.URI})
		}
		gen.Sources = set.All()
		gen.SearchQueries = gm.WebSearchQueries
		if gm.SearchEntryPoint != nil {
			gen.SuggestionsHTML = gm.SearchEntryPoint.RenderedContent
		}
	}
	return gen
}

// outputFromPart tags a single content part. Empty parts are dropped.
func outputFromPart(p *genai.Part) (core.Output, bool) {
	switch {
	case p == nil:
		return core.Output{}, false
	case p.Thought:
		return core.Output{Kind: core.OutputThought, Text: p.Text}, true
	case p.Text != "":
		return core.Output{Kind: core.OutputText, Text: p.Text}, true
	case p.InlineData != nil:
		return core.Output{Kind: core.OutputBlob, MIMEType: p.InlineData.MIMEType, Data: p.InlineData.Data}, true
	case p.FunctionCall != nil:
		return core.Output{Kind: core.OutputFunctionCall, Text: p.FunctionCall.Name}, true
	case p.ExecutableCode != nil:
		return core.Output{Kind: core.OutputCode, Text: p.ExecutableCode.Code}, true
	case p.CodeExecutionResult != nil:
		return core.Output{Kind: core.OutputCodeResult, Text: p.CodeExecutionResult.Output}, true
	}
	return core.Output{}, false
}
