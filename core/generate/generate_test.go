package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gaurav-prasanna/newscast/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestFromGemini(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role: "model",
				Parts: []*genai.Part{
					{Text: "planning the answer", Thought: true},
					{Text: "## India News\n"},
					{Text: "- headline"},
					{FunctionCall: &genai.FunctionCall{Name: "lookup"}},
					{Text: "trailing"},
				},
			},
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{Title: "thehindu.com", URI: "https://www.thehindu.com/a"}},
					{Web: &genai.GroundingChunkWeb{Title: "dup", URI: "https://www.thehindu.com/a/"}},
					{},
				},
				WebSearchQueries: []string{"india news today"},
				SearchEntryPoint: &genai.SearchEntryPoint{RenderedContent: "<div></div>"},
			},
		}},
	}

	gen := fromGemini("gemini-2.5-flash", resp)

	require.Len(t, gen.Outputs, 4)
	assert.Equal(t, core.OutputThought, gen.Outputs[0].Kind)
	assert.Equal(t, core.Output{Kind: core.OutputText, Text: "## India News\n- headline"}, gen.Outputs[1])
	assert.Equal(t, core.OutputFunctionCall, gen.Outputs[2].Kind)
	assert.Equal(t, "trailing", gen.Outputs[3].Text)

	text, ok := gen.FirstText()
	assert.True(t, ok)
	assert.Equal(t, "## India News\n- headline", text)

	assert.Equal(t, []core.Source{{Title: "thehindu.com", URL: "https://www.thehindu.com/a", Domain: "thehindu.com"}}, gen.Sources)
	assert.Equal(t, []string{"india news today"}, gen.SearchQueries)
	assert.Equal(t, "<div></div>", gen.SuggestionsHTML)
}

func TestFromGemini_NoCandidates(t *testing.T) {
	gen := fromGemini("m", &genai.GenerateContentResponse{})
	assert.Empty(t, gen.Outputs)

	_, ok := gen.FirstText()
	assert.False(t, ok)

	gen = fromGemini("m", nil)
	assert.Equal(t, "m", gen.Model)
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "")
	assert.ErrorContains(t, err, "API_KEY")
}

func TestOpenAI_Generate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-search-preview",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {
					"role": "assistant",
					"content": "## Sports News\n- India win",
					"annotations": [
						{"type": "url_citation", "url_citation": {"url": "https://example.com/s?utm_source=openai", "title": "Example", "start_index": 0, "end_index": 5}},
						{"type": "url_citation", "url_citation": {"url": "https://example.com/s", "title": "Example", "start_index": 6, "end_index": 9}}
					]
				}
			}]
		}`))
	}))
	defer srv.Close()

	gen, err := NewOpenAI("test-key", "", srv.URL)
	require.NoError(t, err)

	out, err := gen.Generate(context.Background(), core.GenerationRequest{Prompt: "news please", WebSearch: true})
	require.NoError(t, err)

	assert.Equal(t, DefaultOpenAIModel, got["model"])
	assert.Contains(t, got, "web_search_options")

	text, ok := out.FirstText()
	assert.True(t, ok)
	assert.Equal(t, "## Sports News\n- India win", text)
	assert.Len(t, out.Sources, 1)
	assert.Equal(t, "example.com", out.Sources[0].Domain)
}

func TestOpenAI_GenerateError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	gen, err := NewOpenAI("test-key", "gpt-4o", srv.URL)
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), core.GenerationRequest{Prompt: "x"})
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "requests must not be retried")
}

func TestStatic_Generate(t *testing.T) {
	gen, err := Static{}.Generate(context.Background(), core.GenerationRequest{})
	require.NoError(t, err)

	text, ok := gen.FirstText()
	assert.True(t, ok)
	assert.Equal(t, SampleBriefing, text)
}
