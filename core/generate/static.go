package generate

import (
	"context"

	"github.com/gaurav-prasanna/newscast/core"
)

// SampleBriefing is returned by Static when no text is configured.
const SampleBriefing = `## India News
- **Monsoon** reaches *Kerala* two days ahead of forecast
- Parliament's budget session opens with debate on fuel prices

## International News
- Leaders agree on a climate finance framework at the summit

## Sports News
- India clinch the T20 series 3-1
- Real Madrid advance to the Champions League semi-finals
`

// Static returns a fixed response without any network call.
// It backs the "mock" provider used for local development and tests.
type Static struct {
	Text    string
	Sources []core.Source
}

// Generate returns the configured text as a single text output.
func (s Static) Generate(_ context.Context, _ core.GenerationRequest) (*core.Generation, error) {
	text := s.Text
	if text == "" {
		text = SampleBriefing
	}
	return &core.Generation{
		Model:   "static",
		Outputs: []core.Output{{Kind: core.OutputText, Text: text}},
		Sources: s.Sources,
	}, nil
}
