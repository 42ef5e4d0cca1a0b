// Package prompt assembles the instruction sent to the generation service
// from the user's topic and region filters.
package prompt

import (
	"strings"

	"github.com/gaurav-prasanna/newscast/core"
)

// Topics in catalog order.
const (
	India         core.Topic = "India"
	International core.Topic = "International"
	Sports        core.Topic = "Sports"
	Entertainment core.Topic = "Entertainment"
	Business      core.Topic = "Business"
	Technology    core.Topic = "Technology"
)

// AllRegions is the sentinel region that replaces the itemized region list
// with a blanket instruction.
const AllRegions = "All States"

const preamble = `Give me well-structured news updates.
Include ONLY information from the last 24 hours if you know it.

Format the output EXACTLY like this:
`

const closing = "Keep it short, factual, and in clean bullet points."

// topicBlocks maps each topic to its heading and scope guidance.
var topicBlocks = map[core.Topic]string{
	India: `## India News
- headline 1
- headline 2
- headline 3`,
	International: `## International News
- headline 1
- headline 2`,
	Sports: `## Sports News
Include headlines from:
- Cricket
- Football (EPL, La Liga, Serie A, Ligue 1, Bundesliga, Champions League, Europa League, ISL, etc.)
- Badminton and Tennis
- Any other major sports events

Use bullet points:
- headline 1
- headline 2
- headline 3`,
	Entertainment: `## Entertainment News (India + global)
Include headlines from:
- Bollywood (India)
- Hollywood (global)
- Major film releases or celebrity updates

Use bullet points:
- headline 1
- headline 2`,
	Business: `## Business News
Include headlines from:
- Markets (Sensex, Nifty, global indices)
- Major company results and deals
- Economy and policy updates

Use bullet points:
- headline 1
- headline 2`,
	Technology: `## Technology News
Include headlines from:
- Product launches and major platform updates
- Startups and funding
- Science and space

Use bullet points:
- headline 1
- headline 2`,
}

var catalog = []core.Topic{India, International, Sports, Entertainment, Business, Technology}

// Topics returns the topic catalog in order.
func Topics() []core.Topic {
	return append([]core.Topic(nil), catalog...)
}

// Defaults is the selection offered before the user changes anything: the
// four sections of the classic daily briefing across every region.
func Defaults() core.FilterSelection {
	return core.FilterSelection{
		Topics:  []core.Topic{India, International, Sports, Entertainment},
		Regions: []string{AllRegions},
	}
}

// IsTopic reports whether t is in the catalog.
func IsTopic(t core.Topic) bool {
	_, ok := topicBlocks[t]
	return ok
}

// Build produces the instruction string for sel.
// Topic blocks are emitted in catalog order regardless of selection order;
// unknown topics are skipped. Callers must reject empty selections first.
func Build(sel core.FilterSelection) string {
	selected := make(map[core.Topic]bool, len(sel.Topics))
	for _, t := range sel.Topics {
		selected[t] = true
	}

	var b strings.Builder
	b.WriteString(preamble)
	for _, t := range catalog {
		if !selected[t] {
			continue
		}
		b.WriteString("\n")
		b.WriteString(topicBlocks[t])
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(regionClause(sel.Regions))
	b.WriteString("\n\n")
	b.WriteString(closing)
	b.WriteString("\n")
	return b.String()
}

// regionClause returns the blanket clause when the sentinel is present,
// otherwise the itemized focus list in caller order without duplicates.
func regionClause(regions []string) string {
	seen := make(map[string]bool, len(regions))
	var items []string
	for _, r := range regions {
		r = strings.TrimSpace(r)
		if r == AllRegions {
			return "Cover news from all regions (all Indian states and union territories)."
		}
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		items = append(items, r)
	}
	if len(items) == 0 {
		return "Cover news from all regions (all Indian states and union territories)."
	}
	return "For regional coverage, focus on: " + strings.Join(items, ", ") + "."
}
