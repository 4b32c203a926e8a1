package generation

import (
	"fmt"
	"strconv"
	"strings"

	"training-builder-be/internal/entity"
	"training-builder-be/pkg/retrieval"
)

// PromptBuilder renders one persona's generation request into the tagged
// prompt format the content-generation provider expects.
type PromptBuilder struct {
	persona   Persona
	metadata  entity.SessionMetadata
	retrieved []retrieval.ScoredItem
	ragWeight float64
}

func NewPromptBuilder(persona Persona, metadata entity.SessionMetadata, result retrieval.Result, ragWeight float64) *PromptBuilder {
	b := &PromptBuilder{
		persona:   persona,
		metadata:  metadata,
		ragWeight: ragWeight,
	}
	// A zero weight means purely generative: no reference material at all.
	if ragWeight > 0 {
		b.retrieved = result.Items
	}
	return b
}

func (b *PromptBuilder) Build() string {
	var prompt strings.Builder
	b.writeInstruction(&prompt)
	b.writeSessionBrief(&prompt)
	b.writeReferenceOutlines(&prompt)
	b.writeOutputFormat(&prompt)
	return prompt.String()
}

func (b *PromptBuilder) writeInstruction(prompt *strings.Builder) {
	rendered := b.persona.RenderInstruction(map[string]string{
		"category": b.metadata.Category,
		"outcome":  b.metadata.DesiredOutcome,
		"audience": b.metadata.Audience,
		"tone":     b.metadata.Tone,
		"duration": strconv.Itoa(b.metadata.TargetDuration),
	})

	prompt.WriteString("<instruction>\n")
	prompt.WriteString(rendered)
	prompt.WriteString("\n</instruction>\n\n")
}

func (b *PromptBuilder) writeSessionBrief(prompt *strings.Builder) {
	prompt.WriteString("<session_brief>\n")
	fmt.Fprintf(prompt, "Category: %s\n", b.metadata.Category)
	fmt.Fprintf(prompt, "Desired outcome: %s\n", b.metadata.DesiredOutcome)
	fmt.Fprintf(prompt, "Audience: %s\n", b.metadata.Audience)
	fmt.Fprintf(prompt, "Tone: %s\n", b.metadata.Tone)
	fmt.Fprintf(prompt, "Target duration: %d minutes\n", b.metadata.TargetDuration)
	if len(b.metadata.Topics) > 0 {
		fmt.Fprintf(prompt, "Topics to cover: %s\n", strings.Join(b.metadata.Topics, ", "))
	}
	if b.metadata.ParticipantCount > 0 {
		fmt.Fprintf(prompt, "Expected participants: %d\n", b.metadata.ParticipantCount)
	}
	prompt.WriteString("</session_brief>\n\n")
}

func (b *PromptBuilder) writeReferenceOutlines(prompt *strings.Builder) {
	if len(b.retrieved) == 0 {
		return
	}

	prompt.WriteString("<reference_outlines>\n")
	fmt.Fprintf(prompt, "Influence level: %.1f (0 = ignore, 1 = follow closely)\n\n", b.ragWeight)
	for i, item := range b.retrieved {
		fmt.Fprintf(prompt, "Reference %d (relevance %.2f, category %s): %s\n",
			i+1, item.BlendedScore, item.Item.Category, item.Item.Title)
	}
	prompt.WriteString("</reference_outlines>\n\n")
}

func (b *PromptBuilder) writeOutputFormat(prompt *strings.Builder) {
	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with a single JSON object, no prose, shaped as:\n")
	prompt.WriteString(`{
  "title": "...",
  "description": "...",
  "difficulty": "beginner|intermediate|advanced",
  "sections": [
    {
      "type": "opener|topic|exercise|inspiration|closing|video|discussion|presentation|break|assessment|custom",
      "title": "...",
      "description": "...",
      "duration": 15,
      "learningObjectives": ["..."],
      "exerciseType": "...",
      "keyTakeaways": ["..."]
    }
  ]
}`)
	prompt.WriteString("\nInclude an opener first and a closing last. Durations are whole minutes.\n")
	prompt.WriteString("</output_format>\n")
}
