package generation

import "strings"

// Persona is one of the four fixed generation identities. The set is static
// configuration: loaded once, never mutated at runtime.
type Persona struct {
	Key         string
	Label       string
	Instruction string  // template, rendered with metadata placeholders
	DefaultTier float64 // default retrieval weight
}

// weightTiers is the retrieval-influence ladder, strongest first. Tiers are
// data so a quick-tweak can step a persona down without branching on names.
var weightTiers = []float64{0.8, 0.5, 0.2, 0.0}

var personas = []Persona{
	{
		Key:   "precision",
		Label: "Precision",
		Instruction: "Design a tightly structured {duration}-minute training session on {category}. " +
			"Stay close to the proven reference outlines: reuse their sequencing and timing patterns. " +
			"The audience is {audience}; the session must achieve: {outcome}. Keep the tone {tone} and every section purposeful.",
		DefaultTier: weightTiers[0],
	},
	{
		Key:   "insight",
		Label: "Insight",
		Instruction: "Design a {duration}-minute training session on {category} that balances proven structure with fresh framing. " +
			"Draw on the reference outlines where they fit, but favor depth of understanding for {audience}. " +
			"Target outcome: {outcome}. Tone: {tone}.",
		DefaultTier: weightTiers[1],
	},
	{
		Key:   "ignite",
		Label: "Ignite",
		Instruction: "Design an energetic {duration}-minute training session on {category} built around participation and momentum. " +
			"References are inspiration only: favor bold pacing, frequent interaction, and memorable moments for {audience}. " +
			"Target outcome: {outcome}. Tone: {tone}.",
		DefaultTier: weightTiers[2],
	},
	{
		Key:   "connect",
		Label: "Connect",
		Instruction: "Design a {duration}-minute training session on {category} from first principles, centered on human connection and discussion. " +
			"Do not follow prior outlines; invent a structure that fits {audience} and achieves: {outcome}. Tone: {tone}.",
		DefaultTier: weightTiers[3],
	},
}

// Personas returns the fixed four-persona table.
func Personas() []Persona {
	out := make([]Persona, len(personas))
	copy(out, personas)
	return out
}

// RenderInstruction substitutes metadata placeholders into the persona's
// instruction template.
func (p Persona) RenderInstruction(fields map[string]string) string {
	pairs := make([]string, 0, len(fields)*2)
	for key, value := range fields {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(p.Instruction)
}
