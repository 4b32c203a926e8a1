package generation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"training-builder-be/internal/entity"
	"training-builder-be/internal/pkg/logger"
	"training-builder-be/pkg/llm"
	"training-builder-be/pkg/outline"
	"training-builder-be/pkg/retrieval"
)

// Candidate is one persona's generated outline, tagged with the persona
// and the retrieval weight that produced it for caller transparency.
type Candidate struct {
	PersonaKey   string            `json:"persona_key"`
	PersonaLabel string            `json:"persona_label"`
	RagWeight    float64           `json:"rag_weight"`
	Outline      *outline.Document `json:"outline"`
}

// CandidateSet is the joined result of one generation invocation: however
// many of the four personas succeeded.
type CandidateSet struct {
	Candidates  []Candidate `json:"candidates"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// Config tunes the fan-out. Zero values fall back to defaults.
type Config struct {
	CallTimeout       time.Duration // per persona call, per attempt
	DurationTolerance int           // minutes before rescaling kicks in
	QuickTweak        bool          // bias every persona one tier toward original phrasing
}

const (
	defaultCallTimeout       = 45 * time.Second
	defaultDurationTolerance = 5
)

// Generator fans one generation request per persona out to the content
// provider and assembles the surviving candidates.
type Generator struct {
	provider llm.LLMProvider
	registry *outline.Registry
	personas []Persona
	config   Config
	logger   logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, registry *outline.Registry, config Config, log logger.ILogger) *Generator {
	if config.CallTimeout <= 0 {
		config.CallTimeout = defaultCallTimeout
	}
	if config.DurationTolerance <= 0 {
		config.DurationTolerance = defaultDurationTolerance
	}
	return &Generator{
		provider: provider,
		registry: registry,
		personas: Personas(),
		config:   config,
		logger:   log,
	}
}

type personaResult struct {
	index     int
	candidate Candidate
	err       error
}

// Generate dispatches all four persona requests concurrently and joins
// them. Persona failures are absorbed: the caller receives whichever
// candidates succeeded. Only when every persona fails does the call fail,
// with ErrAllCandidatesFailed.
func (g *Generator) Generate(ctx context.Context, metadata entity.SessionMetadata, result retrieval.Result) (*CandidateSet, error) {
	results := make(chan personaResult, len(g.personas))

	var wg sync.WaitGroup
	for i, persona := range g.personas {
		wg.Add(1)
		go func(idx int, p Persona) {
			defer wg.Done()
			candidate, err := g.generateOne(ctx, p, metadata, result)
			results <- personaResult{index: idx, candidate: candidate, err: err}
		}(i, persona)
	}
	wg.Wait()
	close(results)

	collected := make([]personaResult, 0, len(g.personas))
	var lastErr error
	for res := range results {
		if res.err != nil {
			lastErr = res.err
			g.logger.Warn("generation", "persona dropped from candidate set", map[string]interface{}{
				"persona": g.personas[res.index].Key,
				"error":   res.err.Error(),
			})
			continue
		}
		collected = append(collected, res)
	}

	if len(collected) == 0 {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: last error: %v", ErrAllCandidatesFailed, lastErr)
	}

	// Keep persona order stable regardless of completion order.
	sort.Slice(collected, func(i, j int) bool { return collected[i].index < collected[j].index })

	set := &CandidateSet{GeneratedAt: time.Now().UTC()}
	for _, res := range collected {
		set.Candidates = append(set.Candidates, res.candidate)
	}
	return set, nil
}

// generateOne runs a single persona request with a per-attempt timeout and
// one retry on transient failure.
func (g *Generator) generateOne(ctx context.Context, p Persona, metadata entity.SessionMetadata, result retrieval.Result) (Candidate, error) {
	ragWeight := SelectWeight(p, result, g.config.QuickTweak)
	prompt := NewPromptBuilder(p, metadata, result, ragWeight).Build()

	var raw string
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		if ctx.Err() != nil {
			return Candidate{}, ctx.Err()
		}

		attemptCtx, cancel := context.WithTimeout(ctx, g.config.CallTimeout)
		raw, err = g.provider.Generate(attemptCtx, prompt, llm.WithTemperature(temperatureFor(p)))
		cancel()
		if err == nil {
			break
		}
		if !isTransient(ctx) {
			return Candidate{}, fmt.Errorf("persona %s: %w", p.Key, err)
		}
	}
	if err != nil {
		return Candidate{}, fmt.Errorf("persona %s: retry exhausted: %w", p.Key, err)
	}

	parsed, err := parseProviderOutline(raw)
	if err != nil {
		return Candidate{}, fmt.Errorf("persona %s: %w", p.Key, err)
	}

	doc := normalizeOutline(g.registry, metadata, parsed, g.config.DurationTolerance)
	doc.FallbackUsed = result.Degraded

	return Candidate{
		PersonaKey:   p.Key,
		PersonaLabel: p.Label,
		RagWeight:    ragWeight,
		Outline:      doc,
	}, nil
}

// isTransient decides whether a failed attempt is worth its single retry.
// Provider failures here are per-attempt timeouts or transport errors, both
// retriable; only caller cancellation is not. Malformed output is not an
// attempt failure at all, parsing happens after the loop.
func isTransient(parent context.Context) bool {
	return parent.Err() == nil
}

// temperatureFor gives generative personas more freedom than precise ones.
func temperatureFor(p Persona) float64 {
	return 0.4 + (1.0-p.DefaultTier)*0.4
}
