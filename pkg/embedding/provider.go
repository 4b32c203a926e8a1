package embedding

import "math"

// EmbeddingProvider generates vector embeddings for corpus documents and
// retrieval queries. Implementations must return unit-length vectors so the
// cosine distance computed by pgvector is meaningful.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}

// normalizeVector scales a vector to unit length. Cosine similarity over
// pgvector assumes magnitude = 1; skipping this skews retrieval scores.
func normalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
