package utils

// SplitText cuts text into chunks of at most chunkSize runes, overlapping
// consecutive chunks by overlap runes so sentences at a boundary stay
// visible to both sides. Character-based on purpose: outlines are short
// prose and the embedding models tolerate mid-word cuts.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}
