package document

import "strings"

const minChunkChars = 10

// ChunkText splits text into word-bounded chunks for classification. Chunks
// shorter than minChunkChars carry no signal and are dropped; at most
// maxChunks chunks are returned so pathological documents stay bounded.
func ChunkText(text string, chunkWords, maxChunks int) []string {
	if chunkWords <= 0 || maxChunks <= 0 {
		return nil
	}

	words := strings.Fields(text)
	chunks := make([]string, 0, maxChunks)
	for start := 0; start < len(words) && len(chunks) < maxChunks; start += chunkWords {
		end := start + chunkWords
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.Join(words[start:end], " ")
		if len(chunk) < minChunkChars {
			continue
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}
