package ingest

import "strings"

const (
	chunkSize    = 800
	chunkOverlap = 100
)

// Chunk is the unit of retrieval: a bounded slice of a source document
// tagged with where it came from.
type Chunk struct {
	Text   string
	Source string
	Index  int
}

// ChunkDocument splits a document into fixed-size chunks with a fixed
// overlap, measured in characters. Whitespace-only chunks are dropped.
func ChunkDocument(doc Document) []Chunk {
	runes := []rune(doc.Content)
	if len(runes) == 0 {
		return nil
	}

	step := chunkSize - chunkOverlap

	var chunks []Chunk
	idx := 0
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		text := string(runes[start:end])
		if strings.TrimSpace(text) != "" {
			chunks = append(chunks, Chunk{
				Text:   text,
				Source: doc.Name,
				Index:  idx,
			})
			idx++
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
