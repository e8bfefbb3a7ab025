package utils

import (
	"fmt"
	"strconv"
)

// MetadataChunkSize stays under the gateway's 500-character limit per
// metadata value.
const MetadataChunkSize = 450

// ChunkMetadata splits value into ordered chunks under keys
// "<prefix>_0".."<prefix>_{n-1}" plus "<prefix>_chunks" = n, so it can be
// carried through size-capped metadata fields and reassembled later.
func ChunkMetadata(prefix, value string) map[string]string {
	chunks := make(map[string]string)
	count := 0
	for start := 0; start < len(value); start += MetadataChunkSize {
		end := start + MetadataChunkSize
		if end > len(value) {
			end = len(value)
		}
		chunks[fmt.Sprintf("%s_%d", prefix, count)] = value[start:end]
		count++
	}
	if count == 0 {
		chunks[prefix+"_0"] = ""
		count = 1
	}
	chunks[prefix+"_chunks"] = strconv.Itoa(count)
	return chunks
}

// ReassembleMetadata reverses ChunkMetadata. It fails if the chunk-count key
// is missing or any chunk in the declared range is absent.
func ReassembleMetadata(prefix string, metadata map[string]string) (string, error) {
	countStr, ok := metadata[prefix+"_chunks"]
	if !ok {
		return "", fmt.Errorf("metadata key %s_chunks is missing", prefix)
	}
	count, err := strconv.Atoi(countStr)
	if err != nil || count < 1 {
		return "", fmt.Errorf("invalid chunk count %q for %s", countStr, prefix)
	}

	var value string
	for i := 0; i < count; i++ {
		chunk, ok := metadata[fmt.Sprintf("%s_%d", prefix, i)]
		if !ok {
			return "", fmt.Errorf("metadata chunk %s_%d is missing", prefix, i)
		}
		value += chunk
	}
	return value, nil
}
