package tokenizer

import (
	"iter"
	"strings"
	"unicode/utf8"
)

const (
	chunkSize    = 500
	maxChunkSize = 1024
)

// chunks splits text into pieces tokenized with separate lattices. A chunk
// ends at the first sentence break at or after chunkSize runes, and never
// exceeds maxChunkSize runes. Concatenating the chunks yields text.
func chunks(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for text != "" {
			end := chunkEnd(text)
			if !yield(text[:end]) {
				return
			}
			text = text[end:]
		}
	}
}

// chunkEnd returns the byte length of the first chunk of text.
func chunkEnd(text string) int {
	runes := 0
	for i := range text {
		if runes >= maxChunkSize || (runes >= chunkSize && splittable(text[:i])) {
			return i
		}
		runes++
	}
	return len(text)
}

func splittable(head string) bool {
	r, _ := utf8.DecodeLastRuneInString(head)
	switch r {
	case '、', '。', ',', '.', '？', '?', '！', '!':
		return true
	}
	return strings.HasSuffix(head, "\n\n") || strings.HasSuffix(head, "\r\n\r\n")
}
