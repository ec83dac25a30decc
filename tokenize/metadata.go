package tokenize

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// MaxOccursBytes is the fixed per-entry byte budget the underlying
// substrate reserves for the `_occurs_` metadata field.
const MaxOccursBytes = 255

// EncodeOccurs packs a list of word positions into the comma-joined decimal
// string stored as `_occurs_`. If the encoding would exceed MaxOccursBytes,
// it is truncated at the last comma at or before that byte, and a warning
// is logged naming word and path -- this is a lossy, by-contract truncation,
// not an error.
func EncodeOccurs(log logrus.FieldLogger, word, path string, indexes []int) string {
	var b strings.Builder
	for i, idx := range indexes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	encoded := b.String()
	if len(encoded) <= MaxOccursBytes {
		return encoded
	}

	truncated := encoded[:MaxOccursBytes]
	cut := strings.LastIndexByte(truncated, ',')
	if cut < 0 {
		// a single position longer than the whole budget; nothing sane to
		// keep, so drop it entirely rather than emit a malformed number.
		cut = 0
	}
	if log != nil {
		log.WithFields(logrus.Fields{
			"word": word,
			"path": path,
		}).Warn("_occurs_ metadata truncated at 255 bytes; trailing phrase positions for this word are lost")
	}
	return truncated[:cut]
}

// DecodeOccurs parses a comma-joined decimal string back into an ordered
// list of non-negative integers. An empty string decodes to an empty (not
// nil) slice.
func DecodeOccurs(encoded string) []int {
	if encoded == "" {
		return []int{}
	}
	parts := strings.Split(encoded, ",")
	result := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		result = append(result, n)
	}
	return result
}
