package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_Basic(t *testing.T) {
	info, err := Tokenize("The quick brown fox", Options{Locale: "en"})
	require.NoError(t, err)

	assert.True(t, info.Has("the"))
	assert.True(t, info.Has("quick"))
	assert.True(t, info.Has("brown"))
	assert.True(t, info.Has("fox"))
	assert.Equal(t, 4, info.WordCount())
	assert.Equal(t, []string{"the", "quick", "brown", "fox"}, info.ToSequence())
}

func TestTokenize_EmptyTextYieldsEmptyTextInfo(t *testing.T) {
	info, err := Tokenize("", Options{Locale: "en"})
	require.NoError(t, err)
	assert.Equal(t, 0, info.WordCount())
	assert.Empty(t, info.Ignored)
}

func TestTokenize_StoplistIgnoresAndRecords(t *testing.T) {
	info, err := Tokenize("the quick brown fox", Options{Locale: "en", UseStoplist: true})
	require.NoError(t, err)

	assert.False(t, info.Has("the"))
	assert.Contains(t, info.Ignored, "the")
	// dense positions should skip the ignored word, not leave a gap
	assert.Equal(t, []string{"quick", "brown", "fox"}, info.ToSequence())
}

func TestTokenize_Idempotent(t *testing.T) {
	opts := Options{Locale: "en"}
	first, err := Tokenize("Quick brown dogs jump", opts)
	require.NoError(t, err)

	second, err := Tokenize(joinSequence(first.ToSequence()), opts)
	require.NoError(t, err)

	assert.Equal(t, first.Words, second.Words)
}

func joinSequence(seq []string) string {
	out := ""
	for i, w := range seq {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}

func TestTokenize_BlacklistAndWhitelist(t *testing.T) {
	info, err := Tokenize("cat dog cat", Options{
		Locale:    "en",
		Blacklist: map[string]struct{}{"cat": {}},
	})
	require.NoError(t, err)
	assert.False(t, info.Has("cat"))
	assert.True(t, info.Has("dog"))

	info, err = Tokenize("cat dog", Options{
		Locale:    "en",
		Blacklist: map[string]struct{}{"cat": {}},
		Whitelist: map[string]struct{}{"cat": {}},
	})
	require.NoError(t, err)
	assert.True(t, info.Has("cat"), "whitelist should override blacklist")
}

func TestTokenize_MinMaxLength(t *testing.T) {
	info, err := Tokenize("a bb ccc", Options{Locale: "en", MinLength: 2, MaxLength: 2})
	require.NoError(t, err)
	assert.False(t, info.Has("a"))
	assert.True(t, info.Has("bb"))
	assert.True(t, info.Has("cc")) // "ccc" truncated to maxLength 2
}

func TestTokenize_IncludeCharsKeepsWildcards(t *testing.T) {
	info, err := Tokenize("br*n", Options{Locale: "en", IncludeChars: "*?"})
	require.NoError(t, err)
	assert.True(t, info.Has("br*n"))
}

func TestTokenize_TransliterationFixedPoint(t *testing.T) {
	once := DefaultTransliterate("café")
	twice := DefaultTransliterate(once)
	assert.Equal(t, once, twice)
}

func TestEncodeDecodeOccurs_RoundTrip(t *testing.T) {
	indexes := []int{0, 3, 7}
	encoded := EncodeOccurs(nil, "w", "p", indexes)
	assert.Equal(t, indexes, DecodeOccurs(encoded))
}

func TestEncodeOccurs_TruncatesAtCommaBoundary(t *testing.T) {
	indexes := make([]int, 0, 200)
	for i := 0; i < 200; i++ {
		indexes = append(indexes, i*1000)
	}
	encoded := EncodeOccurs(nil, "w", "p", indexes)
	assert.LessOrEqual(t, len(encoded), MaxOccursBytes)

	decoded := DecodeOccurs(encoded)
	for i, v := range decoded {
		assert.Equal(t, indexes[i], v)
	}
}
