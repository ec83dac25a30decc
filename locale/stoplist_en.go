package locale

// englishStoplist is the common English stoplist carried by the "en"
// locale when a tokenizer opts in with useStoplist. It is the standard
// general-purpose list (common short function words and contractions),
// not a fixed-length canonical set -- its exact membership has varied
// across the tools that ship one.
var englishStoplist = []string{
	"a", "able", "about", "across", "after", "all", "almost", "also", "am",
	"among", "an", "and", "any", "are", "as", "at", "be", "because", "been",
	"but", "by", "can", "cannot", "could", "dear", "did", "do", "does",
	"either", "else", "ever", "every", "for", "from", "get", "got", "had",
	"has", "have", "he", "her", "hers", "him", "his", "how", "however", "i",
	"if", "in", "into", "is", "it", "its", "just", "least", "let", "like",
	"likely", "may", "me", "might", "most", "must", "my", "neither", "no",
	"nor", "not", "of", "off", "often", "on", "only", "or", "other", "our",
	"own", "rather", "said", "say", "says", "she", "should", "since", "so",
	"some", "than", "that", "the", "their", "them", "then", "there", "these",
	"they", "this", "tis", "to", "too", "twas", "us", "wants", "was", "we",
	"were", "what", "when", "where", "which", "while", "who", "whom", "why",
	"will", "with", "would", "yet", "you", "your", "a's", "able's", "i'd",
	"i'll", "i'm", "i've", "let's", "she's", "that's", "there's", "they'd",
	"they'll", "they're", "they've", "we'd", "we'll", "we're", "we've",
	"what's",
}
