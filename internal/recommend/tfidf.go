package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// maxTerms caps the vocabulary at the most frequent distinct terms.
const maxTerms = 200

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(
		"a about above after again all am an and any are as at be been but " +
			"by for from had has have he her his i if in into is it its my " +
			"no nor not of on or our she so than that the their them then " +
			"there these they this to very was we were what when where which " +
			"while who will with would you your") {
		stopWords[w] = struct{}{}
	}
}

// maxCosineSimilarity fits a TF-IDF model over the target description plus
// every other description, then returns the highest cosine similarity
// between the target and any single other document. Degenerate input
// (empty texts, no shared vocabulary) yields 0, never an error: content
// similarity is best-effort enrichment.
func maxCosineSimilarity(target string, others []string) float64 {
	docs := make([][]string, 0, len(others)+1)
	docs = append(docs, tokenize(target))
	for _, o := range others {
		docs = append(docs, tokenize(o))
	}

	vocab := buildVocabulary(docs)
	if len(vocab) == 0 {
		return 0
	}

	idf := inverseDocFrequency(docs, vocab)
	targetVec := vectorize(docs[0], idf)
	if len(targetVec) == 0 {
		return 0
	}

	best := 0.0
	for _, doc := range docs[1:] {
		if sim := dot(targetVec, vectorize(doc, idf)); sim > best {
			best = sim
		}
	}
	return best
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// buildVocabulary keeps the maxTerms most frequent terms across all
// documents, ties broken alphabetically for reproducible vectors.
func buildVocabulary(docs [][]string) map[string]struct{} {
	counts := make(map[string]int)
	for _, doc := range docs {
		for _, tok := range doc {
			counts[tok]++
		}
	}

	vocab := make(map[string]struct{}, len(counts))
	if len(counts) <= maxTerms {
		for term := range counts {
			vocab[term] = struct{}{}
		}
		return vocab
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	for _, term := range terms[:maxTerms] {
		vocab[term] = struct{}{}
	}
	return vocab
}

// inverseDocFrequency computes smoothed IDF weights over the vocabulary.
func inverseDocFrequency(docs [][]string, vocab map[string]struct{}) map[string]float64 {
	docFreq := make(map[string]int, len(vocab))
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			if _, ok := vocab[tok]; !ok {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			docFreq[tok]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(vocab))
	for term := range vocab {
		idf[term] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return idf
}

// vectorize builds an L2-normalized TF-IDF vector for one document.
func vectorize(doc []string, idf map[string]float64) map[string]float64 {
	vec := make(map[string]float64)
	for _, tok := range doc {
		if w, ok := idf[tok]; ok {
			vec[tok] += w
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for term := range vec {
		vec[term] /= norm
	}
	return vec
}

func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for term, v := range a {
		sum += v * b[term]
	}
	return sum
}
