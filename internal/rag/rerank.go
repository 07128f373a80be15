package rag

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"notebook-ai/internal/vectorstore"
)

const (
	lexicalLengthScale = float32(10.0)
	maxLexicalScore    = float32(0.4)
	sourceMatchBonus   = float32(0.1)
)

var lexicalStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"for": {}, "from": {}, "has": {}, "have": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {},
	"or": {}, "the": {}, "to": {}, "was": {}, "were": {}, "with": {}, "what": {}, "how": {},
	"pdf": {},
}

// rerankCandidate is a vector search hit with its chunk text and blended score.
type rerankCandidate struct {
	result  vectorstore.SearchResult
	text    string
	lexical float32
	final   float32
}

// rerank scores candidates by vector similarity plus lexical overlap with the query,
// best first. Ties keep the vector store order.
func rerank(query string, candidates []rerankCandidate) []rerankCandidate {
	for i := range candidates {
		c := &candidates[i]
		c.lexical = lexicalScore(query, c.text, vectorstore.MetaString(c.result.Meta, vectorstore.MetaSource))
		c.final = c.result.Score + c.lexical
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].final > candidates[j].final
	})
	return candidates
}

// lexicalScore computes a lightweight lexical relevance score for a chunk relative to a query.
// The score is normalized to remain in a predictable range so it can be blended with vector scores.
func lexicalScore(query, chunkText, source string) float32 {
	queryTokens := filterStopwords(tokenize(query))
	if len(queryTokens) == 0 {
		return 0
	}

	chunkTokens := tokenize(chunkText)
	if len(chunkTokens) == 0 {
		return 0
	}

	chunkFreq := make(map[string]int, len(chunkTokens))
	for _, token := range chunkTokens {
		chunkFreq[token]++
	}

	var rawMatches int
	for _, token := range queryTokens {
		rawMatches += chunkFreq[token]
	}

	score := (float32(rawMatches) / (1 + float32(len(chunkTokens)))) * lexicalLengthScale

	// Questions naming the document ("in the thermodynamics notes ...") favour its chunks.
	if source != "" {
		sourceTokens := tokenize(strings.TrimSuffix(source, filepath.Ext(source)))
		if len(sourceTokens) > 0 {
			sourceSet := make(map[string]struct{}, len(sourceTokens))
			for _, token := range sourceTokens {
				sourceSet[token] = struct{}{}
			}
			var sourceMatches int
			for _, token := range queryTokens {
				if _, ok := sourceSet[token]; ok {
					sourceMatches++
				}
			}
			score += float32(sourceMatches) * sourceMatchBonus
		}
	}

	if score > maxLexicalScore {
		return maxLexicalScore
	}
	if score < 0 {
		return 0
	}
	return score
}

func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	tokens := strings.Fields(builder.String())
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func filterStopwords(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}

	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, isStop := lexicalStopwords[token]; isStop {
			continue
		}
		result = append(result, token)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
