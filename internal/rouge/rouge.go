//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//

// Package rouge implements ROUGE scoring for text overlap evaluation.
package rouge

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Score holds ROUGE precision, recall and F-measure.
type Score struct {
	// Precision is the fraction of predicted units that match the reference in range [0, 1].
	Precision float64
	// Recall is the fraction of reference units that are matched by the prediction in range [0, 1].
	Recall float64
	// FMeasure is the harmonic mean of precision and recall in range [0, 1].
	FMeasure float64
}

// Config selects the ROUGE variant and tokenization behavior.
type Config struct {
	// Type is the ROUGE variant: "rougeN" with a positive integer N such as
	// "rouge1" or "rouge2", "rougeL", or "rougeLsum".
	Type string
	// UseStemmer enables Porter stemming during tokenization.
	UseStemmer bool
	// SplitSummaries splits summaries into sentences for rougeLsum and is
	// ignored for other ROUGE types.
	SplitSummaries bool
}

// Compute returns the ROUGE score for a single target and prediction pair.
func Compute(target, prediction string, cfg Config) (Score, error) {
	if err := ValidateType(cfg.Type); err != nil {
		return Score{}, err
	}
	tok := newTokenizer(cfg.UseStemmer)
	switch {
	case cfg.Type == "rougeL":
		return scoreLCS(tok.Tokenize(target), tok.Tokenize(prediction)), nil
	case cfg.Type == "rougeLsum":
		return scoreSummaryLCS(target, prediction, tok, cfg.SplitSummaries)
	default:
		n, err := parseRougeN(cfg.Type)
		if err != nil {
			return Score{}, err
		}
		return scoreNGrams(tok.Tokenize(target), tok.Tokenize(prediction), n), nil
	}
}

// ValidateType validates a ROUGE type identifier such as rouge1, rougeL, or rougeLsum.
func ValidateType(rougeType string) error {
	if rougeType == "rougeL" || rougeType == "rougeLsum" {
		return nil
	}
	_, err := parseRougeN(rougeType)
	return err
}

// parseRougeN parses a ROUGE-N type string and returns the N value.
func parseRougeN(rougeType string) (int, error) {
	if !strings.HasPrefix(rougeType, "rouge") {
		return 0, fmt.Errorf("invalid rouge type: %s", rougeType)
	}
	nStr := strings.TrimPrefix(rougeType, "rouge")
	if nStr == "" {
		return 0, fmt.Errorf("invalid rouge type: %s", rougeType)
	}
	n, err := strconv.Atoi(nStr)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid rouge type: %s", rougeType)
	}
	return n, nil
}

// fMeasure computes the harmonic mean of precision and recall.
func fMeasure(precision, recall float64) float64 {
	if precision+recall > 0 {
		return 2 * precision * recall / (precision + recall)
	}
	return 0
}

// scoreNGrams computes ROUGE-N precision, recall, and F-measure for tokenized inputs.
func scoreNGrams(targetTokens, predTokens []string, n int) Score {
	if len(targetTokens) == 0 || len(predTokens) == 0 {
		return Score{}
	}
	targetNGrams := createNGrams(targetTokens, n)
	predNGrams := createNGrams(predTokens, n)

	var intersection int
	var targetCount int
	for key, cnt := range targetNGrams {
		targetCount += cnt
		if predCnt, ok := predNGrams[key]; ok {
			intersection += min(cnt, predCnt)
		}
	}
	var predCount int
	for _, cnt := range predNGrams {
		predCount += cnt
	}

	precision := float64(intersection) / float64(max(predCount, 1))
	recall := float64(intersection) / float64(max(targetCount, 1))
	return Score{Precision: precision, Recall: recall, FMeasure: fMeasure(precision, recall)}
}

// createNGrams builds a multiset of n-grams keyed by a delimiter-joined token sequence.
func createNGrams(tokens []string, n int) map[string]int {
	if n <= 0 || len(tokens) < n {
		return map[string]int{}
	}
	ngrams := make(map[string]int, len(tokens)-n+1)
	for i := 0; i <= len(tokens)-n; i++ {
		key := strings.Join(tokens[i:i+n], "\x00")
		ngrams[key]++
	}
	return ngrams
}

// scoreLCS computes ROUGE-L precision, recall, and F-measure using the LCS length.
func scoreLCS(targetTokens, predTokens []string) Score {
	if len(targetTokens) == 0 || len(predTokens) == 0 {
		return Score{}
	}
	lcsLen := lcsLength(targetTokens, predTokens)
	precision := float64(lcsLen) / float64(len(predTokens))
	recall := float64(lcsLen) / float64(len(targetTokens))
	return Score{Precision: precision, Recall: recall, FMeasure: fMeasure(precision, recall)}
}

// lcsLength computes the length of the longest common subsequence.
func lcsLength(ref, can []string) int {
	if len(ref) == 0 || len(can) == 0 {
		return 0
	}
	prev := make([]int, len(can)+1)
	curr := make([]int, len(can)+1)
	for i := 1; i <= len(ref); i++ {
		curr[0] = 0
		for j := 1; j <= len(can); j++ {
			if ref[i-1] == can[j-1] {
				curr[j] = prev[j-1] + 1
				continue
			}
			if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(can)]
}

// scoreSummaryLCS computes rougeLsum using summary-level LCS aggregation.
func scoreSummaryLCS(target, prediction string, tok *tokenizer, splitSummaries bool) (Score, error) {
	targetSents, err := getSentences(target, splitSummaries)
	if err != nil {
		return Score{}, err
	}
	predSents, err := getSentences(prediction, splitSummaries)
	if err != nil {
		return Score{}, err
	}

	targetTokensList := make([][]string, 0, len(targetSents))
	for _, s := range targetSents {
		targetTokensList = append(targetTokensList, tok.Tokenize(s))
	}
	predTokensList := make([][]string, 0, len(predSents))
	for _, s := range predSents {
		predTokensList = append(predTokensList, tok.Tokenize(s))
	}

	return summaryLevelLCS(targetTokensList, predTokensList), nil
}

// getSentences returns sentence strings using either newline splitting or a sentence tokenizer.
func getSentences(text string, splitSummaries bool) ([]string, error) {
	var sents []string
	if splitSummaries {
		list, err := sentTokenizeEnglish(text)
		if err != nil {
			return nil, err
		}
		sents = list
	} else {
		sents = strings.Split(text, "\n")
	}
	out := make([]string, 0, len(sents))
	for _, sent := range sents {
		if len(sent) == 0 {
			continue
		}
		out = append(out, sent)
	}
	return out, nil
}

// summaryLevelLCS computes rougeLsum and prevents double-counting matched tokens.
func summaryLevelLCS(refSent, canSent [][]string) Score {
	if len(refSent) == 0 || len(canSent) == 0 {
		return Score{}
	}

	m := 0
	for _, s := range refSent {
		m += len(s)
	}
	n := 0
	for _, s := range canSent {
		n += len(s)
	}
	if m == 0 || n == 0 {
		return Score{}
	}

	tokenCntsR := make(map[string]int)
	tokenCntsC := make(map[string]int)
	for _, s := range refSent {
		for _, tok := range s {
			tokenCntsR[tok]++
		}
	}
	for _, s := range canSent {
		for _, tok := range s {
			tokenCntsC[tok]++
		}
	}

	hits := 0
	for _, r := range refSent {
		lcsTokens := unionLCS(r, canSent)
		for _, tok := range lcsTokens {
			if tokenCntsC[tok] <= 0 || tokenCntsR[tok] <= 0 {
				continue
			}
			hits++
			tokenCntsC[tok]--
			tokenCntsR[tok]--
		}
	}

	recall := float64(hits) / float64(m)
	precision := float64(hits) / float64(n)
	return Score{Precision: precision, Recall: recall, FMeasure: fMeasure(precision, recall)}
}

// unionLCS returns the union of reference tokens from LCS matches across candidate sentences.
func unionLCS(ref []string, cans [][]string) []string {
	lcsList := make([][]int, 0, len(cans))
	for _, can := range cans {
		lcsList = append(lcsList, lcsInd(ref, can))
	}
	union := findUnion(lcsList)
	out := make([]string, 0, len(union))
	for _, idx := range union {
		out = append(out, ref[idx])
	}
	return out
}

// findUnion merges and sorts indices from multiple LCS paths.
func findUnion(lcsList [][]int) []int {
	seen := make(map[int]struct{})
	for _, lcs := range lcsList {
		for _, idx := range lcs {
			seen[idx] = struct{}{}
		}
	}
	union := make([]int, 0, len(seen))
	for idx := range seen {
		union = append(union, idx)
	}
	sort.Ints(union)
	return union
}

// lcsInd returns indices of one LCS between ref and can.
func lcsInd(ref, can []string) []int {
	table := lcsTable(ref, can)
	return backtrack(table, ref, can)
}

// lcsTable builds the dynamic programming table for LCS reconstruction.
func lcsTable(ref, can []string) [][]int {
	rows := len(ref)
	cols := len(can)
	table := make([][]int, rows+1)
	for i := range table {
		table[i] = make([]int, cols+1)
	}
	for i := 1; i <= rows; i++ {
		for j := 1; j <= cols; j++ {
			if ref[i-1] == can[j-1] {
				table[i][j] = table[i-1][j-1] + 1
				continue
			}
			if table[i-1][j] >= table[i][j-1] {
				table[i][j] = table[i-1][j]
			} else {
				table[i][j] = table[i][j-1]
			}
		}
	}
	return table
}

// backtrack reconstructs a single LCS index sequence without recursion.
func backtrack(table [][]int, ref, can []string) []int {
	i := len(ref)
	j := len(can)
	indices := make([]int, 0, table[i][j])
	for i > 0 && j > 0 {
		if ref[i-1] == can[j-1] {
			indices = append(indices, i-1)
			i--
			j--
		} else if table[i][j-1] > table[i-1][j] {
			j--
		} else {
			i--
		}
	}
	for left, right := 0, len(indices)-1; left < right; left, right = left+1, right-1 {
		indices[left], indices[right] = indices[right], indices[left]
	}
	return indices
}
