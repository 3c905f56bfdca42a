package analyzer

import (
	"strings"

	"BrowseLens/internal/domain"
)

// balanceThreshold is the |positive-negative| difference below which the
// emotional mix counts as balanced.
const balanceThreshold = 0.1

// Fixed affect partition. Labels outside both sets (surprise, neutral)
// contribute to neither sum.
var positiveEmotions = map[string]bool{
	"joy":        true,
	"love":       true,
	"optimism":   true,
	"admiration": true,
	"approval":   true,
	"excitement": true,
	"caring":     true,
}

var negativeEmotions = map[string]bool{
	"sadness": true,
	"anger":   true,
	"fear":    true,
	"disgust": true,
}

// emotionalBalance folds detected emotions into a single net-affect scalar.
func emotionalBalance(emotions []domain.LabelScore) domain.EmotionBalance {
	var positive, negative float64
	for _, emotion := range emotions {
		label := strings.ToLower(emotion.Label)
		switch {
		case positiveEmotions[label]:
			positive += emotion.Score
		case negativeEmotions[label]:
			negative += emotion.Score
		}
	}

	balance := positive - negative
	abs := balance
	if abs < 0 {
		abs = -abs
	}

	return domain.EmotionBalance{
		PositiveScore: positive,
		NegativeScore: negative,
		Balance:       balance,
		IsBalanced:    abs < balanceThreshold,
	}
}
