package intel

import (
	"strings"

	"synapse/internal/models"
)

// Вес каждого поля UVP в итоговой оценке релевантности.
const (
	weightTargetCustomer  = 0.30
	weightTransformation  = 0.30
	weightUniqueSolution  = 0.25
	weightDifferentiators = 0.15
)

var stopwords = map[string]bool{
	"with": true, "that": true, "this": true, "from": true,
	"your": true, "them": true, "they": true, "have": true,
	"will": true, "more": true, "than": true, "into": true,
	"about": true, "every": true, "their": true, "what": true,
}

// ScoreRelevance оценивает близость тренда к UVP бизнеса: взвешенная
// доля слов каждого поля UVP, встречающихся в заголовке и описании
// тренда. Результат в диапазоне 0..1.
func ScoreRelevance(t models.Trend, uvp models.UVP) float64 {
	text := strings.ToLower(t.Title + " " + t.Description)

	score := weightTargetCustomer*overlap(text, uvp.TargetCustomer) +
		weightTransformation*overlap(text, uvp.TransformationGoal) +
		weightUniqueSolution*overlap(text, uvp.UniqueSolution) +
		weightDifferentiators*overlap(text, strings.Join(uvp.Differentiators, " "))

	return clamp01(score)
}

// overlap — доля значимых слов поля, найденных в тексте тренда.
func overlap(text, field string) float64 {
	words := tokenize(field)
	if len(words) == 0 {
		return 0
	}
	hits := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			hits++
		}
	}
	return float64(hits) / float64(len(words))
}

// tokenize разбивает строку на слова в нижнем регистре, отбрасывая
// короткие слова и стоп-слова.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})

	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 4 || stopwords[f] {
			continue
		}
		words = append(words, f)
	}
	return words
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
