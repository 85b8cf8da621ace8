package intel

import (
	"sort"
	"strings"

	"synapse/internal/models"
)

// Психологические триггеры аудитории.
const (
	TriggerTrust       = "trust"
	TriggerUrgency     = "urgency"
	TriggerAspiration  = "aspiration"
	TriggerBelonging   = "belonging"
	TriggerFOMO        = "fomo"
	TriggerConvenience = "convenience"
	TriggerStatus      = "status"
	TriggerSecurity    = "security"
)

// Каждое совпадение добавляет matchWeight, счёт триггера ограничен 1.0.
const matchWeight = 0.25

type triggerRule struct {
	trigger  string
	keywords []string
}

var triggerRules = []triggerRule{
	{TriggerTrust, []string{"proven", "guarantee", "certified", "trusted", "testimonial", "review", "expert", "award"}},
	{TriggerUrgency, []string{"hurry", "deadline", "limited time", "last chance", "closing soon", "today only", "expires"}},
	{TriggerAspiration, []string{"dream", "transform", "achieve", "unlock", "potential", "elevate", "growth", "success"}},
	{TriggerBelonging, []string{"community", "join", "together", "family", "belong", "membership", "local", "neighbors"}},
	{TriggerFOMO, []string{"missing out", "don't miss", "exclusive", "limited spots", "only a few", "selling fast", "waitlist"}},
	{TriggerConvenience, []string{"easy", "effortless", "in minutes", "one click", "hassle-free", "simple", "instant"}},
	{TriggerStatus, []string{"premium", "luxury", "elite", "vip", "exclusive", "prestige", "top tier"}},
	{TriggerSecurity, []string{"safe", "secure", "protect", "privacy", "risk-free", "insured", "reliable"}},
}

// MatchTriggers сканирует текст по таблицам ключевых слов и возвращает
// сработавшие триггеры, отсортированные по убыванию счёта. Если ничего
// не совпало, возвращается пустой срез.
func MatchTriggers(text string) []models.TriggerScore {
	lower := strings.ToLower(text)

	scores := make([]models.TriggerScore, 0, len(triggerRules))
	for _, rule := range triggerRules {
		var matches []string
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				matches = append(matches, kw)
			}
		}
		if len(matches) == 0 {
			continue
		}
		score := matchWeight * float64(len(matches))
		if score > 1 {
			score = 1
		}
		scores = append(scores, models.TriggerScore{
			Trigger: rule.trigger,
			Score:   score,
			Matches: matches,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}
