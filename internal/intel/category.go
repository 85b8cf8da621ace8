package intel

import "strings"

// Категории трендов. По категории выбираются шаблоны кампаний.
const (
	CategoryTechnology     = "technology"
	CategoryConsumer       = "consumer"
	CategoryEconomy        = "economy"
	CategoryRegulation     = "regulation"
	CategorySustainability = "sustainability"
	CategoryGeneral        = "general"
)

const (
	strongWeight = 3
	weakWeight   = 1
)

type categoryRule struct {
	category string
	strong   []string
	weak     []string
}

// Порядок правил фиксирован: при равном счёте побеждает более раннее.
var categoryRules = []categoryRule{
	{
		category: CategoryTechnology,
		strong:   []string{"artificial intelligence", "machine learning", "automation", "chatbot", "algorithm"},
		weak:     []string{"digital", "tech", "online", "platform", "data", "software"},
	},
	{
		category: CategoryConsumer,
		strong:   []string{"consumer spending", "customer behavior", "buying habits", "shoppers"},
		weak:     []string{"customer", "consumer", "shopping", "demand", "loyalty", "retail"},
	},
	{
		category: CategoryEconomy,
		strong:   []string{"inflation", "interest rate", "recession", "supply chain"},
		weak:     []string{"price", "cost", "market", "economy", "revenue", "wage"},
	},
	{
		category: CategoryRegulation,
		strong:   []string{"regulation", "compliance", "legislation", "lawsuit"},
		weak:     []string{"law", "policy", "tax", "ban", "license"},
	},
	{
		category: CategorySustainability,
		strong:   []string{"sustainability", "carbon", "climate", "renewable"},
		weak:     []string{"green", "eco-", "organic", "recycl", "energy"},
	},
}

// DetectCategory определяет категорию тренда по таблицам ключевых слов.
// Сильное слово даёт 3 балла, слабое 1, побеждает максимальная сумма.
// Если ни одна категория не набрала баллов, возвращается CategoryGeneral.
func DetectCategory(title, description string) string {
	text := strings.ToLower(title + " " + description)

	best := CategoryGeneral
	bestScore := 0
	for _, rule := range categoryRules {
		score := 0
		for _, kw := range rule.strong {
			if strings.Contains(text, kw) {
				score += strongWeight
			}
		}
		for _, kw := range rule.weak {
			if strings.Contains(text, kw) {
				score += weakWeight
			}
		}
		if score > bestScore {
			bestScore = score
			best = rule.category
		}
	}
	return best
}
