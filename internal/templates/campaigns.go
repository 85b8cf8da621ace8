package templates

import (
	"synapse/internal/intel"
	"synapse/internal/models"
)

// CampaignTemplate — статичный шаблон кампании. Categories определяют,
// на какие тренды шаблон откликается, Triggers — какие психологические
// триггеры он задействует.
type CampaignTemplate struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Categories  []string          `json:"categories"`
	Triggers    []string          `json:"triggers"`
	Platforms   []models.Platform `json:"platforms"`
	HookPattern string            `json:"hook_pattern"`
	BodyPattern string            `json:"body_pattern"`
	CTA         string            `json:"cta"`
}

// Campaigns — реестр шаблонов кампаний.
var Campaigns = []CampaignTemplate{
	{
		ID:          "trend-spotlight",
		Name:        "Trend Spotlight",
		Categories:  []string{intel.CategoryTechnology, intel.CategoryConsumer},
		Triggers:    []string{intel.TriggerFOMO, intel.TriggerStatus},
		Platforms:   []models.Platform{models.PlatformLinkedIn, models.PlatformTwitter},
		HookPattern: "{{trend_title}} is changing what {{target_customer}} expect.",
		BodyPattern: "{{business_name}} is already there. {{unique_solution}} — built for {{target_customer}} who want {{transformation_goal}}.",
		CTA:         "See how it works",
	},
	{
		ID:          "local-authority",
		Name:        "Local Authority",
		Categories:  []string{intel.CategoryConsumer, intel.CategoryGeneral},
		Triggers:    []string{intel.TriggerTrust, intel.TriggerBelonging},
		Platforms:   []models.Platform{models.PlatformFacebook, models.PlatformGoogleBusiness},
		HookPattern: "Your neighbors already trust {{business_name}}.",
		BodyPattern: "{{proof_point}} Join the local community that counts on {{business_name}} for {{transformation_goal}}.",
		CTA:         "Visit us today",
	},
	{
		ID:          "how-to-edge",
		Name:        "How-To Edge",
		Categories:  []string{intel.CategoryTechnology, intel.CategoryGeneral},
		Triggers:    []string{intel.TriggerConvenience, intel.TriggerAspiration},
		Platforms:   []models.Platform{models.PlatformLinkedIn, models.PlatformFacebook},
		HookPattern: "How {{target_customer}} get {{transformation_goal}} without the hassle.",
		BodyPattern: "{{trend_title}} made simple: {{unique_solution}}. {{business_name}} does the hard part for you.",
		CTA:         "Learn more",
	},
	{
		ID:          "proof-first",
		Name:        "Proof First",
		Categories:  []string{intel.CategoryGeneral, intel.CategoryRegulation},
		Triggers:    []string{intel.TriggerTrust, intel.TriggerSecurity},
		Platforms:   []models.Platform{models.PlatformLinkedIn, models.PlatformGoogleBusiness},
		HookPattern: "{{proof_point}}",
		BodyPattern: "That's what {{target_customer}} say about {{business_name}}. {{unique_solution}}, with results you can verify.",
		CTA:         "Read the reviews",
	},
	{
		ID:          "cost-saver",
		Name:        "Cost Saver",
		Categories:  []string{intel.CategoryEconomy},
		Triggers:    []string{intel.TriggerSecurity, intel.TriggerConvenience},
		Platforms:   []models.Platform{models.PlatformFacebook, models.PlatformTwitter},
		HookPattern: "{{trend_title}} — and what it means for your budget.",
		BodyPattern: "While costs climb, {{business_name}} keeps {{transformation_goal}} affordable for {{target_customer}}. {{offer}}",
		CTA:         "Lock in your price",
	},
	{
		ID:          "green-story",
		Name:        "Green Story",
		Categories:  []string{intel.CategorySustainability},
		Triggers:    []string{intel.TriggerBelonging, intel.TriggerAspiration},
		Platforms:   []models.Platform{models.PlatformFacebook, models.PlatformLinkedIn},
		HookPattern: "{{trend_title}} matters to us too.",
		BodyPattern: "{{business_name}} is making {{transformation_goal}} sustainable — join {{target_customer}} who choose better.",
		CTA:         "Be part of it",
	},
	{
		ID:          "momentum-offer",
		Name:        "Momentum Offer",
		Categories:  []string{intel.CategoryGeneral, intel.CategoryConsumer, intel.CategoryEconomy},
		Triggers:    []string{intel.TriggerUrgency, intel.TriggerFOMO},
		Platforms:   []models.Platform{models.PlatformFacebook, models.PlatformTwitter, models.PlatformGoogleBusiness},
		HookPattern: "{{trend_title}} won't wait. Neither should you.",
		BodyPattern: "{{offer}} — only while the moment lasts. {{business_name}} makes {{transformation_goal}} happen now.",
		CTA:         "Claim the offer",
	},
	{
		ID:          "vision-post",
		Name:        "Vision Post",
		Categories:  []string{intel.CategoryTechnology, intel.CategorySustainability, intel.CategoryGeneral},
		Triggers:    []string{intel.TriggerAspiration, intel.TriggerStatus},
		Platforms:   []models.Platform{models.PlatformLinkedIn},
		HookPattern: "Where {{trend_title}} takes {{target_customer}} next.",
		BodyPattern: "{{business_name}} believes {{transformation_goal}} is just the start. {{unique_solution}} — for those who lead, not follow.",
		CTA:         "Join the leaders",
	},
}

// Маршрутизация: категория тренда — подходящие шаблоны. Категории без
// собственной записи получают набор general.
var categoryRouting = map[string][]string{
	intel.CategoryTechnology:     {"trend-spotlight", "how-to-edge", "vision-post"},
	intel.CategoryConsumer:       {"trend-spotlight", "local-authority", "momentum-offer"},
	intel.CategoryEconomy:        {"cost-saver", "momentum-offer"},
	intel.CategoryRegulation:     {"proof-first"},
	intel.CategorySustainability: {"green-story", "vision-post"},
	intel.CategoryGeneral:        {"local-authority", "how-to-edge", "proof-first", "momentum-offer"},
}

// CampaignByID возвращает шаблон по идентификатору.
func CampaignByID(id string) (CampaignTemplate, bool) {
	for _, tpl := range Campaigns {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return CampaignTemplate{}, false
}

// ForCategory возвращает шаблоны-кандидаты для категории тренда.
func ForCategory(category string) []CampaignTemplate {
	ids, ok := categoryRouting[category]
	if !ok {
		ids = categoryRouting[intel.CategoryGeneral]
	}

	result := make([]CampaignTemplate, 0, len(ids))
	for _, id := range ids {
		if tpl, ok := CampaignByID(id); ok {
			result = append(result, tpl)
		}
	}
	return result
}
