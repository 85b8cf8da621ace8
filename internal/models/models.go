package models

import "time"

// Platform — социальная площадка, на которую публикуется контент.
type Platform string

const (
	PlatformFacebook       Platform = "facebook"
	PlatformLinkedIn       Platform = "linkedin"
	PlatformTwitter        Platform = "twitter"
	PlatformGoogleBusiness Platform = "google_business"
)

// AllPlatforms перечисляет поддерживаемые площадки в фиксированном порядке.
var AllPlatforms = []Platform{
	PlatformFacebook,
	PlatformLinkedIn,
	PlatformTwitter,
	PlatformGoogleBusiness,
}

// UVP — уникальное ценностное предложение бизнеса. Используется как вход
// для оценки релевантности трендов и генерации контента.
type UVP struct {
	TargetCustomer     string   `json:"target_customer"`
	TransformationGoal string   `json:"transformation_goal"`
	UniqueSolution     string   `json:"unique_solution"`
	Differentiators    []string `json:"differentiators,omitempty"`
}

// ProofPoint — подтверждение ценности: отзыв, метрика, кейс, награда.
type ProofPoint struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

// BusinessProfile — профиль бизнеса: отрасль, UVP, доказательства,
// страницы конкурентов для скрейпинга.
type BusinessProfile struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Industry       string       `json:"industry"`
	Website        string       `json:"website,omitempty"`
	UVP            UVP          `json:"uvp"`
	ProofPoints    []ProofPoint `json:"proof_points,omitempty"`
	CompetitorURLs []string     `json:"competitor_urls,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Trend — агрегированный отраслевой сигнал. SourceCount растёт с каждым
// новым источником, упомянувшим тот же заголовок.
type Trend struct {
	ID          int       `json:"id"`
	Industry    string    `json:"industry"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Link        string    `json:"link,omitempty"`
	SourceCount int       `json:"source_count"`
	FirstSeen   time.Time `json:"first_seen"`
	LastSeen    time.Time `json:"last_seen"`
}

// Lifecycle — оценка стадии жизненного цикла тренда.
type Lifecycle struct {
	Stage    string  `json:"stage"`
	Velocity float64 `json:"velocity"`
	Momentum float64 `json:"momentum"`
	AgeDays  float64 `json:"age_days"`
}

// TriggerScore — сработавший психологический триггер и его вес.
type TriggerScore struct {
	Trigger string   `json:"trigger"`
	Score   float64  `json:"score"`
	Matches []string `json:"matches,omitempty"`
}

// CompetitorSignal — сигналы, извлечённые со страницы конкурента.
type CompetitorSignal struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Headline  string    `json:"headline,omitempty"`
	Offers    []string  `json:"offers,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// IndustryIntel — отраслевая часть DeepContext.
type IndustryIntel struct {
	TopTrends  []Trend        `json:"top_trends"`
	Categories map[string]int `json:"categories,omitempty"`
}

// CompetitiveIntel — конкурентная часть DeepContext.
type CompetitiveIntel struct {
	Signals []CompetitorSignal `json:"signals,omitempty"`
}

// PsychologyProfile — психологический портрет аудитории.
type PsychologyProfile struct {
	Triggers []TriggerScore `json:"triggers,omitempty"`
	Summary  string         `json:"summary,omitempty"`
}

// DeepContext — агрегат отраслевого, конкурентного и психологического
// интеллекта по бизнесу. Narrative — синтезированное моделью описание.
type DeepContext struct {
	BusinessID  string            `json:"business_id"`
	Industry    IndustryIntel     `json:"industry"`
	Competitive CompetitiveIntel  `json:"competitive"`
	Psychology  PsychologyProfile `json:"psychology"`
	ProofPoints []ProofPoint      `json:"proof_points,omitempty"`
	Narrative   string            `json:"narrative,omitempty"`
	Confidence  float64           `json:"confidence"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// ScoreBreakdown — составляющие итоговой оценки идеи кампании.
type ScoreBreakdown struct {
	Relevance    float64 `json:"relevance"`
	Momentum     float64 `json:"momentum"`
	TriggerFit   float64 `json:"trigger_fit"`
	ProofSupport float64 `json:"proof_support"`
}

// CampaignIdea — идея кампании, собранная из шаблона и тренда.
type CampaignIdea struct {
	ID         string         `json:"id"`
	BusinessID string         `json:"business_id"`
	TemplateID string         `json:"template_id"`
	TrendTitle string         `json:"trend_title,omitempty"`
	Title      string         `json:"title"`
	Hook       string         `json:"hook"`
	Platforms  []Platform     `json:"platforms"`
	Score      float64        `json:"score"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
	CreatedAt  time.Time      `json:"created_at"`
}

// PostStatus — состояние поста в истории публикаций.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostFailed    PostStatus = "failed"
)

// Post — сгенерированный пост и результат его публикации.
type Post struct {
	ID             string     `json:"id"`
	BusinessID     string     `json:"business_id"`
	IdeaID         string     `json:"idea_id,omitempty"`
	Platform       Platform   `json:"platform"`
	Content        string     `json:"content"`
	Status         PostStatus `json:"status"`
	PlatformPostID string     `json:"platform_post_id,omitempty"`
	Error          string     `json:"error,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
}
