package templates

import (
	"strings"

	"synapse/internal/models"
)

// Vars — значения подстановки для плейсхолдеров шаблона.
type Vars struct {
	BusinessName       string
	TrendTitle         string
	TargetCustomer     string
	TransformationGoal string
	UniqueSolution     string
	ProofPoint         string
	Offer              string
	CTA                string
}

// VarsFor собирает значения подстановки из профиля бизнеса, тренда и
// отраслевой подачи. Берётся первый proof point профиля, если он есть.
func VarsFor(p models.BusinessProfile, trend models.Trend, product ProductTemplate) Vars {
	v := Vars{
		BusinessName:       p.Name,
		TrendTitle:         trend.Title,
		TargetCustomer:     p.UVP.TargetCustomer,
		TransformationGoal: p.UVP.TransformationGoal,
		UniqueSolution:     p.UVP.UniqueSolution,
		Offer:              product.Offer,
	}
	if len(p.ProofPoints) > 0 {
		v.ProofPoint = p.ProofPoints[0].Text
	}
	return v
}

// Render подставляет значения в текст шаблона. Подстановка наивная:
// плейсхолдеры, которых нет в списке, остаются в тексте как есть.
func Render(pattern string, vars Vars) string {
	r := strings.NewReplacer(
		"{{business_name}}", vars.BusinessName,
		"{{trend_title}}", vars.TrendTitle,
		"{{target_customer}}", vars.TargetCustomer,
		"{{transformation_goal}}", vars.TransformationGoal,
		"{{unique_solution}}", vars.UniqueSolution,
		"{{proof_point}}", vars.ProofPoint,
		"{{offer}}", vars.Offer,
		"{{cta}}", vars.CTA,
	)
	return r.Replace(pattern)
}
