package synthesis

import (
	"encoding/json"
	"fmt"
	"strings"

	"synapse/internal/models"
)

const synthesisSystem = "You are a senior marketing strategist. You turn raw market intelligence into a clear, actionable positioning narrative for a small business."

// BuildMegaPrompt сводит результаты всех извлечений в один промпт
// синтеза. Каждая секция помечена уверенностью, чтобы модель знала,
// каким данным доверять; упавшие извлечения помечаются явно.
func BuildMegaPrompt(p models.BusinessProfile, results []ExtractionResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Business: %s (industry: %s)\n", p.Name, p.Industry)
	fmt.Fprintf(&b, "Target customer: %s\n", p.UVP.TargetCustomer)
	fmt.Fprintf(&b, "Transformation goal: %s\n", p.UVP.TransformationGoal)
	fmt.Fprintf(&b, "Unique solution: %s\n\n", p.UVP.UniqueSolution)

	for _, res := range results {
		fmt.Fprintf(&b, "## %s (confidence: %.2f)\n", res.Metadata.ExtractorID, res.Confidence.Overall)
		if !res.Success {
			fmt.Fprintf(&b, "extraction failed: %s\n\n", res.Err)
			continue
		}
		data, err := json.MarshalIndent(res.Data, "", "  ")
		if err != nil {
			b.WriteString("unavailable\n\n")
			continue
		}
		b.Write(data)
		b.WriteString("\n\n")
	}

	b.WriteString("Synthesize the sections above into a strategic narrative of 3-4 paragraphs: " +
		"the industry moment, the competitive landscape, the audience psychology and how this business " +
		"should position itself this week. Treat low-confidence sections with caution and do not invent " +
		"facts for failed sections. Respond with the narrative only.")
	return b.String()
}
