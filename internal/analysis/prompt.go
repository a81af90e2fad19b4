package analysis

import (
	"fmt"
	"math"
	"strings"
)

// systemPrompt frames the model as a psychometric evaluator bound to the
// six-factor readiness framework and forces a JSON-only response.
const systemPrompt = `You are an expert psychometric evaluator for Indian study-abroad aspirants.
You analyze aptitude and personality test responses and map them to the
Comprehensive Study Abroad Assessment Framework (Academic Readiness, Financial Planning,
Career Alignment, Personal & Cultural Readiness, Practical Readiness, Support System).

You must:
- Interpret quiz/test responses as indicators of cognitive skills and preparedness.
- Interpret personality items as indicators of emotional, cultural, and social readiness.
- Calculate sub-scores for each dimension (0-100 scale) and provide readiness levels using the scoring guide:
  - 90-100: Excellent
  - 80-89: Very Good
  - 70-79: Good
  - 60-69: Satisfactory
  - <60: Needs Improvement

- Then synthesize a narrative summary of strengths, gaps, and recommendations for improvement.
- Align all results with the 6-factor framework weights:
  - Financial Planning 25%
  - Academic Readiness 20%
  - Career & Goal Alignment 20%
  - Personal & Cultural Readiness 15%
  - Practical Readiness 10%
  - Support System 10%

Output Format (JSON only):
{
  "Student Name": "...",
  "Student Email": "...",
  "Student Phone": "...",
  "Scores": {
     "Financial Planning": 0,
     "Academic Readiness": 0,
     "Career Alignment": 0,
     "Personal & Cultural": 0,
     "Practical Readiness": 0,
     "Support System": 0
  },
  "Overall Readiness Index": 0,
  "Readiness Level": "...",
  "Strengths": "...",
  "Gaps": "...",
  "Recommendations": "...",
  "Country Fit (Top 3)": ["...", "...", "..."]
}

Be objective, research-based, and India-context aware. ONLY output JSON.`

// BuildUserPrompt renders the per-student evaluation request. Topic scores
// are restated on a 25-point scale to match the framework's rubric.
func BuildUserPrompt(profile StudentProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Evaluate the following student's quiz performance and psychometric profile.\n\n")
	fmt.Fprintf(&b, "Student Details:\nName: %s\n", profile.Name)
	fmt.Fprintf(&b, "Email: %s\n", orNotProvided(profile.Email))
	fmt.Fprintf(&b, "Contact: %s\n\n", orNotProvided(profile.Phone))

	b.WriteString("Test Results Summary:\n")
	for _, topic := range profile.TopicScores {
		scaled := 0
		if topic.Total > 0 {
			scaled = int(math.Round(float64(topic.Correct) / float64(topic.Total) * 25))
		}
		fmt.Fprintf(&b, "%s: %d / 25\n", topic.Name, scaled)
	}

	fmt.Fprintf(&b, "\nOverall Performance: %d/100\n\n", profile.OverallScore)

	b.WriteString(`IMPORTANT EVALUATION GUIDELINES:
- Interpret these scores as indicators of readiness across the 6-factor framework
- Use the scoring guide: 90-100 (Excellent), 80-89 (Very Good), 70-79 (Good), 60-69 (Satisfactory), <60 (Needs Improvement)
- Provide realistic, research-based analysis suitable for Indian study-abroad aspirants

Please:
1. Generate the Comprehensive Readiness Index based on the 6-factor framework mapping
2. Provide sub-scores for each of the 6 framework areas
3. Include qualitative strengths, development areas, and clear next steps
4. Suggest top 3 study destinations using the Country-Fit Matrix logic from the framework

Use the 6-factor framework weights:
- Financial Planning 25%
- Academic Readiness 20%
- Career & Goal Alignment 20%
- Personal & Cultural Readiness 15%
- Practical Readiness 10%
- Support System 10%`)

	return b.String()
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}
