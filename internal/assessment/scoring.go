package assessment

import "math"

// Response is a single answered question as submitted by the funnel client.
type Response struct {
	QuestionID string `json:"questionId"`
	Section    string `json:"section"`
	Answer     string `json:"answer"`
}

// SectionScore is a scored readiness dimension on a 0-100 percentage scale.
type SectionScore struct {
	Name    string `json:"name"`
	Percent int    `json:"percent"`
}

// Summary is the scored outcome of a completed (or partial) questionnaire.
type Summary struct {
	Sections []SectionScore `json:"sections"`
	Overall  int            `json:"overall"`
}

// answerWeight maps the ordinal choice letters to their readiness weight.
// Anything outside A-D contributes nothing.
func answerWeight(answer string) (int, bool) {
	switch answer {
	case "A":
		return 4, true
	case "B":
		return 3, true
	case "C":
		return 2, true
	case "D":
		return 1, true
	}
	return 0, false
}

// Score converts raw responses into per-section percentages and an overall
// readiness score. Duplicate answers for the same question are resolved
// last-write-wins. Responses for unknown sections or with unrecognized answer
// letters are ignored. Sections with no valid answers are omitted rather than
// reported as zero, and the overall score is the rounded mean of the sections
// that are present. Score never fails: an empty submission yields an empty
// summary with overall zero.
func Score(responses []Response) Summary {
	type entry struct {
		section string
		weight  int
	}

	// Last answer wins per question, but scoring order follows the first
	// occurrence so resubmissions do not reshuffle section output.
	byQuestion := make(map[string]entry)
	var order []string
	for _, r := range responses {
		w, ok := answerWeight(r.Answer)
		if !ok {
			continue
		}
		if !knownSection(r.Section) {
			continue
		}
		if _, seen := byQuestion[r.QuestionID]; !seen {
			order = append(order, r.QuestionID)
		}
		byQuestion[r.QuestionID] = entry{section: r.Section, weight: w}
	}

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, id := range order {
		e := byQuestion[id]
		sums[e.section] += e.weight
		counts[e.section]++
	}

	var summary Summary
	for _, section := range Sections() {
		n := counts[section]
		if n == 0 {
			continue
		}
		avg := float64(sums[section]) / float64(n)
		summary.Sections = append(summary.Sections, SectionScore{
			Name:    section,
			Percent: clampPercent(int(math.Round(avg / 4.0 * 100))),
		})
	}

	if len(summary.Sections) > 0 {
		total := 0
		for _, s := range summary.Sections {
			total += s.Percent
		}
		summary.Overall = clampPercent(int(math.Round(float64(total) / float64(len(summary.Sections)))))
	}

	return summary
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func knownSection(name string) bool {
	switch name {
	case SectionAcademic, SectionCareer, SectionFinancial,
		SectionCultural, SectionPractical, SectionSupport:
		return true
	}
	return false
}
