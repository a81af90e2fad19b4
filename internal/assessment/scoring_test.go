package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answerAll(answer string) []Response {
	var responses []Response
	for _, q := range Questions() {
		responses = append(responses, Response{
			QuestionID: q.ID,
			Section:    q.Section,
			Answer:     answer,
		})
	}
	return responses
}

func TestQuestionBank(t *testing.T) {
	questions := Questions()
	require.Len(t, questions, 25)

	counts := make(map[string]int)
	seen := make(map[string]bool)
	for _, q := range questions {
		assert.False(t, seen[q.ID], "duplicate question id %s", q.ID)
		seen[q.ID] = true
		assert.NotEmpty(t, q.Prompt)
		assert.NotEmpty(t, q.Options.A)
		assert.NotEmpty(t, q.Options.D)
		counts[q.Section]++
	}

	assert.Equal(t, 5, counts[SectionAcademic])
	assert.Equal(t, 4, counts[SectionCareer])
	assert.Equal(t, 4, counts[SectionFinancial])
	assert.Equal(t, 4, counts[SectionCultural])
	assert.Equal(t, 4, counts[SectionPractical])
	assert.Equal(t, 4, counts[SectionSupport])
}

func TestScoreAllTopAnswers(t *testing.T) {
	summary := Score(answerAll("A"))

	require.Len(t, summary.Sections, 6)
	for _, s := range summary.Sections {
		assert.Equal(t, 100, s.Percent, "section %s", s.Name)
	}
	assert.Equal(t, 100, summary.Overall)
}

func TestScoreAllBottomAnswers(t *testing.T) {
	summary := Score(answerAll("D"))

	require.Len(t, summary.Sections, 6)
	for _, s := range summary.Sections {
		assert.Equal(t, 25, s.Percent, "section %s", s.Name)
	}
	assert.Equal(t, 25, summary.Overall)
}

func TestScoreMixedSection(t *testing.T) {
	// Two answers in one section: (4+1)/2 = 2.5 -> 63%.
	summary := Score([]Response{
		{QuestionID: "Q10", Section: SectionFinancial, Answer: "A"},
		{QuestionID: "Q11", Section: SectionFinancial, Answer: "D"},
	})

	require.Len(t, summary.Sections, 1)
	assert.Equal(t, SectionFinancial, summary.Sections[0].Name)
	assert.Equal(t, 63, summary.Sections[0].Percent)
	assert.Equal(t, 63, summary.Overall)
}

func TestScoreDuplicateAnswersLastWins(t *testing.T) {
	summary := Score([]Response{
		{QuestionID: "Q1", Section: SectionAcademic, Answer: "D"},
		{QuestionID: "Q1", Section: SectionAcademic, Answer: "A"},
	})

	require.Len(t, summary.Sections, 1)
	assert.Equal(t, 100, summary.Sections[0].Percent)
}

func TestScoreIgnoresUnknownInput(t *testing.T) {
	summary := Score([]Response{
		{QuestionID: "Q1", Section: SectionAcademic, Answer: "A"},
		{QuestionID: "Q99", Section: "Astrology Readiness", Answer: "A"},
		{QuestionID: "Q2", Section: SectionAcademic, Answer: "E"},
		{QuestionID: "Q3", Section: SectionAcademic, Answer: ""},
	})

	require.Len(t, summary.Sections, 1)
	assert.Equal(t, SectionAcademic, summary.Sections[0].Name)
	assert.Equal(t, 100, summary.Sections[0].Percent)
}

func TestScoreOmitsEmptySections(t *testing.T) {
	summary := Score([]Response{
		{QuestionID: "Q6", Section: SectionCareer, Answer: "B"},
	})

	require.Len(t, summary.Sections, 1)
	assert.Equal(t, SectionCareer, summary.Sections[0].Name)
	assert.Equal(t, 75, summary.Sections[0].Percent)
	assert.Equal(t, 75, summary.Overall)
}

func TestScoreEmptySubmission(t *testing.T) {
	summary := Score(nil)

	assert.Empty(t, summary.Sections)
	assert.Equal(t, 0, summary.Overall)
}

func TestScoreSectionOrderStable(t *testing.T) {
	// Sections come back in the canonical dimension order regardless of the
	// order answers arrived in.
	summary := Score([]Response{
		{QuestionID: "Q22", Section: SectionSupport, Answer: "A"},
		{QuestionID: "Q1", Section: SectionAcademic, Answer: "B"},
		{QuestionID: "Q10", Section: SectionFinancial, Answer: "C"},
	})

	require.Len(t, summary.Sections, 3)
	assert.Equal(t, SectionAcademic, summary.Sections[0].Name)
	assert.Equal(t, SectionFinancial, summary.Sections[1].Name)
	assert.Equal(t, SectionSupport, summary.Sections[2].Name)
}
