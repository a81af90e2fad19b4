package assessment

// Section names for the six readiness dimensions. Question sections and the
// analysis framework use the same fixed enumeration.
const (
	SectionAcademic  = "Academic Readiness"
	SectionCareer    = "Career & Goal Alignment"
	SectionFinancial = "Financial Planning"
	SectionCultural  = "Personal & Cultural Readiness"
	SectionPractical = "Practical Readiness"
	SectionSupport   = "Support System"
)

// Sections returns the fixed ordered dimension set.
func Sections() []string {
	return []string{
		SectionAcademic,
		SectionCareer,
		SectionFinancial,
		SectionCultural,
		SectionPractical,
		SectionSupport,
	}
}

// Options holds the four answer choices for a question, ordered from the
// highest-readiness answer (A) to the lowest (D).
type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Question is a single scored multiple-choice item. The bank is defined once
// at process start and never mutated.
type Question struct {
	ID      string  `json:"id"`
	Section string  `json:"section"`
	Prompt  string  `json:"question"`
	Options Options `json:"options"`
}

// Questions returns the fixed ordered 25-item question bank of the concise
// readiness track.
func Questions() []Question {
	return questionBank
}

// QuestionByID looks up a bank item by identifier.
func QuestionByID(id string) (Question, bool) {
	for _, q := range questionBank {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

var questionBank = []Question{
	// Section 1: Academic Readiness (5 questions)
	{
		ID:      "Q1",
		Section: SectionAcademic,
		Prompt:  "How would you describe your academic performance?",
		Options: Options{
			A: "Consistently high (above 85%)",
			B: "Good (70–85%)",
			C: "Average (55–70%)",
			D: "Below average (below 55%)",
		},
	},
	{
		ID:      "Q2",
		Section: SectionAcademic,
		Prompt:  "Have you attempted or planned standardized tests (IELTS/TOEFL, GRE/GMAT, SAT)?",
		Options: Options{
			A: "Already taken and scored well",
			B: "Preparing actively",
			C: "Planned but not started",
			D: "Not considered yet",
		},
	},
	{
		ID:      "Q3",
		Section: SectionAcademic,
		Prompt:  "What is your English proficiency level?",
		Options: Options{
			A: "Fluent in academic and conversational use",
			B: "Good, but need improvement in academic writing",
			C: "Understandable but limited",
			D: "Weak, needs strong improvement",
		},
	},
	{
		ID:      "Q4",
		Section: SectionAcademic,
		Prompt:  "Do you have exposure to research projects, internships, or presentations?",
		Options: Options{
			A: "Strong experience",
			B: "Some exposure",
			C: "Limited",
			D: "None",
		},
	},
	{
		ID:      "Q5",
		Section: SectionAcademic,
		Prompt:  "How do you usually prepare for exams?",
		Options: Options{
			A: "Planned, consistent schedule",
			B: "Moderate preparation",
			C: "Last-minute study",
			D: "Unstructured, inconsistent",
		},
	},

	// Section 2: Career & Goal Alignment (4 questions)
	{
		ID:      "Q6",
		Section: SectionCareer,
		Prompt:  "Do you have clear long-term career goals?",
		Options: Options{
			A: "Very clear",
			B: "Somewhat clear",
			C: "Vague",
			D: "No clarity",
		},
	},
	{
		ID:      "Q7",
		Section: SectionCareer,
		Prompt:  "Is your intended course aligned with your career goals?",
		Options: Options{
			A: "Strongly aligned",
			B: "Somewhat aligned",
			C: "Unclear",
			D: "Not aligned",
		},
	},
	{
		ID:      "Q8",
		Section: SectionCareer,
		Prompt:  "Have you researched universities and rankings?",
		Options: Options{
			A: "Extensively",
			B: "Somewhat",
			C: "Minimal",
			D: "Not at all",
		},
	},
	{
		ID:      "Q9",
		Section: SectionCareer,
		Prompt:  "What is your main motivation to study abroad?",
		Options: Options{
			A: "Career growth/employability",
			B: "Research/academic excellence",
			C: "Lifestyle and exposure",
			D: "Migration/settlement",
		},
	},

	// Section 3: Financial Planning (4 questions)
	{
		ID:      "Q10",
		Section: SectionFinancial,
		Prompt:  "How prepared are you with tuition + living cost estimation?",
		Options: Options{
			A: "Fully calculated",
			B: "Partially calculated",
			C: "Rough idea",
			D: "No idea",
		},
	},
	{
		ID:      "Q11",
		Section: SectionFinancial,
		Prompt:  "What is your primary funding source?",
		Options: Options{
			A: "Family savings",
			B: "Education loan",
			C: "Scholarship/grants",
			D: "Not planned yet",
		},
	},
	{
		ID:      "Q12",
		Section: SectionFinancial,
		Prompt:  "Do you have contingency/emergency funds planned?",
		Options: Options{
			A: "Yes",
			B: "Somewhat",
			C: "Minimal",
			D: "None",
		},
	},
	{
		ID:      "Q13",
		Section: SectionFinancial,
		Prompt:  "How aware are you of scholarship opportunities?",
		Options: Options{
			A: "Very aware",
			B: "Somewhat aware",
			C: "Slightly aware",
			D: "Not aware",
		},
	},

	// Section 4: Personal & Cultural Readiness (4 questions)
	{
		ID:      "Q14",
		Section: SectionCultural,
		Prompt:  "How adaptable are you to new cultures and lifestyles?",
		Options: Options{
			A: "Very adaptable",
			B: "Adaptable",
			C: "Somewhat adaptable",
			D: "Struggle to adapt",
		},
	},
	{
		ID:      "Q15",
		Section: SectionCultural,
		Prompt:  "How independent are you in daily living (cooking, budgeting, self-care)?",
		Options: Options{
			A: "Fully independent",
			B: "Mostly independent",
			C: "Somewhat dependent",
			D: "Dependent",
		},
	},
	{
		ID:      "Q16",
		Section: SectionCultural,
		Prompt:  "How comfortable are you interacting with people from diverse cultures?",
		Options: Options{
			A: "Very comfortable",
			B: "Comfortable",
			C: "Somewhat comfortable",
			D: "Uncomfortable",
		},
	},
	{
		ID:      "Q17",
		Section: SectionCultural,
		Prompt:  "How resilient are you in handling stress?",
		Options: Options{
			A: "Very resilient",
			B: "Moderately resilient",
			C: "Sometimes struggle",
			D: "Easily overwhelmed",
		},
	},

	// Section 5: Practical Readiness (4 questions)
	{
		ID:      "Q18",
		Section: SectionPractical,
		Prompt:  "How prepared are you with visa documentation?",
		Options: Options{
			A: "Fully prepared",
			B: "Somewhat",
			C: "Minimal",
			D: "Not prepared",
		},
	},
	{
		ID:      "Q19",
		Section: SectionPractical,
		Prompt:  "How comfortable are you with digital/online tools?",
		Options: Options{
			A: "Very comfortable",
			B: "Comfortable",
			C: "Somewhat comfortable",
			D: "Uncomfortable",
		},
	},
	{
		ID:      "Q20",
		Section: SectionPractical,
		Prompt:  "Do you have valid health insurance/medical coverage plans?",
		Options: Options{
			A: "Yes",
			B: "Partially",
			C: "Exploring",
			D: "None",
		},
	},
	{
		ID:      "Q21",
		Section: SectionPractical,
		Prompt:  "How good are you at meeting deadlines?",
		Options: Options{
			A: "Excellent",
			B: "Good",
			C: "Fair",
			D: "Poor",
		},
	},

	// Section 6: Support System (4 questions)
	{
		ID:      "Q22",
		Section: SectionSupport,
		Prompt:  "Do your parents/family fully support your study abroad decision?",
		Options: Options{
			A: "Strongly support",
			B: "Support with concerns",
			C: "Unsure",
			D: "Do not support",
		},
	},
	{
		ID:      "Q23",
		Section: SectionSupport,
		Prompt:  "How financially committed is your family?",
		Options: Options{
			A: "Fully committed",
			B: "Somewhat",
			C: "Limited",
			D: "Not committed",
		},
	},
	{
		ID:      "Q24",
		Section: SectionSupport,
		Prompt:  "How aligned are your parents' expectations with yours?",
		Options: Options{
			A: "Strongly aligned",
			B: "Somewhat aligned",
			C: "Slightly aligned",
			D: "Not aligned",
		},
	},
	{
		ID:      "Q25",
		Section: SectionSupport,
		Prompt:  "Have you openly discussed your goals with your parents?",
		Options: Options{
			A: "Yes, extensively",
			B: "Somewhat",
			C: "Minimal",
			D: "Not at all",
		},
	},
}
