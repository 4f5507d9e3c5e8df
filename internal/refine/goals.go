package refine

// Goal is one named refinement task: its prompt, token budget for chunking,
// and sampling temperature. The goal name doubles as the cache filename stem
// (<name>.json under the job directory).
type Goal struct {
	Name        string
	Prompt      string
	TokenBudget int
	Temperature float32
}

var (
	// OutlineGoal produces the polished, timestamped outline every other goal
	// feeds on. Cache name kept as mainGoal for layout compatibility.
	OutlineGoal = Goal{Name: "mainGoal", Prompt: outlinePrompt, TokenBudget: 6000, Temperature: 0.6}

	SummaryGoal  = Goal{Name: "summaryGoal", Prompt: summaryPrompt, TokenBudget: 4000, Temperature: 0.6}
	GlossaryGoal = Goal{Name: "glossaryGoal", Prompt: glossaryPrompt, TokenBudget: 8000, Temperature: 0.6}
	FAQGoal      = Goal{Name: "faqGoal", Prompt: faqPrompt, TokenBudget: 8000, Temperature: 0.6}
	TLDRGoal     = Goal{Name: "tldrGoal", Prompt: tldrPrompt, TokenBudget: 8000, Temperature: 0.6}
	SlidesGoal   = Goal{Name: "slidesGoal", Prompt: slidesPrompt, TokenBudget: 3000, Temperature: 0.6}
)

const outlinePrompt = `- Reply in JSON format only
- IMPORTANT: DO NOT include a top level object.
- Provide comprehensive, detailed, polished notes based on the content provided.
- Avoid phrases like "The speaker..." or "The discussion...". Instead, directly summarize the content or topic itself.
- Explain like a scientist. Go into detail but always aim for clarity, ensuring non-experts can follow. Dive into the nitty-gritty of the topic, explaining technical jargon in layman's terms and relating complex concepts in an accessible manner.
- Divide the content into multiple segments, each segment covering a specific topic or discussion point.
- Do not number the segments or topics.
- For each segment, provide:
   1. A unique header that summarizes the main topic or point of discussion.
   2. Detailed content that encapsulates the key aspects and context of that segment.
   3. The exact timestamp (format: minutes : seconds) indicating when this topic or discussion starts in the content.
- Ensure that each segment is distinct and covers different aspects of the content without overlap.

    Example Format (do not include my example in the results, for reference only):
    [
        {
            "Header": "Overview",
            "Content": "Detailed explanation of Overview including key points",
            "Timestamp": "(00:00:00)"
        },
        {
            "Header": "Detailed Analysis",
            "Content": "Detailed explanation of Detailed Analysis including key points",
            "Timestamp": "(00:02:00)"
        }
    ]
`

const summaryPrompt = `- Reply in JSON format.
- Don't include a top level object.
- Create a list of key points from the provided content.
- Directly summarize the key point.
- Do not include the speaker's name or refer to the speaker in the summary.
- Include a header summarizing the key point, and detailed explanation as content.

Example Format:
[
  {
    "Header": "Thinking Like a Scientist",
    "Content": "- conducting experiments \n - analyzing data \n - revisit opinions based on evidence"
  }
]
`

const glossaryPrompt = `- Reply in JSON format only.
- IMPORTANT: DO NOT include a top level object.
- Create a glossary of all the essential technical terms and include an easy to understand definition of each one.
- Provide list in alphabetical order by term.
- Format this content into a JSON structure with the following fields for each entry: "Term", "Definition"

Example Format:
[
 {
     "Term": "Sunk-cost Fallacy",
     "Definition": "A cognitive bias where people make decisions based on the resources (time, money, effort) they have already invested in a situation, rather than evaluating the current circumstances and potential future outcomes."
 }
]
`

const faqPrompt = `- Reply in JSON format only.
- IMPORTANT: DO NOT include a top level object.
- Create a list of questions asked and potential FAQs, based on the content provided.
- Format this content into a JSON structure with the following fields for each question: "Question", "Answer"

Example Format:
[
  {
      "Question": "How can you make your practice session more challenging with friends?",
      "Answer": "Start the practice session by saying, 'If you can't make me cry, I won't value you as a friend.'"
  }
]
`

const tldrPrompt = `- Reply in JSON format only.
- IMPORTANT: DO NOT include a top level object.
- Create a title for this content
- Create a concise one paragraph summary of the content provided.

Example Format:
[
 {
     "Title": "An informative title for this content",
     "Content": "A concise one paragraph summary of the content"
 }
]
`

const slidesPrompt = `- Reply in JSON format only.
- Create a detailed list of educational slides based on the content provided for the video speaker to use during their presentation.
- Do not include the title slide or the closing slide.
- Do not number the slides

For each slide in this chunk, provide the following:
Title: Slide Title
Content: Bullet points explaining the slide content
Visual: Description of visual elements as a detailed and safe image-generation prompt. The visual should have no text included in the design.
Explanation: Pretend you are the presenter in the video, what would you say to the audience during this slide. This should be a script the presenter can read out loud including all the information about the slide.
Timestamp: Location of the video where context is referenced

Example Format (do not include my example in the results, for reference only):
[
{
   "Title": "Thinking Like a Scientist",
   "Content": "- conducting experiments \n - analyzing data \n - revisit opinions based on evidence",
   "Visual": "An image of a scientist conducting experiments",
   "Explanation": "Scientists approach problems with curiosity by asking questions and forming hypotheses, then they conduct experiments or observations, analyze data to draw conclusions, and remain open to revising their views based on evidence.",
   "Timestamp": "(3:13)"
}
]
`
