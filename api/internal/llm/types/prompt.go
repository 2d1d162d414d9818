package types

import "strings"

// Temperature used for every correction request.
const Temperature = 0.3

const checkPromptTemplate = `
You are a Spanish instructor at the University of Missouri (SPAN 1200).
The student wrote about their last birthday. Correct grammar, spelling, and accent marks in Spanish,
with emphasis on past tense (preterite) regular and irregular verbs (aim for ~6 of each).
Then provide explanations in English for the main corrections (bullet points, concise).
Return JSON with keys: "corrected_text", "explanations_md".
Student text:
{text}
`

// SystemInstruction is given to engines that take a separate system turn.
const SystemInstruction = "You are a careful Spanish instructor. Answer with a single JSON object and nothing else."

func BuildCheckPrompt(text string) string {
	return strings.Replace(checkPromptTemplate, "{text}", text, 1)
}
