/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package compare

import (
	"chainguard.dev/arbiter/promptbuilder"
)

// trialPrompt is the rationale-first pairwise judgment prompt. The judge
// must enumerate each response's claims before scoring, which reduces
// premature anchoring on an overall impression.
var trialPrompt = promptbuilder.MustNewPrompt(`<task>
You are comparing two responses to the same research question.
Judge them against the scoring rubric provided, and nothing else.
</task>

{{question}}

{{response_1}}

{{response_2}}

<rubric>
{{rubric}}
</rubric>

<instructions>
1. FIRST, enumerate the distinct factual claims made by response 1, then by response 2. Do this before forming any judgment.
2. THEN, evaluate each response against the rubric, referring to the claims you enumerated.
3. FINALLY, score each response from 1 to 5 and declare a winner. Declare "tie" only when the responses are genuinely equivalent under the rubric.
4. Base your judgment on the rubric criteria alone. The order in which the responses appear, and their relative lengths, carry no information about quality.
</instructions>

<output_format>
Return your judgment as a JSON object with this structure:
{
  "response_1_claims": ["claim", ...],
  "response_2_claims": ["claim", ...],
  "response_1_evaluation": "assessment of response 1 against the rubric",
  "response_2_evaluation": "assessment of response 2 against the rubric",
  "winner": "1" | "2" | "tie",
  "response_1_score": 1-5,
  "response_2_score": 1-5,
  "reasoning": "explanation of the comparative judgment"
}
</output_format>

Respond with only the JSON object, no additional text.`)

// trialRequest binds one ordered trial into the prompt.
type trialRequest struct {
	Question string
	First    string
	Second   string
	Rubric   string
}

// Bind implements promptbuilder.Bindable.
func (r *trialRequest) Bind(prompt *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	prompt, err := prompt.BindXML("question", struct {
		XMLName struct{} `xml:"question"`
		Content string   `xml:",chardata"`
	}{Content: r.Question})
	if err != nil {
		return nil, err
	}

	prompt, err = prompt.BindXML("response_1", struct {
		XMLName struct{} `xml:"response_1"`
		Content string   `xml:",chardata"`
	}{Content: r.First})
	if err != nil {
		return nil, err
	}

	prompt, err = prompt.BindXML("response_2", struct {
		XMLName struct{} `xml:"response_2"`
		Content string   `xml:",chardata"`
	}{Content: r.Second})
	if err != nil {
		return nil, err
	}

	return prompt.BindText("rubric", r.Rubric)
}
