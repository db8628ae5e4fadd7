/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package consensus

import (
	"fmt"
	"strings"

	"chainguard.dev/arbiter/promptbuilder"
)

// challengePrompt instructs a single judge to attack a synthesis against
// the original request.
var challengePrompt = promptbuilder.MustNewPrompt(`<task>
You are a critical reviewer. Attack the synthesized answer below: find
where it fails the original request.
</task>

{{question}}

<constraints>
{{constraints}}
</constraints>

<sub_questions>
{{sub_questions}}
</sub_questions>

<synthesis>
{{synthesis}}
</synthesis>

<instructions>
Look specifically for:
- sub-questions left unanswered or answered superficially
- stated constraints that were ignored
- claims unsupported by the reasoning presented
- missing actionable detail a reader would need

If the synthesis adequately addresses the request, say so plainly.
</instructions>

<output_format>
Return a JSON object:
{
  "pass": true | false,
  "critiques": [{"section": "which part of the synthesis", "issue": "what is wrong"}]
}
With "pass": true, leave "critiques" empty.
</output_format>

Respond with only the JSON object, no additional text.`)

// votePrompt asks one ensemble judge whether the synthesis survives the
// critique.
var votePrompt = promptbuilder.MustNewPrompt(`<task>
A synthesized answer has been challenged. Decide whether the synthesis
adequately addresses the question despite the critique, or whether the
critique identifies failures serious enough to reject it.
</task>

{{question}}

<synthesis_excerpt>
{{synthesis_excerpt}}
</synthesis_excerpt>

<critique>
{{critiques}}
</critique>

<instructions>
Vote "synthesis_wins" if the synthesis is sufficient for the question as
asked. Vote "critique_wins" only if the critique identifies gaps that
materially undermine the answer. List those gaps explicitly when you vote
against the synthesis.
</instructions>

<output_format>
Return a JSON object:
{
  "vote": "synthesis_wins" | "critique_wins",
  "reasoning": "why",
  "critical_gaps": ["gap", ...]
}
</output_format>

Respond with only the JSON object, no additional text.`)

func bindChallenge(query Query, synthesis string) (string, error) {
	p, err := challengePrompt.BindXML("question", struct {
		XMLName struct{} `xml:"question"`
		Content string   `xml:",chardata"`
	}{Content: query.Question})
	if err != nil {
		return "", err
	}
	p, err = p.BindText("constraints", bulleted(query.Constraints))
	if err != nil {
		return "", err
	}
	p, err = p.BindText("sub_questions", bulleted(query.SubQuestions))
	if err != nil {
		return "", err
	}
	p, err = p.BindText("synthesis", synthesis)
	if err != nil {
		return "", err
	}
	return p.Build()
}

func bindVote(query Query, excerpt string, critiques []Critique) (string, error) {
	p, err := votePrompt.BindXML("question", struct {
		XMLName struct{} `xml:"question"`
		Content string   `xml:",chardata"`
	}{Content: query.Question})
	if err != nil {
		return "", err
	}
	p, err = p.BindText("synthesis_excerpt", excerpt)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(critiques))
	for i, c := range critiques {
		lines = append(lines, fmt.Sprintf("%d. [%s] %s", i+1, c.Section, c.Issue))
	}
	p, err = p.BindText("critiques", strings.Join(lines, "\n"))
	if err != nil {
		return "", err
	}
	return p.Build()
}

func bulleted(items []string) string {
	if len(items) == 0 {
		return "(none stated)"
	}
	var b strings.Builder
	for _, it := range items {
		b.WriteString("- ")
		b.WriteString(it)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
