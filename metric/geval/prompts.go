//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package geval

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"trpc.group/trpc-go/trpc-eval-go/evalset"
)

var (
	stepSynthesisPrompt = `
# Mission

Your mission is to turn an evaluation criteria into a concise list of evaluation steps.
You will be given: the evaluation criteria (<criteria>) and the list of test case fields (<parameters>) the steps may refer to.
The steps will later be followed one by one to score a model output, so each step must be a concrete check, not a restatement of the criteria.

# Constraints

1. Produce 3 or 4 steps. Do not produce more.
2. Each step must be phrased so an evaluator can follow it using only the listed parameters.
3. Do not mention scoring, numbers, or output format inside the steps.
4. Output only JSON in the exact format below. Do not add any commentary.

# Output Format

{"steps": ["<step 1>", "<step 2>", "..."]}

# Your Turn

## Input

<criteria>
{{.Criteria}}
</criteria>

<parameters>
{{.Parameters}}
</parameters>

## Output
`
	stepSynthesisPromptTemplate = template.Must(template.New("stepSynthesisPrompt").Parse(stepSynthesisPrompt))

	scoringPrompt = `
# Mission

Your mission is to score a model output by following the evaluation steps (<evaluation_steps>) one by one against the test case (<test_case>).
Only use the fields present in <test_case>. Do not assume information that is not given.

# Scoring

Return a score from 0 to 10, where 10 means the output fully satisfies every evaluation step and 0 means it satisfies none of them.
The reason must reference the specific steps that raised or lowered the score.

# Output Format

Output only JSON in the exact format below. Do not add any commentary.

{"score": <number 0-10>, "reason": "<short explanation>"}

# Your Turn

## Input

<evaluation_steps>
{{.Steps}}
</evaluation_steps>

<test_case>
{{.TestCase}}
</test_case>

## Output
`
	scoringPromptTemplate = template.Must(template.New("scoringPrompt").Parse(scoringPrompt))

	strictScoringPrompt = `
# Mission

Your mission is to give a binary verdict on a model output by following the evaluation steps (<evaluation_steps>) one by one against the test case (<test_case>).
Only use the fields present in <test_case>. Do not assume information that is not given.

# Scoring

Return 1 only if the output satisfies every evaluation step. Return 0 if any step is violated. There is no partial credit.
The reason must name the first step that is violated, or state that all steps are satisfied.

# Output Format

Output only JSON in the exact format below. Do not add any commentary.

{"score": <0 or 1>, "reason": "<short explanation>"}

# Your Turn

## Input

<evaluation_steps>
{{.Steps}}
</evaluation_steps>

<test_case>
{{.TestCase}}
</test_case>

## Output
`
	strictScoringPromptTemplate = template.Must(template.New("strictScoringPrompt").Parse(strictScoringPrompt))
)

type stepSynthesisPromptData struct {
	Criteria   string
	Parameters string
}

type scoringPromptData struct {
	Steps    string
	TestCase string
}

func buildStepSynthesisPrompt(criteria string, params []Param) (string, error) {
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, string(p))
	}
	var buf bytes.Buffer
	if err := stepSynthesisPromptTemplate.Execute(&buf, stepSynthesisPromptData{
		Criteria:   criteria,
		Parameters: strings.Join(names, ", "),
	}); err != nil {
		return "", fmt.Errorf("execute step synthesis template: %w", err)
	}
	return buf.String(), nil
}

func buildScoringPrompt(steps []string, params []Param, tc *evalset.TestCase, strict bool) (string, error) {
	var stepsText strings.Builder
	for i, step := range steps {
		fmt.Fprintf(&stepsText, "%d. %s\n", i+1, step)
	}
	data := scoringPromptData{
		Steps:    strings.TrimRight(stepsText.String(), "\n"),
		TestCase: renderTestCase(params, tc),
	}
	tmpl := scoringPromptTemplate
	if strict {
		tmpl = strictScoringPromptTemplate
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute scoring template: %w", err)
	}
	return buf.String(), nil
}

// renderTestCase serializes only the fields named by params so the judge
// never sees fields the metric was not configured to evaluate.
func renderTestCase(params []Param, tc *evalset.TestCase) string {
	var buf strings.Builder
	for _, p := range params {
		switch p {
		case ParamInput:
			writeField(&buf, "input", tc.Input)
		case ParamActualOutput:
			writeField(&buf, "actual_output", tc.ActualOutput)
		case ParamExpectedOutput:
			writeField(&buf, "expected_output", tc.ExpectedOutput)
		case ParamRetrievalContext:
			writeField(&buf, "retrieval_context", strings.Join(tc.RetrievalContext, "\n"))
		case ParamContext:
			writeField(&buf, "context", strings.Join(tc.Context, "\n"))
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

func writeField(buf *strings.Builder, name, value string) {
	fmt.Fprintf(buf, "<%s>\n%s\n</%s>\n", name, value, name)
}
