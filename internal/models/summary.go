package models

import "fmt"

const summaryRule = "-----------------------------------"

// Summary counts outcomes per test case.
type Summary struct {
	Ran      int `json:"ran"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	ToReview int `json:"to_review"`
}

// Summarize treats every child of every suite report as one test case. A case
// passes only when all of its leaves pass. A case without assertions counts as
// failed even though it leaves nothing to review, matching its pending render.
// Every failing leaf is a snapshot waiting for review.
func Summarize(suites ...*Report) Summary {
	var s Summary
	for _, suite := range suites {
		for _, testCase := range suite.Children() {
			s.Ran++
			if testCase.AllIs(StatusPass) {
				s.Passed++
			} else {
				s.Failed++
			}
			if testCase.IsLeaf() {
				continue
			}
			testCase.Walk(func(_ string, leaf *Report) {
				if leaf.status == StatusFail {
					s.ToReview++
				}
			})
		}
	}
	return s
}

func (s Summary) OK() bool {
	return s.Failed == 0
}

func (s Summary) Lines() []string {
	return []string{
		summaryRule,
		fmt.Sprintf("%s ran:", plural(s.Ran, "test")),
		fmt.Sprintf("  %s passed", plural(s.Passed, "test")),
		fmt.Sprintf("  %s failed", plural(s.Failed, "test")),
		fmt.Sprintf("  %s to review", plural(s.ToReview, "new snap")),
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
