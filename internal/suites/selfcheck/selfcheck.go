// Package selfcheck snapshot-tests snappy's own output formats: report
// rendering, the snapshot file layout and the run summary.
package selfcheck

import (
	"snappy/internal/models"
	"snappy/internal/services"
	"strings"
)

const SuiteName = "selfcheck"

// fixedDate keeps serialized records stable between runs.
const fixedDate = "2024-01-01T00:00:00Z"

func init() {
	services.Register(SuiteName, Setup)
}

func Setup(s *services.Suite) error {
	cases := []struct {
		name string
		fn   services.CaseFunc
	}{
		{"render_mixed", renderMixed},
		{"render_folded", renderFolded},
		{"render_sorted", renderSorted},
		{"record_format", recordFormat},
		{"summary", summary},
	}
	for _, c := range cases {
		if err := s.TestCase(c.name, c.fn); err != nil {
			return err
		}
	}
	return nil
}

func renderMixed(c services.Capturer) error {
	complexReport := models.NewReport("complex").
		AddChild(models.NewReport("sub_1").SetStatus(models.StatusPass)).
		AddChild(models.NewReport("sub_2").SetStatus(models.StatusFail)).
		AddChild(models.NewReport("sub_3").SetStatus(models.StatusPending))
	return c.Snap(complexReport.String(), "complex")
}

func renderFolded(c services.Capturer) error {
	root := models.NewReport("root")
	for _, path := range []string{"a.one", "a.two", "b.c.three", "b.four"} {
		root.ChildByPath(path).SetStatus(models.StatusPass)
	}
	if err := c.Snap(root.String(), "all_pass"); err != nil {
		return err
	}

	root.ChildByPath("b.c.five").SetStatus(models.StatusFail)
	return c.Snap(root.String(), "one_fail")
}

func renderSorted(c services.Capturer) error {
	root := models.NewReport("root")
	root.ChildByPath("deep.nested.leaf").SetStatus(models.StatusFail)
	root.ChildByPath("shallow").SetStatus(models.StatusFail)
	root.ChildByPath("waiting")
	root.ChildByPath("done.leaf").SetStatus(models.StatusPass)
	root.ChildByPath("ok").SetStatus(models.StatusPass)
	return c.Snap(root.String(), "mixed_depths")
}

func recordFormat(c services.Capturer) error {
	for _, content := range []struct{ snap, body string }{
		{"greeting", "hello, world!\n"},
		{"multiline", "first line\nsecond line"},
		{"empty", ""},
	} {
		rec, err := models.BuildRecord("greets", content.snap, models.WithContent(content.body), fixedDate)
		if err != nil {
			return err
		}
		data, err := rec.Bytes()
		if err != nil {
			return err
		}
		if err = c.Snap(quote(string(data)), content.snap); err != nil {
			return err
		}
	}
	return nil
}

// quote prefixes every line with the report spacer. A serialized record
// contains bare delimiter lines, which would end the body of the snapshot
// holding it.
func quote(text string) string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = models.Spacer + line
	}
	return strings.Join(lines, "\n")
}

func summary(c services.Capturer) error {
	for _, s := range []struct {
		name    string
		summary models.Summary
	}{
		{"singular", models.Summary{Ran: 1, Passed: 1, Failed: 0, ToReview: 1}},
		{"plural", models.Summary{Ran: 5, Passed: 3, Failed: 2, ToReview: 4}},
	} {
		if err := c.Snap(strings.Join(s.summary.Lines(), "\n"), s.name); err != nil {
			return err
		}
	}
	return nil
}
