package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helperReport() *Report {
	return NewReport("top").
		AddChild(NewReport("1st").SetStatus(StatusPass)).
		AddChild(NewReport("2nd").SetStatus(StatusFail)).
		AddChild(NewReport("3rd").SetStatus(StatusPending)).
		AddChild(NewReport("nested").
			AddChild(NewReport("inner_1").SetStatus(StatusPass)).
			AddChild(NewReport("inner_2").SetStatus(StatusPass)))
}

func formattingReport() *Report {
	return NewReport("base").
		AddChild(NewReport("nested").
			AddChild(NewReport("inner_1").
				AddChild(NewReport("sub_2").SetStatus(StatusFail)).
				AddChild(NewReport("sub_1").SetStatus(StatusPending)).
				AddChild(NewReport("sub_3").SetStatus(StatusPass))).
			AddChild(NewReport("inner_2").
				AddChild(NewReport("deepest").
					AddChild(NewReport("innest").SetStatus(StatusFail)))).
			AddChild(NewReport("inner_3").
				AddChild(NewReport("sub_1").SetStatus(StatusPass)).
				AddChild(NewReport("sub_2").SetStatus(StatusPass)))).
		AddChild(NewReport("complex").
			AddChild(NewReport("sub_2").SetStatus(StatusFail)).
			AddChild(NewReport("sub_3").SetStatus(StatusPending)).
			AddChild(NewReport("sub_1").SetStatus(StatusPass))).
		AddChild(NewReport("simple").
			AddChild(NewReport("sub_1").SetStatus(StatusPass)).
			AddChild(NewReport("sub_2").SetStatus(StatusPass)))
}

func TestReport_NewReportIsPendingLeaf(t *testing.T) {
	r := NewReport("fresh")
	assert.True(t, r.IsLeaf())
	assert.Equal(t, StatusPending, r.Status())
	assert.Equal(t, []string{"fresh: ..."}, r.Lines())
}

func TestReport_ChildByName_FindsExisting(t *testing.T) {
	child := helperReport().ChildByName("2nd")
	require.NotNil(t, child)
	assert.Equal(t, "2nd", child.Name)
}

func TestReport_ChildByName_Missing(t *testing.T) {
	assert.Nil(t, helperReport().ChildByName("4th"))
}

func TestReport_ChildByName_LastMatchWins(t *testing.T) {
	first := NewReport("dup").SetStatus(StatusPass)
	second := NewReport("dup").SetStatus(StatusFail)
	r := NewReport("root").AddChild(first).AddChild(second)
	assert.Same(t, second, r.ChildByName("dup"))
}

func TestReport_ChildByPath_FindsExisting(t *testing.T) {
	assert.Equal(t, StatusPass, helperReport().ChildByPath("nested.inner_2").Status())
}

func TestReport_ChildByPath_CreatesMissing(t *testing.T) {
	r := helperReport()
	before := r.LeafCount()

	node := r.ChildByPath("not.real.path")

	assert.Equal(t, StatusPending, node.Status())
	assert.Equal(t, "path", node.Name)
	assert.Equal(t, before+1, r.LeafCount())
}

func countNodes(r *Report) int {
	total := 1
	for _, child := range r.Children() {
		total += countNodes(child)
	}
	return total
}

func TestReport_ChildByPath_Idempotent(t *testing.T) {
	r := NewReport("root")

	first := r.ChildByPath("a.b.c")
	assert.Equal(t, 4, countNodes(r))

	second := r.ChildByPath("a.b.c")
	assert.Equal(t, 4, countNodes(r))
	assert.Same(t, first, second)
}

func TestReport_ChildByPath_FlatName(t *testing.T) {
	r := NewReport("root")
	leaf := r.ChildByPath("greeting")
	require.Len(t, r.Children(), 1)
	assert.Same(t, leaf, r.Children()[0])
}

func TestReport_AllIs(t *testing.T) {
	nested := helperReport().ChildByPath("nested")
	assert.True(t, nested.AllIs(StatusPass))
	assert.False(t, nested.AllIs(StatusFail))
}

func TestReport_Height(t *testing.T) {
	r := formattingReport()
	assert.Equal(t, 0, r.ChildByPath("complex.sub_1").Height())
	assert.Equal(t, 1, r.ChildByPath("complex").Height())
	assert.Equal(t, 3, r.ChildByPath("nested").Height())
}

func TestReport_Status_Branch(t *testing.T) {
	r := formattingReport()
	assert.Equal(t, StatusPass, r.ChildByPath("simple").Status())
	assert.Equal(t, StatusFail, r.ChildByPath("complex").Status())

	pending := NewReport("p").
		AddChild(NewReport("a").SetStatus(StatusPass)).
		AddChild(NewReport("b"))
	assert.Equal(t, StatusPending, pending.Status())
}

func TestReport_Status_BranchIgnoresOwnField(t *testing.T) {
	r := NewReport("branch").SetStatus(StatusFail).
		AddChild(NewReport("leaf").SetStatus(StatusPass))
	assert.Equal(t, StatusPass, r.Status())
	assert.Equal(t, []string{"branch: 1 Ok."}, r.Lines())
}

func TestReport_Lines_CollapsesSuccesses(t *testing.T) {
	assert.Contains(t, formattingReport().ChildByPath("simple").Lines(), "simple: 2 Ok.")
}

func TestReport_Lines_FoldCountsLeavesNotChildren(t *testing.T) {
	r := NewReport("group").
		AddChild(NewReport("a").
			AddChild(NewReport("x").SetStatus(StatusPass)).
			AddChild(NewReport("y").SetStatus(StatusPass))).
		AddChild(NewReport("b").SetStatus(StatusPass))
	assert.Equal(t, []string{"group: 3 Ok."}, r.Lines())
}

func TestReport_Lines_DoesNotCollapseFailures(t *testing.T) {
	assert.Contains(t, formattingReport().ChildByPath("complex").Lines(), "complex/")
}

func TestReport_Lines_ReordersStatus(t *testing.T) {
	assert.Equal(t, []string{
		"complex/",
		"  | sub_1: Ok.",
		"  | sub_2: Err!",
		"  | sub_3: ...",
	}, formattingReport().ChildByPath("complex").Lines())
}

func TestReport_Lines_DeepNesting(t *testing.T) {
	assert.Equal(t, []string{
		"inner_2/",
		"  | deepest/",
		"  |   | innest: Err!",
	}, formattingReport().ChildByPath("nested.inner_2").Lines())
}

func TestReport_Lines_Everything(t *testing.T) {
	assert.Equal(t, []string{
		"nested/",
		"  | inner_3: 2 Ok.",
		"  | inner_1/",
		"  |   | sub_3: Ok.",
		"  |   | sub_2: Err!",
		"  |   | sub_1: ...",
		"  | inner_2/",
		"  |   | deepest/",
		"  |   |   | innest: Err!",
	}, formattingReport().ChildByPath("nested").Lines())
}

func TestReport_Lines_ShallowFailureBeforeDeepFailure(t *testing.T) {
	r := NewReport("root")
	r.ChildByPath("zz_deep.inner.leaf").SetStatus(StatusFail)
	r.ChildByPath("aa_deep.leaf").SetStatus(StatusFail)
	r.ChildByPath("mm_leaf").SetStatus(StatusFail)

	assert.Equal(t, []string{
		"root/",
		"  | mm_leaf: Err!",
		"  | aa_deep/",
		"  |   | leaf: Err!",
		"  | zz_deep/",
		"  |   | inner/",
		"  |   |   | leaf: Err!",
	}, r.Lines())
}

func TestReport_Lines_EqualBranchesSortByName(t *testing.T) {
	r := NewReport("root")
	r.ChildByPath("b.x").SetStatus(StatusPending)
	r.ChildByPath("a.x").SetStatus(StatusFail)

	assert.Equal(t, []string{
		"root/",
		"  | a/",
		"  |   | x: Err!",
		"  | b/",
		"  |   | x: ...",
	}, r.Lines())
}

func TestReport_Lines_DoesNotMutateOrder(t *testing.T) {
	r := formattingReport().ChildByPath("complex")
	_ = r.Lines()
	names := make([]string, 0, len(r.Children()))
	for _, child := range r.Children() {
		names = append(names, child.Name)
	}
	assert.Equal(t, []string{"sub_2", "sub_3", "sub_1"}, names)
}

func TestReport_Walk_VisitsLeavesWithPaths(t *testing.T) {
	var paths []string
	formattingReport().ChildByPath("nested").Walk(func(path string, _ *Report) {
		paths = append(paths, path)
	})
	assert.Equal(t, []string{
		"inner_1.sub_2", "inner_1.sub_1", "inner_1.sub_3",
		"inner_2.deepest.innest",
		"inner_3.sub_1", "inner_3.sub_2",
	}, paths)
}

func TestReport_String(t *testing.T) {
	r := NewReport("complex").
		AddChild(NewReport("b").SetStatus(StatusFail)).
		AddChild(NewReport("a").SetStatus(StatusPass))
	assert.Equal(t, "complex/\n  | a: Ok.\n  | b: Err!", r.String())
}
