package docdiff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotexlint/pkg/docdiff"
)

func numbered(n int, replace map[int]string) []byte {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if text, ok := replace[i]; ok {
			b.WriteString(text)
		} else {
			b.WriteString("line ")
			b.WriteByte(byte('0' + i/10))
			b.WriteByte(byte('0' + i%10))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func TestCompute_Equal(t *testing.T) {
	t.Parallel()

	assert.Nil(t, docdiff.Compute("a.json", []byte("x\n"), []byte("x\n")))
	assert.Nil(t, docdiff.Compute("a.json", nil, nil))
	assert.Empty(t, (*docdiff.Diff)(nil).String())
}

func TestCompute_SingleChange(t *testing.T) {
	t.Parallel()

	diff := docdiff.Compute("doc.json", numbered(10, nil), numbered(10, map[int]string{5: "changed"}))
	require.NotNil(t, diff)
	assert.Equal(t, 1, diff.Additions)
	assert.Equal(t, 1, diff.Deletions)
	require.Len(t, diff.Hunks, 1)

	want := `--- a/doc.json
+++ b/doc.json
@@ -2,7 +2,7 @@
 line 02
 line 03
 line 04
-line 05
+changed
 line 06
 line 07
 line 08
`
	assert.Equal(t, want, diff.String())
}

func TestCompute_NewFile(t *testing.T) {
	t.Parallel()

	diff := docdiff.Compute("/tmp/new.json", nil, []byte("[\n]\n"))
	require.NotNil(t, diff)
	assert.Equal(t, "--- a/tmp/new.json\n+++ b/tmp/new.json\n@@ -0,0 +1,2 @@\n+[\n+]\n", diff.String())
}

func TestCompute_SeparateHunks(t *testing.T) {
	t.Parallel()

	before := numbered(30, nil)
	after := numbered(30, map[int]string{2: "first", 28: "second"})

	diff := docdiff.Compute("doc.json", before, after)
	require.NotNil(t, diff)
	require.Len(t, diff.Hunks, 2)

	assert.Equal(t, 1, diff.Hunks[0].OldStart)
	assert.Equal(t, 5, diff.Hunks[0].OldLines)
	assert.Equal(t, 25, diff.Hunks[1].OldStart)
	assert.Equal(t, 6, diff.Hunks[1].OldLines)
}

func TestCompute_NearbyChangesMerge(t *testing.T) {
	t.Parallel()

	diff := docdiff.Compute("doc.json", numbered(20, nil), numbered(20, map[int]string{5: "a", 10: "b"}))
	require.NotNil(t, diff)
	require.Len(t, diff.Hunks, 1)
	assert.Equal(t, 2, diff.Hunks[0].OldStart)
	assert.Equal(t, 12, diff.Hunks[0].OldLines)
	assert.Equal(t, 2, diff.Additions)
}

func TestCompute_InsertAndDelete(t *testing.T) {
	t.Parallel()

	diff := docdiff.Compute("doc.json", []byte("a\nb\nc\n"), []byte("a\nc\nd\n"))
	require.NotNil(t, diff)
	assert.Equal(t, "--- a/doc.json\n+++ b/doc.json\n@@ -1,3 +1,3 @@\n a\n-b\n c\n+d\n", diff.String())
}
