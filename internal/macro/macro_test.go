package macro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	t.Run("no value", func(t *testing.T) {
		assert.Equal(t, "foo", Name("foo"))
	})

	t.Run("with value", func(t *testing.T) {
		assert.Equal(t, "foo", Name("foo=bar"))
	})

	t.Run("value containing equals", func(t *testing.T) {
		// only the first '=' separates name from value
		assert.Equal(t, "N", Name("N=a=b"))
	})

	t.Run("empty definition", func(t *testing.T) {
		assert.Equal(t, "", Name(""))
	})
}

func TestDefinitions_NewEmpty(t *testing.T) {
	defs := NewDefinitions()
	assert.Empty(t, defs.List())
}

func TestDefinitions_AddNew(t *testing.T) {
	defs := NewDefinitions()

	previous, existed := defs.Add("foo=bar")
	assert.False(t, existed)
	assert.Equal(t, "", previous)
	assert.Equal(t, []string{"foo=bar"}, defs.List())
}

func TestDefinitions_AddOverwrite(t *testing.T) {
	defs := NewDefinitions()
	defs.Add("foo=bar")

	previous, existed := defs.Add("foo")
	assert.True(t, existed)
	assert.Equal(t, "foo=bar", previous)
	assert.Equal(t, []string{"foo"}, defs.List())
}

func TestDefinitions_AddIdenticalStillReportsPrevious(t *testing.T) {
	defs := NewDefinitions()
	defs.Add("X=1")

	// an identical re-add still reports the previous value; callers use
	// that to decide whether two sources actually conflict
	previous, existed := defs.Add("X=1")
	assert.True(t, existed)
	assert.Equal(t, "X=1", previous)
	assert.Equal(t, []string{"X=1"}, defs.List())
}

func TestDefinitions_RemoveMissing(t *testing.T) {
	defs := NewDefinitions()
	defs.Add("other=1")

	removed, existed := defs.Remove("foo")
	assert.False(t, existed)
	assert.Equal(t, "", removed)
	assert.Equal(t, []string{"other=1"}, defs.List())
}

func TestDefinitions_RemoveExisting(t *testing.T) {
	defs := NewDefinitions()
	defs.Add("foo=bar")

	removed, existed := defs.Remove("foo")
	assert.True(t, existed)
	assert.Equal(t, "foo=bar", removed)
	assert.Empty(t, defs.List())
}

func TestDefinitions_RemoveByNameNotDefinition(t *testing.T) {
	defs := NewDefinitions()
	defs.Add("DEBUG=1")

	// Remove takes a name, not a full definition
	_, existed := defs.Remove("DEBUG=1")
	assert.False(t, existed)

	removed, existed := defs.Remove("DEBUG")
	require.True(t, existed)
	assert.Equal(t, "DEBUG=1", removed)
}

func TestDefinitions_ListSortedByFullString(t *testing.T) {
	defs := NewDefinitions()
	defs.Add("a=1")
	defs.Add("c=2")
	defs.Add("b=3")

	assert.Equal(t, []string{"a=1", "b=3", "c=2"}, defs.List())
}

func TestDefinitions_ListIdempotent(t *testing.T) {
	defs := NewDefinitions()
	defs.Add("B")
	defs.Add("A=2")

	first := defs.List()
	second := defs.List()
	assert.Equal(t, first, second)
}
