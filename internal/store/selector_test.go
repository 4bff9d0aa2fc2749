package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelector(t *testing.T) {
	t.Parallel()

	valid := map[string]Selector{
		"":   SelectAll,
		"0":  SelectAll,
		"1":  SelectMoviesByActor,
		"2":  SelectCharactersByActor,
		"7":  SelectSharedTitles,
		"07": SelectSharedTitles,
	}
	for arg, want := range valid {
		got, err := ParseSelector(arg)
		require.NoError(t, err, arg)
		assert.Equal(t, want, got, arg)
	}

	for _, arg := range []string{"-1", "8", "42", "abc", "1.5", " 1", "+1"} {
		_, err := ParseSelector(arg)
		assert.ErrorIs(t, err, ErrInvalidSelector, arg)
	}
}

func TestSelector_Validate(t *testing.T) {
	t.Parallel()

	for _, sel := range []Selector{0, 1, 7} {
		assert.NoError(t, sel.Validate(), sel.String())
	}
	for _, sel := range []Selector{-1, 8} {
		assert.ErrorIs(t, sel.Validate(), ErrInvalidSelector)
	}
	assert.Equal(t, "selector(8)", Selector(8).String())
	assert.Equal(t, "shared titles", SelectSharedTitles.String())
}

func TestCatalog_Order(t *testing.T) {
	t.Parallel()

	sels := Catalog()
	require.Len(t, sels, 7)
	for i, sel := range sels {
		assert.Equal(t, Selector(i+1), sel)
	}
}

func TestResult_Status(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusRows, Result{Items: []string{"x"}}.Status())
	assert.Equal(t, StatusEmpty, Result{Items: []string{}}.Status())
	assert.Equal(t, StatusEmpty, Result{}.Status())
	assert.Equal(t, StatusFailed, Result{Items: []string{"x"}, Err: ErrQuery}.Status())
	assert.Equal(t, "failed", StatusFailed.String())
}
