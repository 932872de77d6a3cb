package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGrantID(t *testing.T) {
	valid := []string{"abc-1234", "GRANT_42", "a", "0-_"}
	for _, id := range valid {
		assert.NoError(t, ValidateGrantID(id), "expected %q to be valid", id)
	}

	invalid := []string{"", "abc 123", "grant/1", "grant.1", "Zeevi, Gil", "naïve"}
	for _, id := range invalid {
		require.ErrorIs(t, ValidateGrantID(id), ErrInvalidGrantID, "expected %q to be invalid", id)
	}
}

func TestValidateResearcherID(t *testing.T) {
	valid := []string{"Zeevi, Gil", "O'Brien", "Smith-Jones", "researcher42", "a b c"}
	for _, id := range valid {
		assert.NoError(t, ValidateResearcherID(id), "expected %q to be valid", id)
	}

	invalid := []string{"", "a.b", "x/y", "tab\tseparated", "semi;colon"}
	for _, id := range invalid {
		require.ErrorIs(t, ValidateResearcherID(id), ErrInvalidResearcherID, "expected %q to be invalid", id)
	}
}

func TestValidateAction(t *testing.T) {
	assert.NoError(t, ValidateAction("like"))
	assert.NoError(t, ValidateAction("dislike"))

	for _, a := range []string{"", "LIKE", "upvote", "liked"} {
		require.ErrorIs(t, ValidateAction(a), ErrInvalidAction, "expected %q to be invalid", a)
	}
}
