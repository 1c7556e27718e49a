package users

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestApplyPatch(t *testing.T) {
	base := UpdateUserRequest{FirstName: "Ann", LastName: "Smith"}

	t.Run("replace single field", func(t *testing.T) {
		patched, violations := ApplyPatch(base, []PatchOperation{
			{Op: "replace", Path: "/firstName", Value: rawJSON(t, "Bob")},
		})

		require.Empty(t, violations)
		assert.Equal(t, "Bob", patched.FirstName)
		assert.Equal(t, "Smith", patched.LastName)
	})

	t.Run("input representation is not mutated", func(t *testing.T) {
		_, violations := ApplyPatch(base, []PatchOperation{
			{Op: "replace", Path: "/firstName", Value: rawJSON(t, "Bob")},
		})

		require.Empty(t, violations)
		assert.Equal(t, "Ann", base.FirstName)
	})

	t.Run("operations apply in sequence", func(t *testing.T) {
		patched, violations := ApplyPatch(base, []PatchOperation{
			{Op: "replace", Path: "/firstName", Value: rawJSON(t, "Bob")},
			{Op: "replace", Path: "/firstName", Value: rawJSON(t, "Carol")},
		})

		require.Empty(t, violations)
		assert.Equal(t, "Carol", patched.FirstName)
	})

	t.Run("passing test operation", func(t *testing.T) {
		patched, violations := ApplyPatch(base, []PatchOperation{
			{Op: "test", Path: "/firstName", Value: rawJSON(t, "Ann")},
			{Op: "replace", Path: "/lastName", Value: rawJSON(t, "Jones")},
		})

		require.Empty(t, violations)
		assert.Equal(t, "Jones", patched.LastName)
	})

	t.Run("failing test operation is a violation", func(t *testing.T) {
		_, violations := ApplyPatch(base, []PatchOperation{
			{Op: "test", Path: "/firstName", Value: rawJSON(t, "Zoe")},
		})

		assert.Len(t, violations, 1)
	})

	t.Run("unknown path is a violation", func(t *testing.T) {
		_, violations := ApplyPatch(base, []PatchOperation{
			{Op: "replace", Path: "/nickname", Value: rawJSON(t, "Annie")},
		})

		assert.Len(t, violations, 1)
	})

	t.Run("violations accumulate across operations", func(t *testing.T) {
		patched, violations := ApplyPatch(base, []PatchOperation{
			{Op: "replace", Path: "/nickname", Value: rawJSON(t, "x")},
			{Op: "frobnicate", Path: "/firstName"},
			{Op: "replace", Path: "/firstName", Value: rawJSON(t, "Bob")},
		})

		assert.Len(t, violations, 2)
		// the valid operation still applied to the working copy
		assert.Equal(t, "Bob", patched.FirstName)
	})

	t.Run("move between known fields", func(t *testing.T) {
		patched, violations := ApplyPatch(base, []PatchOperation{
			{Op: "move", From: "/firstName", Path: "/lastName"},
		})

		require.Empty(t, violations)
		assert.Equal(t, "Ann", patched.LastName)
		assert.Empty(t, patched.FirstName)
	})

	t.Run("copy between known fields", func(t *testing.T) {
		patched, violations := ApplyPatch(base, []PatchOperation{
			{Op: "copy", From: "/lastName", Path: "/firstName"},
		})

		require.Empty(t, violations)
		assert.Equal(t, "Smith", patched.FirstName)
		assert.Equal(t, "Smith", patched.LastName)
	})
}
