package users

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// PatchOperation is one instruction in a partial-update request, following
// the JSON Patch operation shape (RFC 6902).
type PatchOperation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
	From  string          `json:"from,omitempty"`
}

// ApplyPatch applies the operations to a copy of the representation, one at a
// time. Structural failures (unknown path, bad operation, failed test) are
// collected as violations instead of aborting, so the caller sees every
// problem at once. The input representation is never mutated; the mutated
// copy is only meaningful when no violations are reported.
func ApplyPatch(rep UpdateUserRequest, ops []PatchOperation) (UpdateUserRequest, []string) {
	var violations []string

	doc, err := json.Marshal(rep)
	if err != nil {
		return rep, []string{fmt.Sprintf("cannot encode representation: %v", err)}
	}

	for i, op := range ops {
		raw, err := json.Marshal([]PatchOperation{op})
		if err != nil {
			violations = append(violations, fmt.Sprintf("operation %d: cannot encode: %v", i, err))
			continue
		}
		patch, err := jsonpatch.DecodePatch(raw)
		if err != nil {
			violations = append(violations, fmt.Sprintf("operation %d: %v", i, err))
			continue
		}
		patched, err := patch.Apply(doc)
		if err != nil {
			violations = append(violations, fmt.Sprintf("operation %d (%s %s): %v", i, op.Op, op.Path, err))
			continue
		}
		doc = patched
	}

	var result UpdateUserRequest
	if err := json.Unmarshal(doc, &result); err != nil {
		violations = append(violations, fmt.Sprintf("patched representation has wrong shape: %v", err))
		return rep, violations
	}
	return result, violations
}
