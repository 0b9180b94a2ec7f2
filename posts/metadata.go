package posts

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// revisionSnapshotSchema validates the persisted JSON payload for revision
// history before it is written. Metadata stays open-ended so hosts can attach
// arbitrary editorial annotations.
const revisionSnapshotSchema = `{
	"type": "object",
	"required": ["title", "body"],
	"properties": {
		"title": {"type": "string"},
		"body": {"type": "string"},
		"metadata": {
			"type": "object",
			"additionalProperties": true
		}
	}
}`

var snapshotSchema = jsonschema.MustCompileString("publisher://posts/revision_snapshot.json", revisionSnapshotSchema)

// ValidateSnapshot checks a revision snapshot against the embedded schema.
func ValidateSnapshot(snapshot RevisionSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotInvalid, err)
	}

	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotInvalid, err)
	}

	if err := snapshotSchema.Validate(decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotInvalid, err)
	}
	return nil
}

// ValidateMetadata ensures supplied metadata survives a JSON round trip so it
// can live in the jsonb column and inside revision snapshots.
func ValidateMetadata(metadata map[string]any) error {
	if len(metadata) == 0 {
		return nil
	}
	if _, err := json.Marshal(metadata); err != nil {
		return fmt.Errorf("%w: %v", ErrMetadataInvalid, err)
	}
	return nil
}
