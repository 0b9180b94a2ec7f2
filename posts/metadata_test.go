package posts

import (
	"errors"
	"testing"
)

func TestValidateSnapshot(t *testing.T) {
	snapshot := RevisionSnapshot{
		Title: "Lunch",
		Body:  "I ate a salad for lunch today",
		Metadata: map[string]any{
			"tags": []string{"food"},
		},
	}
	if err := ValidateSnapshot(snapshot); err != nil {
		t.Fatalf("expected valid snapshot, got %v", err)
	}
}

func TestValidateSnapshot_RejectsUnserializableMetadata(t *testing.T) {
	snapshot := RevisionSnapshot{
		Title: "Lunch",
		Body:  "salad",
		Metadata: map[string]any{
			"fn": func() {},
		},
	}
	err := ValidateSnapshot(snapshot)
	if !errors.Is(err, ErrSnapshotInvalid) {
		t.Fatalf("expected ErrSnapshotInvalid, got %v", err)
	}
}

func TestValidateMetadata(t *testing.T) {
	if err := ValidateMetadata(nil); err != nil {
		t.Fatalf("nil metadata should validate, got %v", err)
	}
	if err := ValidateMetadata(map[string]any{"author": "casey"}); err != nil {
		t.Fatalf("plain metadata should validate, got %v", err)
	}

	err := ValidateMetadata(map[string]any{"ch": make(chan int)})
	if !errors.Is(err, ErrMetadataInvalid) {
		t.Fatalf("expected ErrMetadataInvalid, got %v", err)
	}
}
