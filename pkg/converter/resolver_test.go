package converter

import (
	"testing"

	"github.com/hansbonini/dialoguetools/pkg/database"
	"github.com/hansbonini/dialoguetools/pkg/project"
)

func TestResolver_RegisterPinFirstWins(t *testing.T) {
	r := newResolver(&recorder{})
	first := &database.DialogueEntry{ID: 1, ConversationID: 1}
	second := &database.DialogueEntry{ID: 2, ConversationID: 1}
	pin := &project.Pin{ID: "p1", Semantic: project.SemanticInput}

	r.registerPin(pin, first)
	r.registerPin(pin, second)

	if got := r.entriesByPin["p1"]; got != first {
		t.Errorf("entriesByPin[p1] = entry %d, want entry %d", got.ID, first.ID)
	}
	if got := first.Fields.LookupValue(FieldInputID); got != "p1" {
		t.Errorf("first InputId = %q, want %q", got, "p1")
	}
	if second.Fields.Lookup(FieldInputID) != nil {
		t.Error("second registration wrote an InputId field")
	}
}

func TestResolver_ResolveConnections(t *testing.T) {
	tests := []struct {
		name            string
		sourceConv      int
		targetConv      int
		sameEntry       bool
		wantCreated     int
		wantConnector   bool
		wantTargetInUse bool
	}{
		{"same conversation", 1, 1, false, 1, false, true},
		{"cross conversation", 1, 2, false, 1, true, true},
		{"source and target on one entry", 1, 1, true, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver(&recorder{})
			source := &database.DialogueEntry{ID: 1, ConversationID: tt.sourceConv}
			target := &database.DialogueEntry{ID: 2, ConversationID: tt.targetConv}
			if tt.sameEntry {
				target = source
			}
			r.registerPin(&project.Pin{ID: "out", Semantic: project.SemanticOutput}, source)
			r.registerPin(&project.Pin{ID: "in", Semantic: project.SemanticInput}, target)
			r.markUnused(target)

			created := r.resolveConnections([]*project.Connection{{
				ID:     "k1",
				Source: project.ConnectionRef{IDRef: "a", PinRef: "out"},
				Target: project.ConnectionRef{IDRef: "b", PinRef: "in"},
			}})
			if created != tt.wantCreated {
				t.Errorf("resolveConnections() = %d, want %d", created, tt.wantCreated)
			}
			if len(source.OutgoingLinks) != tt.wantCreated {
				t.Fatalf("len(OutgoingLinks) = %d, want %d", len(source.OutgoingLinks), tt.wantCreated)
			}
			if tt.wantCreated > 0 && source.OutgoingLinks[0].IsConnector != tt.wantConnector {
				t.Errorf("IsConnector = %v, want %v", source.OutgoingLinks[0].IsConnector, tt.wantConnector)
			}
			if inUse := len(r.unused) == 0; inUse != tt.wantTargetInUse {
				t.Errorf("target marked used = %v, want %v", inUse, tt.wantTargetInUse)
			}
		})
	}
}
