package converter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodePrefs(t *testing.T) {
	doc := `
flow_fragment_mode: nestedconversationgroups
stage_directions_mode: Sideways
recursion_mode: off
split_text_on_pipes: true
other_script_fields: "OnEnter; OnExit;"
conversion_settings:
  - {id: e1, include: true, category: player}
  - {id: e2, include: false}
em_vars:
  - {color: Style.color, bold: Style.bold}
`
	prefs, err := DecodePrefs(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodePrefs() failed: %v", err)
	}

	if prefs.FlowFragmentMode != FlowFragmentNestedConversationGroups {
		t.Errorf("FlowFragmentMode = %q, want %q", prefs.FlowFragmentMode, FlowFragmentNestedConversationGroups)
	}
	if prefs.StageDirectionsMode != StageDirectionsSequences {
		t.Errorf("unknown StageDirectionsMode = %q, want fallback %q", prefs.StageDirectionsMode, StageDirectionsSequences)
	}
	if prefs.RecursionMode != RecursionOff {
		t.Errorf("RecursionMode = %q, want %q", prefs.RecursionMode, RecursionOff)
	}
	if !prefs.SplitTextOnPipes || !prefs.UseDefaultActors || !prefs.ImportDocuments {
		t.Errorf("booleans = %v/%v/%v, want the explicit value and the defaults", prefs.SplitTextOnPipes, prefs.UseDefaultActors, prefs.ImportDocuments)
	}
	if prefs.VoiceOverProperty != "VoiceOverAsset" {
		t.Errorf("VoiceOverProperty = %q, want the default", prefs.VoiceOverProperty)
	}

	want := map[string]bool{"OnEnter": true, "OnExit": true}
	if diff := cmp.Diff(want, prefs.OtherScriptFieldTitles()); diff != "" {
		t.Errorf("OtherScriptFieldTitles() mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		id           string
		wantInclude  bool
		wantCategory EntityCategory
	}{
		{"e1", true, CategoryPlayer},
		{"e2", false, CategoryNPC},
		{"unlisted", true, CategoryNPC},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := prefs.ConversionSettings.Lookup(tt.id)
			if got.Include != tt.wantInclude || got.Category != tt.wantCategory {
				t.Errorf("Lookup(%q) = %+v, want include=%v category=%s", tt.id, got, tt.wantInclude, tt.wantCategory)
			}
		})
	}

	if diff := cmp.Diff([]EmVars{{Color: "Style.color", Bold: "Style.bold"}}, prefs.EmVars); diff != "" {
		t.Errorf("EmVars mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePrefs_Empty(t *testing.T) {
	prefs, err := DecodePrefs(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodePrefs(empty) failed: %v", err)
	}
	if diff := cmp.Diff(DefaultPrefs(), prefs); diff != "" {
		t.Errorf("DecodePrefs(empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPrefs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.yaml")
	if err := os.WriteFile(path, []byte("convert_slots_as: TechnicalName\n"), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	prefs, err := LoadPrefs(path)
	if err != nil {
		t.Fatalf("LoadPrefs() failed: %v", err)
	}
	if prefs.ConvertSlotsAs != ConvertSlotsTechnicalName {
		t.Errorf("ConvertSlotsAs = %q, want %q", prefs.ConvertSlotsAs, ConvertSlotsTechnicalName)
	}

	if _, err := LoadPrefs(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadPrefs(missing) succeeded, want an error")
	}
	if _, err := DecodePrefs(strings.NewReader("recursion_mode: [")); err == nil {
		t.Error("DecodePrefs(invalid) succeeded, want an error")
	}
}
