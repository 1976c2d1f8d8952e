package converter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hansbonini/dialoguetools/pkg/database"
	"github.com/hansbonini/dialoguetools/pkg/project"
)

const tavernProject = `
entities:
  - {id: e1, technical_name: barkeep, display_name: Barkeep}
  - {id: e2, technical_name: guest, display_name: Guest}
variable_sets:
  - id: vs1
    technical_name: Tavern
    variables:
      - {technical_name: drinks, default_value: "0", data_type: Integer}
dialogues:
  - id: d1
    display_name: Tavern
    references: [e1]
    features:
      - properties:
          - fields:
              - {title: Sequence, value: "Camera(Wide)"}
              - {title: ContinueButton, value: always}
              - {title: SubtitleCharsPerSecond, value: "30"}
              - {title: Mood, value: calm}
dialogue_fragments:
  - id: f1
    display_name: Order
    text: "Another {font-size:12pt;}round?\\nSure."
    menu_text: {"": Another, fr: Encore}
    stage_directions: "AnimatorPlay(Pour)"
    speaker_id_ref: e2
    features:
      - properties:
          - fields:
              - {title: ConversantEntity, value: barkeep}
              - {title: Script, value: "Tavern.drinks++"}
              - {title: Entry_1_State, value: active}
instructions:
  - id: i1
    expression: "Tavern.drinks += 2"
    position: {x: 5, y: 40}
    pins:
      - {id: i1in, semantic: Input, expression: "Tavern.drinks < 10"}
hierarchy:
  id: d1
  type: Dialogue
  nodes:
    - {id: f1, type: DialogueFragment}
    - {id: i1, type: Instruction}
    - {id: ghost, type: Hub}
`

func TestConvert_DialogueFragmentFields(t *testing.T) {
	prefs := DefaultPrefs()
	prefs.ConvertSlotsAs = ConvertSlotsTechnicalName
	db, diag := convert(t, tavernProject, prefs)

	conversation := db.Conversations[0]
	if conversation.ActorID != 1 || conversation.ConversantID != 2 {
		t.Errorf("participants = %d/%d, want 1/2", conversation.ActorID, conversation.ConversantID)
	}
	if got := conversation.Fields.LookupValue("Mood"); got != "calm" {
		t.Errorf("Mood = %q, want %q", got, "calm")
	}
	if conversation.Fields.Lookup("ContinueButton") != nil {
		t.Error("override setting was copied as a field")
	}
	settings := conversation.OverrideSettings
	if !settings.UseOverrides || !settings.OverrideSubtitleSettings ||
		settings.ContinueButton != "Always" || settings.SubtitleCharsPerSecond != 30 {
		t.Errorf("OverrideSettings = %+v", settings)
	}

	start := conversation.FirstEntry()
	if !start.IsRoot || start.Sequence() != "Camera(Wide)" {
		t.Errorf("START IsRoot=%v Sequence=%q, want root with moved sequence", start.IsRoot, start.Sequence())
	}
	if conversation.Fields.Lookup(database.FieldSequence) != nil {
		t.Error("Sequence stayed on the conversation")
	}

	order := conversation.EntryByTitle("Order")
	if order == nil {
		t.Fatal("Order entry missing")
	}
	if got, want := order.DialogueText(), "Another round?\nSure."; got != want {
		t.Errorf("DialogueText() = %q, want %q", got, want)
	}
	if got := order.Fields.LookupValue("Menu Text fr"); got != "Encore" {
		t.Errorf("Menu Text fr = %q, want %q", got, "Encore")
	}
	if got := order.Sequence(); got != "AnimatorPlay(Pour)" {
		t.Errorf("Sequence() = %q, want %q", got, "AnimatorPlay(Pour)")
	}
	if got, want := order.UserScript, `Variable["Tavern.drinks"] = Variable["Tavern.drinks"] + 1`; got != want {
		t.Errorf("UserScript = %q, want %q", got, want)
	}
	if order.Fields.Lookup(FieldScript) != nil {
		t.Error("Script field was not moved")
	}
	if order.Fields.Lookup("Entry 1 State") == nil {
		t.Error("Entry_1_State was not renamed")
	}
	if order.ActorID != 2 || order.ConversantID != 1 {
		t.Errorf("Order participants = %d/%d, want 2/1", order.ActorID, order.ConversantID)
	}

	instruction := conversation.EntryByTitle("Tavern.drinks += 2")
	if instruction == nil {
		t.Fatal("instruction entry missing")
	}
	if instruction.IsGroup || instruction.Sequence() != database.SequencerContinue {
		t.Errorf("instruction IsGroup=%v Sequence=%q", instruction.IsGroup, instruction.Sequence())
	}
	if got, want := instruction.UserScript, `Variable["Tavern.drinks"] = Variable["Tavern.drinks"] + 2`; got != want {
		t.Errorf("instruction UserScript = %q, want %q", got, want)
	}
	if got, want := instruction.ConditionsString, `Variable["Tavern.drinks"] < 10`; got != want {
		t.Errorf("instruction Conditions = %q, want %q", got, want)
	}

	if !diag.hasWarning("Hub node ghost") {
		t.Errorf("warnings = %v, want one about the missing hub", diag.warnings)
	}
}

func TestConvert_StageDirectionModes(t *testing.T) {
	tests := []struct {
		mode            StageDirectionsMode
		wantSequence    string
		wantDescription string
	}{
		{StageDirectionsSequences, "AnimatorPlay(Pour)", ""},
		{StageDirectionsDescription, "", "AnimatorPlay(Pour)"},
		{StageDirectionsNothing, "", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			prefs := DefaultPrefs()
			prefs.StageDirectionsMode = tt.mode
			db, _ := convert(t, tavernProject, prefs)
			order := db.Conversations[0].EntryByTitle("Order")
			if got := order.Sequence(); got != tt.wantSequence {
				t.Errorf("Sequence() = %q, want %q", got, tt.wantSequence)
			}
			if got := order.Fields.LookupValue(database.FieldDescription); got != tt.wantDescription {
				t.Errorf("Description = %q, want %q", got, tt.wantDescription)
			}
		})
	}
}

func TestConvert_NoDefaultActors(t *testing.T) {
	prefs := DefaultPrefs()
	prefs.UseDefaultActors = false
	db, _ := convert(t, tavernProject, prefs)

	conversation := db.Conversations[0]
	if conversation.ConversantID != -1 {
		t.Errorf("ConversantID = %d, want -1", conversation.ConversantID)
	}
	order := conversation.EntryByTitle("Order")
	if order.ConversantID != 0 {
		t.Errorf("Order ConversantID = %d, want 0 when the slot names no actor id", order.ConversantID)
	}
}

func TestApplyOverrideSettings(t *testing.T) {
	features := project.Features{{Properties: []project.Property{{Fields: []project.Field{
		{Title: "DefaultSequence", Value: "Delay(1)"},
		{Title: "ResponseTimeout", Value: "2.5"},
		{Title: "AlwaysForceResponseMenu", Value: "True"},
		{Title: "Unrelated", Value: "x"},
	}}}}}
	var settings database.ConversationOverrideSettings
	consumed := applyOverrideSettings(&settings, features)

	want := database.ConversationOverrideSettings{
		UseOverrides:             true,
		OverrideSequenceSettings: true,
		DefaultSequence:          "Delay(1)",
		OverrideInputSettings:    true,
		AlwaysForceResponseMenu:  true,
		ResponseTimeout:          2.5,
	}
	if diff := cmp.Diff(want, settings); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
	wantConsumed := map[string]bool{"DefaultSequence": true, "ResponseTimeout": true, "AlwaysForceResponseMenu": true}
	if diff := cmp.Diff(wantConsumed, consumed); diff != "" {
		t.Errorf("consumed mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertSpecialTechnicalName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Success_Description", "Success Description"},
		{"Entry_2_Description", "Entry 2 Description"},
		{"Entry_Count", "Entry Count"},
		{"My_Field", "My_Field"},
		{"Entry_X", "Entry_X"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertSpecialTechnicalName(tt.name); got != tt.want {
				t.Errorf("convertSpecialTechnicalName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
