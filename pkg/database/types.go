package database

import "strings"

// Standard field titles.
const (
	FieldTitle         = "Title"
	FieldName          = "Name"
	FieldDisplayName   = "Display Name"
	FieldDescription   = "Description"
	FieldDialogueText  = "Dialogue Text"
	FieldMenuText      = "Menu Text"
	FieldSequence      = "Sequence"
	FieldAudioFiles    = "Audio Files"
	FieldPictures      = "Pictures"
	FieldIsPlayer      = "IsPlayer"
	FieldIsItem        = "Is Item"
	FieldInitialValue  = "Initial Value"
	FieldVoiceOverFile = "VoiceOverFile"
)

// Sequencer keywords used when splitting entries.
const (
	SequencerEnd              = "{{end}}"
	SequencerDelayEnd         = "Delay({{end}})"
	SequencerContinue         = "Continue()"
	FalseConditionBlock       = "Block"
	FalseConditionPassthrough = "Passthrough"
)

// Default canvas size of an entry node.
const (
	CanvasRectWidth  = 160
	CanvasRectHeight = 30
)

// Rect is an entry's canvas rectangle.
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// NewCanvasRect returns a default-sized rectangle at (x, y).
func NewCanvasRect(x, y float64) Rect {
	return Rect{X: x, Y: y, Width: CanvasRectWidth, Height: CanvasRectHeight}
}

// Asset is the common shape of actors, items and locations.
type Asset struct {
	ID     int    `yaml:"id"`
	Fields Fields `yaml:"fields"`
}

// Name returns the Name field.
func (a *Asset) Name() string {
	return a.Fields.LookupValue(FieldName)
}

// Actor is a conversation participant.
type Actor struct {
	Asset `yaml:",inline"`
}

// IsPlayer reports whether the actor is controlled by the player.
func (a *Actor) IsPlayer() bool {
	return a.Fields.LookupBool(FieldIsPlayer)
}

// Item is an item or quest.
type Item struct {
	Asset `yaml:",inline"`
}

// IsItem reports whether the item is a plain item rather than a quest.
func (i *Item) IsItem() bool {
	return i.Fields.LookupBool(FieldIsItem)
}

// Location is a place.
type Location struct {
	Asset `yaml:",inline"`
}

// Variable is a global Lua variable.
type Variable struct {
	Asset `yaml:",inline"`
}

// InitialValue returns the variable's initial value.
func (v *Variable) InitialValue() string {
	return v.Fields.LookupValue(FieldInitialValue)
}

// Type returns the type of the initial value field.
func (v *Variable) Type() FieldType {
	if field := v.Fields.Lookup(FieldInitialValue); field != nil {
		return field.Type
	}
	return FieldTypeText
}

// SetType sets the type of the initial value field.
func (v *Variable) SetType(fieldType FieldType) {
	v.Fields.Set(FieldInitialValue, v.InitialValue(), fieldType)
}

// Link is a directed edge between two entries.
type Link struct {
	OriginConversationID      int      `yaml:"origin_conversation_id"`
	OriginDialogueID          int      `yaml:"origin_dialogue_id"`
	DestinationConversationID int      `yaml:"destination_conversation_id"`
	DestinationDialogueID     int      `yaml:"destination_dialogue_id"`
	IsConnector               bool     `yaml:"is_connector,omitempty"`
	Priority                  Priority `yaml:"priority"`
}

// NewLink links origin to destination. The link is a connector when the two
// entries live in different conversations.
func NewLink(origin, destination *DialogueEntry, priority Priority) *Link {
	return &Link{
		OriginConversationID:      origin.ConversationID,
		OriginDialogueID:          origin.ID,
		DestinationConversationID: destination.ConversationID,
		DestinationDialogueID:     destination.ID,
		IsConnector:               origin.ConversationID != destination.ConversationID,
		Priority:                  priority,
	}
}

// DialogueEntry is one node of a conversation graph.
type DialogueEntry struct {
	ID                   int      `yaml:"id"`
	ConversationID       int      `yaml:"conversation_id"`
	IsRoot               bool     `yaml:"is_root,omitempty"`
	IsGroup              bool     `yaml:"is_group,omitempty"`
	ActorID              int      `yaml:"actor_id"`
	ConversantID         int      `yaml:"conversant_id"`
	Fields               Fields   `yaml:"fields"`
	ConditionsString     string   `yaml:"conditions,omitempty"`
	UserScript           string   `yaml:"user_script,omitempty"`
	FalseConditionAction string   `yaml:"false_condition_action,omitempty"`
	ConditionPriority    Priority `yaml:"condition_priority"`
	OutgoingLinks        []*Link  `yaml:"outgoing_links,omitempty"`
	Canvas               Rect     `yaml:"canvas"`
}

// Title returns the Title field.
func (e *DialogueEntry) Title() string { return e.Fields.LookupValue(FieldTitle) }

// SetTitle sets the Title field.
func (e *DialogueEntry) SetTitle(title string) { e.Fields.Set(FieldTitle, title, FieldTypeText) }

// DialogueText returns the default-language spoken text.
func (e *DialogueEntry) DialogueText() string { return e.Fields.LookupValue(FieldDialogueText) }

// SetDialogueText sets the default-language spoken text.
func (e *DialogueEntry) SetDialogueText(text string) {
	e.Fields.Set(FieldDialogueText, text, FieldTypeText)
}

// MenuText returns the default-language response menu text.
func (e *DialogueEntry) MenuText() string { return e.Fields.LookupValue(FieldMenuText) }

// SetMenuText sets the default-language response menu text.
func (e *DialogueEntry) SetMenuText(text string) { e.Fields.Set(FieldMenuText, text, FieldTypeText) }

// Sequence returns the sequencer commands.
func (e *DialogueEntry) Sequence() string { return e.Fields.LookupValue(FieldSequence) }

// SetSequence sets the sequencer commands.
func (e *DialogueEntry) SetSequence(sequence string) {
	e.Fields.Set(FieldSequence, sequence, FieldTypeText)
}

// AudioFiles returns the bracketed, semicolon-separated audio file list.
func (e *DialogueEntry) AudioFiles() string { return e.Fields.LookupValue(FieldAudioFiles) }

// SetAudioFiles sets the audio file list.
func (e *DialogueEntry) SetAudioFiles(files string) {
	e.Fields.Set(FieldAudioFiles, files, FieldTypeFiles)
}

// AddLink appends a link to destination.
func (e *DialogueEntry) AddLink(destination *DialogueEntry, priority Priority) *Link {
	link := NewLink(e, destination, priority)
	e.OutgoingLinks = append(e.OutgoingLinks, link)
	return link
}

// ContinueButtonMode controls the continue button during a conversation.
type ContinueButtonMode string

var continueButtonModes = []ContinueButtonMode{
	"Never", "Always", "Optional", "OptionalBeforeResponseMenu", "NotBeforeResponseMenu",
	"OptionalBeforePCAutoresponseOrMenu", "NotBeforePCAutoresponseOrMenu",
	"OptionalForBark", "NotForBark", "OptionalForBarkAndAutoresponse",
}

// ParseContinueButtonMode matches a mode name case-insensitively. Unknown
// names are Never.
func ParseContinueButtonMode(s string) ContinueButtonMode {
	for _, mode := range continueButtonModes {
		if strings.EqualFold(s, string(mode)) {
			return mode
		}
	}
	return continueButtonModes[0]
}

// ConversationOverrideSettings overrides global display and input settings
// for one conversation.
type ConversationOverrideSettings struct {
	UseOverrides bool `yaml:"use_overrides"`

	OverrideSubtitleSettings        bool               `yaml:"override_subtitle_settings,omitempty"`
	ShowNPCSubtitlesDuringLine      bool               `yaml:"show_npc_subtitles_during_line,omitempty"`
	ShowNPCSubtitlesWithResponses   bool               `yaml:"show_npc_subtitles_with_responses,omitempty"`
	ShowPCSubtitlesDuringLine       bool               `yaml:"show_pc_subtitles_during_line,omitempty"`
	SkipPCSubtitleAfterResponseMenu bool               `yaml:"skip_pc_subtitle_after_response_menu,omitempty"`
	SubtitleCharsPerSecond          float64            `yaml:"subtitle_chars_per_second,omitempty"`
	MinSubtitleSeconds              float64            `yaml:"min_subtitle_seconds,omitempty"`
	ContinueButton                  ContinueButtonMode `yaml:"continue_button,omitempty"`

	OverrideSequenceSettings    bool   `yaml:"override_sequence_settings,omitempty"`
	DefaultSequence             string `yaml:"default_sequence,omitempty"`
	DefaultPlayerSequence       string `yaml:"default_player_sequence,omitempty"`
	DefaultResponseMenuSequence string `yaml:"default_response_menu_sequence,omitempty"`

	OverrideInputSettings   bool    `yaml:"override_input_settings,omitempty"`
	AlwaysForceResponseMenu bool    `yaml:"always_force_response_menu,omitempty"`
	IncludeInvalidEntries   bool    `yaml:"include_invalid_entries,omitempty"`
	ResponseTimeout         float64 `yaml:"response_timeout,omitempty"`
}

// EmphasisSetting styles one [em#] text tag.
type EmphasisSetting struct {
	Color     string `yaml:"color"`
	Bold      bool   `yaml:"bold,omitempty"`
	Italic    bool   `yaml:"italic,omitempty"`
	Underline bool   `yaml:"underline,omitempty"`
}

// NumEmphasisSettings is the number of [em#] tags.
const NumEmphasisSettings = 4
