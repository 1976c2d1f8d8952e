package converter

import (
	"io"
	"os"
	"strings"

	"github.com/hansbonini/dialoguetools/pkg/common"
	"gopkg.in/yaml.v3"
)

// FlowFragmentMode selects how flow fragments are converted.
type FlowFragmentMode string

const (
	FlowFragmentNestedConversationGroups FlowFragmentMode = "NestedConversationGroups"
	FlowFragmentConversationGroups       FlowFragmentMode = "ConversationGroups"
	FlowFragmentQuests                   FlowFragmentMode = "Quests"
	FlowFragmentIgnore                   FlowFragmentMode = "Ignore"
)

var flowFragmentModes = []FlowFragmentMode{
	FlowFragmentNestedConversationGroups, FlowFragmentConversationGroups, FlowFragmentQuests, FlowFragmentIgnore,
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *FlowFragmentMode) UnmarshalYAML(value *yaml.Node) error {
	*m = parseEnum(value.Value, "flow_fragment_mode", flowFragmentModes, FlowFragmentConversationGroups)
	return nil
}

// StageDirectionsMode selects what stage directions become.
type StageDirectionsMode string

const (
	StageDirectionsSequences   StageDirectionsMode = "Sequences"
	StageDirectionsNothing     StageDirectionsMode = "Nothing"
	StageDirectionsDescription StageDirectionsMode = "Description"
)

var stageDirectionsModes = []StageDirectionsMode{
	StageDirectionsSequences, StageDirectionsNothing, StageDirectionsDescription,
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *StageDirectionsMode) UnmarshalYAML(value *yaml.Node) error {
	*m = parseEnum(value.Value, "stage_directions_mode", stageDirectionsModes, StageDirectionsSequences)
	return nil
}

// ConvertSlotsMode selects how a ConversantEntity field names its actor.
type ConvertSlotsMode string

const (
	ConvertSlotsID            ConvertSlotsMode = "ID"
	ConvertSlotsTechnicalName ConvertSlotsMode = "TechnicalName"
	ConvertSlotsDisplayName   ConvertSlotsMode = "DisplayName"
)

var convertSlotsModes = []ConvertSlotsMode{ConvertSlotsID, ConvertSlotsTechnicalName, ConvertSlotsDisplayName}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *ConvertSlotsMode) UnmarshalYAML(value *yaml.Node) error {
	*m = parseEnum(value.Value, "convert_slots_as", convertSlotsModes, ConvertSlotsID)
	return nil
}

// RecursionMode controls whether output pins of dialogues and flow
// fragments get their own entries.
type RecursionMode string

const (
	RecursionOff RecursionMode = "Off"
	RecursionOn  RecursionMode = "On"
)

var recursionModes = []RecursionMode{RecursionOff, RecursionOn}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *RecursionMode) UnmarshalYAML(value *yaml.Node) error {
	*m = parseEnum(value.Value, "recursion_mode", recursionModes, RecursionOn)
	return nil
}

// EntityCategory is what an entity becomes.
type EntityCategory string

const (
	CategoryNPC    EntityCategory = "NPC"
	CategoryPlayer EntityCategory = "Player"
	CategoryItem   EntityCategory = "Item"
	CategoryQuest  EntityCategory = "Quest"
)

var entityCategories = []EntityCategory{CategoryNPC, CategoryPlayer, CategoryItem, CategoryQuest}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *EntityCategory) UnmarshalYAML(value *yaml.Node) error {
	*c = parseEnum(value.Value, "category", entityCategories, CategoryNPC)
	return nil
}

func parseEnum[T ~string](s, kind string, known []T, fallback T) T {
	for _, value := range known {
		if strings.EqualFold(s, string(value)) {
			return value
		}
	}
	common.LogWarn(common.WarnUnknownEnumValue, kind, s, fallback)
	return fallback
}

// ConversionSetting overrides the handling of one element, keyed by its id
// (or by full name for variables).
type ConversionSetting struct {
	ID       string         `yaml:"id"`
	Include  bool           `yaml:"include"`
	Category EntityCategory `yaml:"category,omitempty"`
}

// ConversionSettings is the per-element override list.
type ConversionSettings []ConversionSetting

// Lookup returns the setting for id. Elements without a setting are
// included as NPCs.
func (s ConversionSettings) Lookup(id string) ConversionSetting {
	for _, setting := range s {
		if setting.ID == id {
			if setting.Category == "" {
				setting.Category = CategoryNPC
			}
			return setting
		}
	}
	return ConversionSetting{ID: id, Include: true, Category: CategoryNPC}
}

// EmVars names the variables that style one [em#] tag.
type EmVars struct {
	Color     string `yaml:"color,omitempty"`
	Bold      string `yaml:"bold,omitempty"`
	Italic    string `yaml:"italic,omitempty"`
	Underline string `yaml:"underline,omitempty"`
}

// Prefs are the converter settings.
type Prefs struct {
	ConversionSettings ConversionSettings `yaml:"conversion_settings,omitempty"`

	FlowFragmentMode                FlowFragmentMode    `yaml:"flow_fragment_mode"`
	StageDirectionsMode             StageDirectionsMode `yaml:"stage_directions_mode"`
	ConvertSlotsAs                  ConvertSlotsMode    `yaml:"convert_slots_as"`
	RecursionMode                   RecursionMode       `yaml:"recursion_mode"`
	CreateConversationsForLooseFlow bool                `yaml:"create_conversations_for_loose_flow"`
	UseDefaultActors                bool                `yaml:"use_default_actors_if_none_assigned"`

	SplitTextOnPipes          bool `yaml:"split_text_on_pipes"`
	PutEndSequenceOnLastSplit bool `yaml:"put_end_sequence_on_last_split"`
	TrimWhitespaceAroundPipes bool `yaml:"trim_whitespace_around_pipes"`

	VoiceOverProperty  string `yaml:"voice_over_property,omitempty"`
	DocumentsSubmenu   string `yaml:"documents_submenu,omitempty"`
	ImportDocuments    bool   `yaml:"import_documents"`
	FlowFragmentScript string `yaml:"flow_fragment_script,omitempty"`
	OtherScriptFields  string `yaml:"other_script_fields,omitempty"`

	UseTechnicalNames bool `yaml:"use_technical_names"`
	SetDisplayName    bool `yaml:"set_display_name"`
	CustomDisplayName bool `yaml:"custom_display_name"`

	// EmVars styles [em1] to [em4] in order. Extra entries are ignored.
	EmVars []EmVars `yaml:"em_vars,omitempty"`
}

// DefaultPrefs returns the settings used when no prefs file is given.
func DefaultPrefs() *Prefs {
	return &Prefs{
		FlowFragmentMode:          FlowFragmentConversationGroups,
		StageDirectionsMode:       StageDirectionsSequences,
		ConvertSlotsAs:            ConvertSlotsID,
		RecursionMode:             RecursionOn,
		UseDefaultActors:          true,
		PutEndSequenceOnLastSplit: true,
		VoiceOverProperty:         "VoiceOverAsset",
		DocumentsSubmenu:          "Documents",
		ImportDocuments:           true,
	}
}

// OtherScriptFieldTitles splits OtherScriptFields on ';'.
func (p *Prefs) OtherScriptFieldTitles() map[string]bool {
	titles := make(map[string]bool)
	for _, title := range common.SplitList(p.OtherScriptFields, ";") {
		titles[title] = true
	}
	return titles
}

// DecodePrefs reads prefs over the defaults, so omitted keys keep their
// default value.
func DecodePrefs(reader io.Reader) (*Prefs, error) {
	prefs := DefaultPrefs()
	if err := yaml.NewDecoder(reader).Decode(prefs); err != nil && err != io.EOF {
		return nil, common.FormatError(common.ErrFailedToParsePrefs, err)
	}
	return prefs, nil
}

// LoadPrefs reads prefs from filename.
func LoadPrefs(filename string) (*Prefs, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToReadPrefsFile, err)
	}
	defer file.Close()

	prefs, err := DecodePrefs(file)
	if err != nil {
		return nil, err
	}
	common.LogInfo(common.InfoPrefsLoaded, filename)
	return prefs, nil
}
