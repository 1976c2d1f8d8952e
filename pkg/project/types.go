// Package project holds the schema-independent model of an authored narrative
// project: elements, pins, connections, jumps, conditions, instructions,
// variable sets and the hierarchy tree that orders them.
package project

import (
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocalizableText maps a language tag to text. The empty tag holds the
// default language.
type LocalizableText map[string]string

// Default returns the default-language text.
func (t LocalizableText) Default() string {
	return t[""]
}

// Languages returns the tags in deterministic order: the default tag first
// (when present), then the rest sorted.
func (t LocalizableText) Languages() []string {
	languages := make([]string, 0, len(t))
	for language := range t {
		if language != "" {
			languages = append(languages, language)
		}
	}
	sort.Strings(languages)
	if _, ok := t[""]; ok {
		languages = append([]string{""}, languages...)
	}
	return languages
}

// UnmarshalYAML accepts either a mapping of language to text or a bare
// scalar, which is taken as the default language.
func (t *LocalizableText) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*t = LocalizableText{"": value.Value}
		return nil
	}
	var m map[string]string
	if err := value.Decode(&m); err != nil {
		return err
	}
	if m == nil {
		m = map[string]string{}
	}
	*t = m
	return nil
}

// Vector2 is an authoring-canvas position.
type Vector2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Field is a single (title, value, type) triple from a feature bag. Type
// uses the output field type names (Text, Number, Boolean, ...).
type Field struct {
	Title string `yaml:"title"`
	Value string `yaml:"value"`
	Type  string `yaml:"type,omitempty"`
}

// Property groups fields inside a feature.
type Property struct {
	Fields []Field `yaml:"fields"`
}

// Feature is a named template block of properties.
type Feature struct {
	Name       string     `yaml:"name,omitempty"`
	Properties []Property `yaml:"properties"`
}

// Features is the ordered feature bag of an element.
type Features []Feature

// Fields flattens the bag in feature, property, field order.
func (f Features) Fields() []Field {
	var fields []Field
	for _, feature := range f {
		for _, property := range feature.Properties {
			fields = append(fields, property.Fields...)
		}
	}
	return fields
}

// HasField reports whether a field titled name exists. When mustBeTrue is
// set, the first such field must also hold "True" (any case).
func (f Features) HasField(name string, mustBeTrue bool) bool {
	for _, field := range f.Fields() {
		if field.Title == name {
			return !mustBeTrue || strings.EqualFold(field.Value, "True")
		}
	}
	return false
}

// Element is the base of most authored objects.
type Element struct {
	ID            string          `yaml:"id"`
	TechnicalName string          `yaml:"technical_name,omitempty"`
	DisplayName   LocalizableText `yaml:"display_name,omitempty"`
	Text          LocalizableText `yaml:"text,omitempty"`
	Features      Features        `yaml:"features,omitempty"`
	Position      Vector2         `yaml:"position,omitempty"`
}

// Semantic is a pin direction.
type Semantic string

const (
	SemanticInput  Semantic = "Input"
	SemanticOutput Semantic = "Output"
)

// UnmarshalYAML matches the known directions case-insensitively and keeps
// anything else verbatim so the converter can report it.
func (s *Semantic) UnmarshalYAML(value *yaml.Node) error {
	switch {
	case strings.EqualFold(value.Value, string(SemanticInput)):
		*s = SemanticInput
	case strings.EqualFold(value.Value, string(SemanticOutput)):
		*s = SemanticOutput
	default:
		*s = Semantic(value.Value)
	}
	return nil
}

// Pin is a connection point on a node.
type Pin struct {
	ID         string   `yaml:"id"`
	Index      int      `yaml:"index"`
	Semantic   Semantic `yaml:"semantic"`
	Expression string   `yaml:"expression,omitempty"`
}

// Pins is an ordered pin list.
type Pins []*Pin

// ConnectionRef points at an element and one of its pins.
type ConnectionRef struct {
	IDRef  string `yaml:"id_ref"`
	PinRef string `yaml:"pin_ref"`
}

// Asset is an external file reference such as a voice-over clip.
type Asset struct {
	Element  `yaml:",inline"`
	Filename string `yaml:"filename"`
}

// Entity is a character or object that can become an actor or an item.
type Entity struct {
	Element      `yaml:",inline"`
	PreviewImage string `yaml:"preview_image,omitempty"`
}

// Location is an authored place.
type Location struct {
	Element `yaml:",inline"`
}

// FlowFragment is a container of flow that may become a conversation, a
// group entry or a quest.
type FlowFragment struct {
	Element `yaml:",inline"`
	Pins    Pins `yaml:"pins,omitempty"`
}

// Dialogue becomes a conversation. References holds the participant entity
// ids, primary actor first.
type Dialogue struct {
	Element    `yaml:",inline"`
	Pins       Pins     `yaml:"pins,omitempty"`
	References []string `yaml:"references,omitempty"`
	IsDocument bool     `yaml:"is_document,omitempty"`
}

// DialogueFragment is a single spoken line.
type DialogueFragment struct {
	Element         `yaml:",inline"`
	MenuText        LocalizableText `yaml:"menu_text,omitempty"`
	StageDirections LocalizableText `yaml:"stage_directions,omitempty"`
	SpeakerIDRef    string          `yaml:"speaker_id_ref,omitempty"`
	Pins            Pins            `yaml:"pins,omitempty"`
}

// Hub is a multi-way junction.
type Hub struct {
	Element `yaml:",inline"`
	Pins    Pins `yaml:"pins,omitempty"`
}

// Jump continues the flow at an explicit target instead of a connection.
type Jump struct {
	Element `yaml:",inline"`
	Target  ConnectionRef `yaml:"target"`
	Pins    Pins          `yaml:"pins,omitempty"`
}

// Connection is an edge between two pins. Color encodes the link priority.
type Connection struct {
	ID     string        `yaml:"id"`
	Color  string        `yaml:"color,omitempty"`
	Source ConnectionRef `yaml:"source"`
	Target ConnectionRef `yaml:"target"`
}

// Condition branches on Expression. Output pin 0 is the true path.
type Condition struct {
	ID         string  `yaml:"id"`
	Expression string  `yaml:"expression"`
	Pins       Pins    `yaml:"pins,omitempty"`
	Position   Vector2 `yaml:"position,omitempty"`
}

// Instruction runs Expression as a script.
type Instruction struct {
	ID         string  `yaml:"id"`
	Expression string  `yaml:"expression"`
	Pins       Pins    `yaml:"pins,omitempty"`
	Position   Vector2 `yaml:"position,omitempty"`
}

// VariableDataType is the declared type of a global variable.
type VariableDataType string

const (
	VariableBoolean VariableDataType = "Boolean"
	VariableInteger VariableDataType = "Integer"
	VariableString  VariableDataType = "String"
)

// Variable is a global variable inside a set.
type Variable struct {
	TechnicalName string           `yaml:"technical_name"`
	DefaultValue  string           `yaml:"default_value,omitempty"`
	DataType      VariableDataType `yaml:"data_type,omitempty"`
	Description   string           `yaml:"description,omitempty"`
}

// VariableSet namespaces variables. Full names are "<set>.<variable>".
type VariableSet struct {
	ID            string     `yaml:"id"`
	TechnicalName string     `yaml:"technical_name"`
	Variables     []Variable `yaml:"variables,omitempty"`
}

// FullVariableName joins a set and variable technical name.
func FullVariableName(set *VariableSet, variable Variable) string {
	if set == nil {
		return ""
	}
	return set.TechnicalName + "." + variable.TechnicalName
}

// NodeType tags a hierarchy node.
type NodeType string

const (
	NodeFlowFragment     NodeType = "FlowFragment"
	NodeDialogue         NodeType = "Dialogue"
	NodeDialogueFragment NodeType = "DialogueFragment"
	NodeHub              NodeType = "Hub"
	NodeJump             NodeType = "Jump"
	NodeCondition        NodeType = "Condition"
	NodeInstruction      NodeType = "Instruction"
	NodeOther            NodeType = "Other"
)

var knownNodeTypes = []NodeType{
	NodeFlowFragment, NodeDialogue, NodeDialogueFragment, NodeHub,
	NodeJump, NodeCondition, NodeInstruction, NodeOther,
}

// ParseNodeType matches a type name case-insensitively. Unknown names
// become NodeOther.
func ParseNodeType(s string) NodeType {
	for _, t := range knownNodeTypes {
		if strings.EqualFold(s, string(t)) {
			return t
		}
	}
	return NodeOther
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *NodeType) UnmarshalYAML(value *yaml.Node) error {
	*t = ParseNodeType(value.Value)
	return nil
}

// Node is one hierarchy tree node. The tree sets traversal order and
// nesting context only; links come from connections and jumps.
type Node struct {
	ID    string   `yaml:"id"`
	Type  NodeType `yaml:"type"`
	Nodes []*Node  `yaml:"nodes,omitempty"`
}

// Attributes describes the authoring project itself.
type Attributes struct {
	DisplayName    string `yaml:"display_name,omitempty"`
	CreatedOn      string `yaml:"created_on,omitempty"`
	CreatorTool    string `yaml:"creator_tool,omitempty"`
	CreatorVersion string `yaml:"creator_version,omitempty"`
}

// Version is the value stored as the database version.
func (a Attributes) Version() string {
	return a.CreatedOn
}

// Author is the value stored as the database author.
func (a Attributes) Author() string {
	return strings.TrimSpace(a.CreatorTool + " " + a.CreatorVersion)
}
