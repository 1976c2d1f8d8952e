// Package database is the output model of a conversion: conversations of
// dialogue entries joined by prioritized links, plus actors, items,
// locations and variables, each carrying an ordered field bag.
package database

import (
	"strings"

	"github.com/hansbonini/dialoguetools/pkg/common"
	"gopkg.in/yaml.v3"
)

// FieldType tags the value stored in a Field.
type FieldType int

const (
	FieldTypeText FieldType = iota
	FieldTypeNumber
	FieldTypeBoolean
	FieldTypeFiles
	FieldTypeLocalization
	FieldTypeActor
	FieldTypeItem
	FieldTypeLocation
)

var fieldTypeNames = []string{"Text", "Number", "Boolean", "Files", "Localization", "Actor", "Item", "Location"}

func (t FieldType) String() string {
	if t < 0 || int(t) >= len(fieldTypeNames) {
		return fieldTypeNames[FieldTypeText]
	}
	return fieldTypeNames[t]
}

// ParseFieldType matches a type name case-insensitively. Unknown or empty
// names are Text.
func ParseFieldType(s string) FieldType {
	for i, name := range fieldTypeNames {
		if strings.EqualFold(s, name) {
			return FieldType(i)
		}
	}
	return FieldTypeText
}

// MarshalYAML implements yaml.Marshaler.
func (t FieldType) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *FieldType) UnmarshalYAML(value *yaml.Node) error {
	*t = ParseFieldType(value.Value)
	return nil
}

// Field is a titled, typed value.
type Field struct {
	Title string    `yaml:"title"`
	Value string    `yaml:"value"`
	Type  FieldType `yaml:"type"`
}

// Fields is an ordered field bag. Titles are unique after Set; a bag read
// from elsewhere may repeat a title, in which case Lookup finds the first.
type Fields []*Field

// Lookup returns the first field titled title, or nil.
func (f Fields) Lookup(title string) *Field {
	for _, field := range f {
		if field != nil && field.Title == title {
			return field
		}
	}
	return nil
}

// LookupValue returns the value of the field titled title, or "".
func (f Fields) LookupValue(title string) string {
	if field := f.Lookup(title); field != nil {
		return field.Value
	}
	return ""
}

// LookupBool reports whether the field titled title holds "True".
func (f Fields) LookupBool(title string) bool {
	return common.StringToBool(f.LookupValue(title))
}

// LookupInt returns the integer value of the field titled title, or 0.
func (f Fields) LookupInt(title string) int {
	return common.StringToInt(f.LookupValue(title))
}

// Set assigns value and type to the field titled title, appending it when
// missing.
func (f *Fields) Set(title, value string, fieldType FieldType) {
	if field := f.Lookup(title); field != nil {
		field.Value = value
		field.Type = fieldType
		return
	}
	*f = append(*f, &Field{Title: title, Value: value, Type: fieldType})
}

// SetValue assigns value to the field titled title and keeps its type. A
// missing field is appended as Text.
func (f *Fields) SetValue(title, value string) {
	if field := f.Lookup(title); field != nil {
		field.Value = value
		return
	}
	*f = append(*f, &Field{Title: title, Value: value, Type: FieldTypeText})
}

// Add appends a field without checking for an existing title.
func (f *Fields) Add(title, value string, fieldType FieldType) {
	*f = append(*f, &Field{Title: title, Value: value, Type: fieldType})
}

// Remove deletes every field titled title and reports whether any existed.
func (f *Fields) Remove(title string) bool {
	kept := (*f)[:0]
	removed := false
	for _, field := range *f {
		if field != nil && field.Title == title {
			removed = true
			continue
		}
		kept = append(kept, field)
	}
	for i := len(kept); i < len(*f); i++ {
		(*f)[i] = nil
	}
	*f = kept
	return removed
}

// Copy returns a deep copy of the bag.
func (f Fields) Copy() Fields {
	copied := make(Fields, 0, len(f))
	for _, field := range f {
		if field == nil {
			continue
		}
		c := *field
		copied = append(copied, &c)
	}
	return copied
}
