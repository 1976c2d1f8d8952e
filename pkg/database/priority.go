package database

import (
	"strings"

	"github.com/hansbonini/dialoguetools/pkg/common"
	"gopkg.in/yaml.v3"
)

// Priority orders the outgoing links of an entry.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityBelowNormal
	PriorityNormal
	PriorityAboveNormal
	PriorityHigh
)

var priorityNames = []string{"Low", "BelowNormal", "Normal", "AboveNormal", "High"}

func (p Priority) String() string {
	if p < PriorityLow || p > PriorityHigh {
		return priorityNames[PriorityNormal]
	}
	return priorityNames[p]
}

// ParsePriority matches a priority name case-insensitively.
func ParsePriority(s string) (Priority, bool) {
	for i, name := range priorityNames {
		if strings.EqualFold(s, name) {
			return Priority(i), true
		}
	}
	return PriorityNormal, false
}

// MarshalYAML implements yaml.Marshaler.
func (p Priority) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Unknown names fall back to
// Normal.
func (p *Priority) UnmarshalYAML(value *yaml.Node) error {
	parsed, ok := ParsePriority(value.Value)
	if !ok {
		common.LogWarn(common.WarnUnknownEnumValue, "priority", value.Value, parsed)
	}
	*p = parsed
	return nil
}

// Connection colors that select a link priority.
const (
	HighPriorityColor        = "#FF0000"
	AboveNormalPriorityColor = "#FFC000"
	BelowNormalPriorityColor = "#FFFF00"
	LowPriorityColor         = "#92D050"
)

// ColorToPriority maps a connection color to a priority. Matching ignores
// case and a missing '#'. Any other color, including the empty one, is
// Normal.
func ColorToPriority(color string) Priority {
	normalized := strings.ToUpper(strings.TrimSpace(color))
	if normalized != "" && !strings.HasPrefix(normalized, "#") {
		normalized = "#" + normalized
	}
	switch normalized {
	case HighPriorityColor:
		return PriorityHigh
	case AboveNormalPriorityColor:
		return PriorityAboveNormal
	case BelowNormalPriorityColor:
		return PriorityBelowNormal
	case LowPriorityColor:
		return PriorityLow
	default:
		return PriorityNormal
	}
}
