package database

import (
	"fmt"
	"strings"

	"github.com/hansbonini/dialoguetools/pkg/common"
)

// StartEntryTitle is the title of every conversation's root entry.
const StartEntryTitle = "START"

// StartEntryID is the id of every conversation's root entry.
const StartEntryID = 0

// Conversation is a titled graph of dialogue entries.
type Conversation struct {
	ID               int                          `yaml:"id"`
	Fields           Fields                       `yaml:"fields"`
	ActorID          int                          `yaml:"actor_id"`
	ConversantID     int                          `yaml:"conversant_id"`
	OverrideSettings ConversationOverrideSettings `yaml:"override_settings"`
	Entries          []*DialogueEntry             `yaml:"entries"`
}

// Title returns the Title field.
func (c *Conversation) Title() string { return c.Fields.LookupValue(FieldTitle) }

// SetTitle sets the Title field.
func (c *Conversation) SetTitle(title string) { c.Fields.Set(FieldTitle, title, FieldTypeText) }

// Entry returns the entry with id, or nil.
func (c *Conversation) Entry(id int) *DialogueEntry {
	for _, entry := range c.Entries {
		if entry.ID == id {
			return entry
		}
	}
	return nil
}

// EntryByTitle returns the first entry titled title, or nil.
func (c *Conversation) EntryByTitle(title string) *DialogueEntry {
	for _, entry := range c.Entries {
		if entry.Title() == title {
			return entry
		}
	}
	return nil
}

// FirstEntry returns the START entry, or nil.
func (c *Conversation) FirstEntry() *DialogueEntry {
	return c.EntryByTitle(StartEntryTitle)
}

// RemoveEntry deletes entry from the conversation and reports whether it
// was present.
func (c *Conversation) RemoveEntry(entry *DialogueEntry) bool {
	for i, e := range c.Entries {
		if e == entry {
			c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Conversation) highestEntryID() int {
	highest := 0
	for _, entry := range c.Entries {
		if entry.ID > highest {
			highest = entry.ID
		}
	}
	return highest
}

// SealLinkPriorities sets the priority of every link that stays inside the
// conversation to its destination entry's condition priority. This is the
// rule for conversations imported from Chat Mapper; the articy converter
// keeps the color-derived priorities instead.
func (c *Conversation) SealLinkPriorities() {
	for _, entry := range c.Entries {
		for _, link := range entry.OutgoingLinks {
			if link.DestinationConversationID != c.ID {
				continue
			}
			if destination := c.Entry(link.DestinationDialogueID); destination != nil {
				link.Priority = destination.ConditionPriority
			}
		}
	}
}

// SplitPipesIntoEntries splits every entry whose dialogue text contains '|'
// into a chain of entries, one per segment. Menu text, localized fields,
// sequences and audio files are distributed by position. When
// putEndSequenceOnLastSplit is set, a sequence holding {{end}} keeps its
// other commands on the first entry, moves the {{end}} commands to the last
// entry and gives middle entries Delay({{end}}).
func (c *Conversation) SplitPipesIntoEntries(putEndSequenceOnLastSplit, trimWhitespace bool) {
	count := len(c.Entries)
	for i := 0; i < count; i++ {
		dialogueText := c.Entries[i].DialogueText()
		if strings.Contains(dialogueText, "|") {
			c.splitEntryAtPipes(c.Entries[i], dialogueText, putEndSequenceOnLastSplit, trimWhitespace)
		}
	}
}

func (c *Conversation) splitEntryAtPipes(original *DialogueEntry, dialogueText string, putEndSequenceOnLastSplit, trimWhitespace bool) {
	trim := func(s string) string {
		if trimWhitespace {
			return strings.TrimSpace(s)
		}
		return s
	}

	substrings := strings.Split(dialogueText, "|")
	original.SetDialogueText(trim(substrings[0]))
	originalLinks := original.OutgoingLinks
	priority := PriorityNormal
	if len(originalLinks) > 0 {
		priority = originalLinks[0].Priority
	}

	menuTexts := strings.Split(original.MenuText(), "|")

	audioFilesText := original.AudioFiles()
	if len(audioFilesText) >= 2 {
		audioFilesText = audioFilesText[1 : len(audioFilesText)-1]
	} else {
		audioFilesText = ""
	}
	audioFiles := strings.Split(audioFilesText, ";")
	original.SetAudioFiles(fmt.Sprintf("[%s]", audioFiles[0]))

	entries := []*DialogueEntry{original}
	current := original
	for i := 1; i < len(substrings); i++ {
		menuText := ""
		if i < len(menuTexts) {
			menuText = menuTexts[i]
		}
		audioFile := ""
		if i < len(audioFiles) {
			audioFile = audioFiles[i]
		}

		entry := c.addSplitEntry(original, trim(substrings[i]), i)
		entry.Canvas = Rect{
			X:      original.Canvas.X + float64(i*20),
			Y:      original.Canvas.Y + float64(i*10),
			Width:  original.Canvas.Width,
			Height: original.Canvas.Height,
		}
		entry.SetMenuText(trim(menuText))
		entry.SetAudioFiles(fmt.Sprintf("[%s]", audioFile))
		current.OutgoingLinks = []*Link{NewLink(current, entry, priority)}
		current = entry
		entries = append(entries, entry)
	}

	// The chain's last entry takes over the original links.
	for _, link := range originalLinks {
		link.OriginConversationID = current.ConversationID
		link.OriginDialogueID = current.ID
	}
	current.OutgoingLinks = originalLinks

	if len(menuTexts) > 1 {
		original.SetMenuText(trim(menuTexts[0]))
	}

	for _, field := range original.Fields {
		if field == nil || field.Title == "" {
			continue
		}
		isSequence := strings.HasPrefix(field.Title, FieldSequence)
		containsPipes := strings.Contains(field.Value, "|")
		if (isSequence || field.Type == FieldTypeLocalization) && containsPipes {
			field.Value = trim(strings.Split(field.Value, "|")[0])
		} else if isSequence && putEndSequenceOnLastSplit && strings.Contains(field.Value, SequencerEnd) {
			putEndSequenceOnLastSplitEntry(entries, field)
		}
	}
	common.LogDebug(common.DebugEntrySplit, original.ConversationID, original.ID, len(entries))
}

// addSplitEntry appends a copy of original holding part partNum of every
// splittable field.
func (c *Conversation) addSplitEntry(original *DialogueEntry, dialogueText string, partNum int) *DialogueEntry {
	entry := &DialogueEntry{
		ID:                   c.highestEntryID() + 1,
		ConversationID:       original.ConversationID,
		IsRoot:               original.IsRoot,
		IsGroup:              original.IsGroup,
		ActorID:              original.ActorID,
		ConversantID:         original.ConversantID,
		FalseConditionAction: original.FalseConditionAction,
		ConditionPriority:    original.ConditionPriority,
	}
	if original.FalseConditionAction == FalseConditionPassthrough {
		entry.ConditionsString = original.ConditionsString
	}
	for _, field := range original.Fields {
		if field == nil || field.Title == "" {
			continue
		}
		value := field.Value
		splittable := strings.HasPrefix(field.Title, FieldSequence) || field.Type == FieldTypeLocalization
		if splittable && strings.Contains(value, "|") {
			if parts := strings.Split(value, "|"); partNum < len(parts) {
				value = strings.TrimSpace(parts[partNum])
			}
		}
		entry.Fields.Add(field.Title, value, field.Type)
	}
	entry.SetDialogueText(dialogueText)
	c.Entries = append(c.Entries, entry)
	return entry
}

func putEndSequenceOnLastSplitEntry(entries []*DialogueEntry, field *Field) {
	commands := strings.Split(field.Value, ";")
	title := field.Title
	for i, entry := range entries {
		var sb strings.Builder
		switch {
		case i == 0:
			for _, command := range commands {
				if !strings.Contains(command, SequencerEnd) {
					sb.WriteString(strings.TrimSpace(command) + "; ")
				}
			}
			sb.WriteString(SequencerDelayEnd)
		case i == len(entries)-1:
			for _, command := range commands {
				if strings.Contains(command, SequencerEnd) {
					sb.WriteString(strings.TrimSpace(command) + "; ")
				}
			}
		default:
			sb.WriteString(SequencerDelayEnd)
		}
		entry.Fields.SetValue(title, sb.String())
	}
}
