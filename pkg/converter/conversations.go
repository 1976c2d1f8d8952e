package converter

import (
	"github.com/hansbonini/dialoguetools/pkg/common"
	"github.com/hansbonini/dialoguetools/pkg/database"
	"github.com/hansbonini/dialoguetools/pkg/project"
)

const (
	inputEntryTitle  = "input"
	outputEntryTitle = "output"
)

// Actor ids used when a conversation names no participants.
const (
	defaultActorID      = 1
	defaultConversantID = 2
	noActorID           = -1
)

func (c *conversion) convertDialoguesToConversations() {
	for _, dialogue := range c.project.Dialogues {
		if dialogue == nil || !c.includes(dialogue.ID) {
			continue
		}
		conversation := c.createDialogueConversation(dialogue)
		if _, exists := c.dialogueConversations[dialogue.ID]; !exists {
			c.dialogueConversations[dialogue.ID] = conversation
		}
	}
}

func (c *conversion) newConversation(title, articyID, description string) *database.Conversation {
	c.conversationID++
	conversation := c.template.CreateConversation(c.conversationID, title)
	conversation.Fields.Set(FieldArticyID, articyID, database.FieldTypeText)
	conversation.Fields.Set(database.FieldDescription, description, database.FieldTypeText)
	c.db.Conversations = append(c.db.Conversations, conversation)
	c.diagnostics.Debug(common.DebugConversationCreated, conversation.ID, title)
	return conversation
}

// newStartEntry appends the START entry. A conversation "Sequence" field
// moves onto it; otherwise it continues immediately.
func (c *conversion) newStartEntry(conversation *database.Conversation, articyID string) *database.DialogueEntry {
	start := c.template.CreateDialogueEntry(c.nextEntryID(conversation), conversation.ID, database.StartEntryTitle)
	start.IsRoot = true
	start.ActorID = conversation.ActorID
	start.ConversantID = conversation.ConversantID
	start.Fields.Set(FieldArticyID, articyID, database.FieldTypeText)

	if sequence := conversation.Fields.LookupValue(database.FieldSequence); sequence != "" {
		conversation.Fields.Remove(database.FieldSequence)
		start.SetSequence(sequence)
	} else {
		start.SetSequence(database.SequencerContinue)
	}
	conversation.Entries = append(conversation.Entries, start)
	return start
}

// newPinEntry appends a passthrough group entry standing for a pin of a
// dialogue or flow fragment.
func (c *conversion) newPinEntry(conversation *database.Conversation, pin *project.Pin) *database.DialogueEntry {
	title := outputEntryTitle
	if pin.Semantic == project.SemanticInput {
		title = inputEntryTitle
	}
	entry := c.template.CreateDialogueEntry(c.nextEntryID(conversation), conversation.ID, title)
	entry.ActorID = conversation.ConversantID
	entry.ConversantID = conversation.ActorID
	entry.IsGroup = true
	entry.Fields.Set(FieldArticyID, pin.ID, database.FieldTypeText)
	return entry
}

// createDialogueConversation converts a dialogue into a conversation with a
// START entry and one passthrough entry per pin.
func (c *conversion) createDialogueConversation(dialogue *project.Dialogue) *database.Conversation {
	title := dialogue.DisplayName.Default()
	if dialogue.IsDocument && c.prefs.DocumentsSubmenu != "" {
		title = c.prefs.DocumentsSubmenu + "/" + title
	}
	conversation := c.newConversation(title, dialogue.ID, dialogue.Text.Default())
	consumed := applyOverrideSettings(&conversation.OverrideSettings, dialogue.Features)
	c.setFeatureFields(&conversation.Fields, dialogue.Features, consumed)
	conversation.ActorID = c.dialogueActorID(dialogue, 0, defaultActorID)
	conversation.ConversantID = c.dialogueActorID(dialogue, 1, defaultConversantID)
	if dialogue.IsDocument {
		c.documentConversations[conversation] = true
	}

	start := c.newStartEntry(conversation, dialogue.ID)
	start.Canvas = database.NewCanvasRect(dialogue.Position.X, dialogue.Position.Y)

	for _, pin := range dialogue.Pins {
		if pin == nil || c.skipsPin(pin) {
			continue
		}
		entry := c.newPinEntry(conversation, pin)
		entry.Canvas = database.NewCanvasRect(dialogue.Position.X, dialogue.Position.Y)
		isInput := pin.Semantic == project.SemanticInput
		c.applyPinExpressions(entry, dialogue.Pins, isInput, !isInput)
		if isInput {
			start.AddLink(entry, database.PriorityNormal)
		} else {
			c.resolver.markUnused(entry)
		}
		conversation.Entries = append(conversation.Entries, entry)
		c.resolver.registerPin(pin, entry)
	}
	return conversation
}

// createFlowFragmentConversation converts a flow fragment into a
// conversation. Participants come from the enclosing conversation. A
// top-level conversation links its input entry to every output entry and
// keeps its outputs even when nothing connects to them.
func (c *conversion) createFlowFragmentConversation(flowFragment *project.FlowFragment, isTopLevel bool) *database.Conversation {
	conversation := c.newConversation(flowFragment.DisplayName.Default()+" Conversation", flowFragment.ID, flowFragment.Text.Default())
	c.setFeatureFields(&conversation.Fields, flowFragment.Features, nil)
	conversation.ActorID, conversation.ConversantID = c.defaultParticipants(c.currentConversation())

	start := c.newStartEntry(conversation, flowFragment.ID)
	c.applyPinExpressions(start, flowFragment.Pins, true, true)

	for _, pin := range flowFragment.Pins {
		if pin == nil || c.skipsPin(pin) {
			continue
		}
		entry := c.newPinEntry(conversation, pin)
		entry.SetSequence(database.SequencerContinue)
		switch {
		case pin.Semantic == project.SemanticInput:
			start.AddLink(entry, database.PriorityNormal)
		case !(isTopLevel && pin.Semantic == project.SemanticOutput):
			c.resolver.markUnused(entry)
		}
		c.applyPinExpressions(entry, flowFragment.Pins, true, true)
		conversation.Entries = append(conversation.Entries, entry)
		c.resolver.registerPin(pin, entry)
	}

	if isTopLevel {
		if input := conversation.EntryByTitle(inputEntryTitle); input != nil {
			for _, entry := range conversation.Entries {
				if entry.Title() == outputEntryTitle {
					input.AddLink(entry, database.PriorityNormal)
				}
			}
		}
	}
	return conversation
}

func (c *conversion) skipsPin(pin *project.Pin) bool {
	return pin.Semantic == project.SemanticOutput && c.prefs.RecursionMode == RecursionOff
}

func (c *conversion) defaultParticipants(parent *database.Conversation) (actorID, conversantID int) {
	if parent != nil {
		return parent.ActorID, parent.ConversantID
	}
	if c.prefs.UseDefaultActors {
		return defaultActorID, defaultConversantID
	}
	return noActorID, noActorID
}

// dialogueActorID resolves the dialogue reference at index to an actor id.
func (c *conversion) dialogueActorID(dialogue *project.Dialogue, index, fallback int) int {
	if index < len(dialogue.References) {
		if actor := c.findActorByArticyID(dialogue.References[index]); actor != nil {
			return actor.ID
		}
	}
	if c.prefs.UseDefaultActors {
		return fallback
	}
	return noActorID
}

// applyOverrideSettings reads conversation override properties from the
// features and returns the titles it consumed.
func applyOverrideSettings(settings *database.ConversationOverrideSettings, features project.Features) map[string]bool {
	consumed := make(map[string]bool)
	for _, field := range features.Fields() {
		switch field.Title {
		case "ShowNPCSubtitlesDuringLine":
			settings.OverrideSubtitleSettings = true
			settings.ShowNPCSubtitlesDuringLine = common.StringToBool(field.Value)
		case "ShowNPCSubtitlesWithResponses":
			settings.OverrideSubtitleSettings = true
			settings.ShowNPCSubtitlesWithResponses = common.StringToBool(field.Value)
		case "ShowPCSubtitlesDuringLine":
			settings.OverrideSubtitleSettings = true
			settings.ShowPCSubtitlesDuringLine = common.StringToBool(field.Value)
		case "SkipPCSubtitleAfterResponseMenu":
			settings.OverrideSubtitleSettings = true
			settings.SkipPCSubtitleAfterResponseMenu = common.StringToBool(field.Value)
		case "SubtitleCharsPerSecond":
			settings.OverrideSubtitleSettings = true
			settings.SubtitleCharsPerSecond = common.StringToFloat(field.Value)
		case "MinSubtitleSeconds":
			settings.OverrideSubtitleSettings = true
			settings.MinSubtitleSeconds = common.StringToFloat(field.Value)
		case "ContinueButton":
			settings.OverrideSubtitleSettings = true
			settings.ContinueButton = database.ParseContinueButtonMode(field.Value)
		case "DefaultSequence":
			settings.OverrideSequenceSettings = true
			settings.DefaultSequence = field.Value
		case "DefaultPlayerSequence":
			settings.OverrideSequenceSettings = true
			settings.DefaultPlayerSequence = field.Value
		case "DefaultResponseMenuSequence":
			settings.OverrideSequenceSettings = true
			settings.DefaultResponseMenuSequence = field.Value
		case "AlwaysForceResponseMenu":
			settings.OverrideInputSettings = true
			settings.AlwaysForceResponseMenu = common.StringToBool(field.Value)
		case "IncludeInvalidEntries":
			settings.OverrideInputSettings = true
			settings.IncludeInvalidEntries = common.StringToBool(field.Value)
		case "ResponseTimeout":
			settings.OverrideInputSettings = true
			settings.ResponseTimeout = common.StringToFloat(field.Value)
		default:
			continue
		}
		settings.UseOverrides = true
		consumed[field.Title] = true
	}
	return consumed
}
