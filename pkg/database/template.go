package database

import "github.com/hansbonini/dialoguetools/pkg/common"

// Template creates database assets with their standard field sets. The
// converter calls it for every asset it adds.
type Template interface {
	CreateActor(id int, name string, isPlayer bool) *Actor
	CreateItem(id int, name string) *Item
	CreateLocation(id int, name string) *Location
	CreateVariable(id int, name, initialValue string) *Variable
	CreateConversation(id int, title string) *Conversation
	CreateDialogueEntry(id, conversationID int, title string) *DialogueEntry
}

// DefaultTemplate fills the fields the dialogue runtime expects.
type DefaultTemplate struct{}

// CreateActor implements Template.
func (DefaultTemplate) CreateActor(id int, name string, isPlayer bool) *Actor {
	actor := &Actor{Asset{ID: id}}
	actor.Fields.Set(FieldName, name, FieldTypeText)
	actor.Fields.Set(FieldPictures, "[]", FieldTypeFiles)
	actor.Fields.Set(FieldDescription, "", FieldTypeText)
	actor.Fields.Set(FieldIsPlayer, common.BoolToString(isPlayer), FieldTypeBoolean)
	return actor
}

// CreateItem implements Template.
func (DefaultTemplate) CreateItem(id int, name string) *Item {
	item := &Item{Asset{ID: id}}
	item.Fields.Set(FieldName, name, FieldTypeText)
	item.Fields.Set(FieldPictures, "[]", FieldTypeFiles)
	item.Fields.Set(FieldDescription, "", FieldTypeText)
	item.Fields.Set(FieldIsItem, "True", FieldTypeBoolean)
	return item
}

// CreateLocation implements Template.
func (DefaultTemplate) CreateLocation(id int, name string) *Location {
	location := &Location{Asset{ID: id}}
	location.Fields.Set(FieldName, name, FieldTypeText)
	location.Fields.Set(FieldDescription, "", FieldTypeText)
	return location
}

// CreateVariable implements Template.
func (DefaultTemplate) CreateVariable(id int, name, initialValue string) *Variable {
	variable := &Variable{Asset{ID: id}}
	variable.Fields.Set(FieldName, name, FieldTypeText)
	variable.Fields.Set(FieldInitialValue, initialValue, FieldTypeText)
	variable.Fields.Set(FieldDescription, "", FieldTypeText)
	return variable
}

// CreateConversation implements Template.
func (DefaultTemplate) CreateConversation(id int, title string) *Conversation {
	conversation := &Conversation{ID: id}
	conversation.Fields.Set(FieldTitle, title, FieldTypeText)
	conversation.Fields.Set(FieldDescription, "", FieldTypeText)
	return conversation
}

// CreateDialogueEntry implements Template.
func (DefaultTemplate) CreateDialogueEntry(id, conversationID int, title string) *DialogueEntry {
	entry := &DialogueEntry{
		ID:                   id,
		ConversationID:       conversationID,
		FalseConditionAction: FalseConditionBlock,
		ConditionPriority:    PriorityNormal,
	}
	entry.Fields.Set(FieldTitle, title, FieldTypeText)
	entry.Fields.Set(FieldDescription, "", FieldTypeText)
	entry.Fields.Set(FieldDialogueText, "", FieldTypeText)
	entry.Fields.Set(FieldMenuText, "", FieldTypeText)
	entry.Fields.Set(FieldSequence, "", FieldTypeText)
	entry.Fields.Set(FieldAudioFiles, "[]", FieldTypeFiles)
	return entry
}
