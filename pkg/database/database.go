package database

// Database is a complete dialogue database.
type Database struct {
	Version          string            `yaml:"version,omitempty"`
	Author           string            `yaml:"author,omitempty"`
	EmphasisSettings []EmphasisSetting `yaml:"emphasis_settings,omitempty"`
	Actors           []*Actor          `yaml:"actors"`
	Items            []*Item           `yaml:"items"`
	Locations        []*Location       `yaml:"locations"`
	Variables        []*Variable       `yaml:"variables"`
	Conversations    []*Conversation   `yaml:"conversations"`
}

// NewDatabase returns an empty database with default emphasis settings.
func NewDatabase() *Database {
	db := &Database{EmphasisSettings: make([]EmphasisSetting, NumEmphasisSettings)}
	for i := range db.EmphasisSettings {
		db.EmphasisSettings[i].Color = "#FFFFFF"
	}
	return db
}

// Conversation returns the conversation with id, or nil.
func (db *Database) Conversation(id int) *Conversation {
	for _, conversation := range db.Conversations {
		if conversation.ID == id {
			return conversation
		}
	}
	return nil
}

// ConversationByTitle returns the first conversation titled title, or nil.
func (db *Database) ConversationByTitle(title string) *Conversation {
	for _, conversation := range db.Conversations {
		if conversation.Title() == title {
			return conversation
		}
	}
	return nil
}

// DialogueEntry returns the destination entry of link, or nil.
func (db *Database) DialogueEntry(link *Link) *DialogueEntry {
	if link == nil {
		return nil
	}
	conversation := db.Conversation(link.DestinationConversationID)
	if conversation == nil {
		return nil
	}
	return conversation.Entry(link.DestinationDialogueID)
}

// Actor returns the actor with id, or nil.
func (db *Database) Actor(id int) *Actor {
	for _, actor := range db.Actors {
		if actor.ID == id {
			return actor
		}
	}
	return nil
}

// Variable returns the variable named name, or nil.
func (db *Database) Variable(name string) *Variable {
	for _, variable := range db.Variables {
		if variable.Name() == name {
			return variable
		}
	}
	return nil
}

// RemoveConversations deletes every conversation for which drop returns
// true and reports how many were removed.
func (db *Database) RemoveConversations(drop func(*Conversation) bool) int {
	kept := db.Conversations[:0]
	removed := 0
	for _, conversation := range db.Conversations {
		if drop(conversation) {
			removed++
			continue
		}
		kept = append(kept, conversation)
	}
	db.Conversations = kept
	return removed
}

// SealLinkPriorities applies Conversation.SealLinkPriorities to every
// conversation.
func (db *Database) SealLinkPriorities() {
	for _, conversation := range db.Conversations {
		conversation.SealLinkPriorities()
	}
}
