package converter

import (
	"sort"

	"github.com/hansbonini/dialoguetools/pkg/common"
	"github.com/hansbonini/dialoguetools/pkg/database"
)

// checkJumpsForGroupNodes keeps a jump entry a group unless it runs a
// script, since group entries never execute their user script.
func (c *conversion) checkJumpsForGroupNodes() {
	for _, entry := range c.resolver.jumpEntries() {
		entry.IsGroup = entry.UserScript == ""
	}
}

// removeDanglingLinks drops links whose destination entry no longer exists.
func (c *conversion) removeDanglingLinks() {
	for _, conversation := range c.db.Conversations {
		for _, entry := range conversation.Entries {
			kept := entry.OutgoingLinks[:0]
			for _, link := range entry.OutgoingLinks {
				if c.db.DialogueEntry(link) == nil {
					c.diagnostics.Warn(common.WarnDanglingLinkRemoved, link.OriginConversationID, link.OriginDialogueID,
						link.DestinationConversationID, link.DestinationDialogueID)
					continue
				}
				kept = append(kept, link)
			}
			entry.OutgoingLinks = kept
		}
	}
}

// sortAllLinksByPosition orders every entry's links top to bottom by the
// destination's canvas Y, then clears the canvas rectangles. Links whose
// destination can't be resolved fall back to destination id order.
func (c *conversion) sortAllLinksByPosition() {
	for _, conversation := range c.db.Conversations {
		for _, entry := range conversation.Entries {
			c.sortLinksByPosition(conversation, entry)
		}
	}
	for _, conversation := range c.db.Conversations {
		for _, entry := range conversation.Entries {
			entry.Canvas = database.NewCanvasRect(0, 0)
		}
	}
}

func (c *conversion) sortLinksByPosition(conversation *database.Conversation, entry *database.DialogueEntry) {
	if len(entry.OutgoingLinks) < 2 {
		return
	}
	destinations := make(map[*database.Link]*database.DialogueEntry, len(entry.OutgoingLinks))
	for _, link := range entry.OutgoingLinks {
		destination := c.db.DialogueEntry(link)
		if destination == nil {
			c.diagnostics.Warn(common.WarnLinkSortUnresolved, link.DestinationConversationID, link.DestinationDialogueID,
				entry.ConversationID, entry.ID, conversation.Title())
		}
		destinations[link] = destination
	}
	sort.SliceStable(entry.OutgoingLinks, func(i, j int) bool {
		a, b := entry.OutgoingLinks[i], entry.OutgoingLinks[j]
		destA, destB := destinations[a], destinations[b]
		if destA == nil || destB == nil {
			return a.DestinationDialogueID < b.DestinationDialogueID
		}
		return destA.Canvas.Y < destB.Canvas.Y
	})
}

func (c *conversion) splitPipesIntoEntries() {
	for _, conversation := range c.db.Conversations {
		conversation.SplitPipesIntoEntries(c.prefs.PutEndSequenceOnLastSplit, c.prefs.TrimWhitespaceAroundPipes)
	}
}

// convertVoiceOverProperties replaces the voice-over asset reference field
// with the asset's file name without extension.
func (c *conversion) convertVoiceOverProperties() {
	property := c.prefs.VoiceOverProperty
	if property == "" {
		return
	}
	for _, conversation := range c.db.Conversations {
		for _, entry := range conversation.Entries {
			field := entry.Fields.Lookup(property)
			if field == nil {
				continue
			}
			assetID := field.Value
			entry.Fields.Remove(property)
			asset := c.project.Asset(assetID)
			if asset == nil {
				c.diagnostics.Warn(common.WarnVoiceOverAssetMissing, assetID, conversation.ID, entry.ID, entry.DialogueText())
				continue
			}
			entry.Fields.Add(database.FieldVoiceOverFile, common.FileNameWithoutExtension(asset.Filename), database.FieldTypeText)
		}
	}
}

func (c *conversion) checkStartEntries() {
	for _, conversation := range c.db.Conversations {
		if conversation.FirstEntry() == nil {
			c.diagnostics.Warn(common.WarnMissingStartEntry, conversation.Title())
		}
	}
}
