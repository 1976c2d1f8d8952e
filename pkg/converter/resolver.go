package converter

import (
	"github.com/hansbonini/dialoguetools/pkg/common"
	"github.com/hansbonini/dialoguetools/pkg/database"
	"github.com/hansbonini/dialoguetools/pkg/project"
)

// Field titles recording which pin an entry was registered under.
const (
	FieldInputID  = "InputId"
	FieldOutputID = "OutputId"
)

type pendingJump struct {
	jump  *project.Jump
	entry *database.DialogueEntry
}

// resolver maps pins to the entries created for them and turns connections
// and jumps into links once every entry exists.
type resolver struct {
	diagnostics common.Diagnostics

	entriesByPin map[string]*database.DialogueEntry
	jumps        []pendingJump
	unused       []*database.DialogueEntry
}

func newResolver(diagnostics common.Diagnostics) *resolver {
	return &resolver{
		diagnostics:  diagnostics,
		entriesByPin: make(map[string]*database.DialogueEntry),
	}
}

// registerPin maps pin to entry. The first registration of a pin wins.
func (r *resolver) registerPin(pin *project.Pin, entry *database.DialogueEntry) {
	if pin == nil || entry == nil {
		return
	}
	if _, exists := r.entriesByPin[pin.ID]; exists {
		return
	}
	r.entriesByPin[pin.ID] = entry
	title := FieldOutputID
	if pin.Semantic == project.SemanticInput {
		title = FieldInputID
	}
	entry.Fields.SetValue(title, pin.ID)
	r.diagnostics.Debug(common.DebugPinRegistered, pin.ID, entry.ConversationID, entry.ID)
}

func (r *resolver) registerPins(pins project.Pins, entry *database.DialogueEntry) {
	for _, pin := range pins {
		r.registerPin(pin, entry)
	}
}

// deferJump queues a jump until the walk has created every target.
func (r *resolver) deferJump(jump *project.Jump, entry *database.DialogueEntry) {
	r.jumps = append(r.jumps, pendingJump{jump: jump, entry: entry})
	r.diagnostics.Debug(common.DebugJumpDeferred, jump.ID, jump.Target.IDRef, jump.Target.PinRef)
}

// jumpEntries lists the entries created for jumps in creation order.
func (r *resolver) jumpEntries() []*database.DialogueEntry {
	entries := make([]*database.DialogueEntry, 0, len(r.jumps))
	for _, pending := range r.jumps {
		entries = append(entries, pending.entry)
	}
	return entries
}

// markUnused records an output entry that is pruned unless something links
// to it.
func (r *resolver) markUnused(entry *database.DialogueEntry) {
	r.unused = append(r.unused, entry)
}

func (r *resolver) markUsed(entry *database.DialogueEntry) {
	kept := r.unused[:0]
	for _, e := range r.unused {
		if e != entry {
			kept = append(kept, e)
		}
	}
	r.unused = kept
}

// resolveConnections links the entries registered for each connection's
// pins and returns the number of links created.
func (r *resolver) resolveConnections(connections []*project.Connection) int {
	created := 0
	for _, connection := range connections {
		if connection == nil {
			continue
		}
		source, ok := r.lookupPin(connection.ID, connection.Source.PinRef)
		if !ok {
			continue
		}
		target, ok := r.lookupPin(connection.ID, connection.Target.PinRef)
		if !ok {
			continue
		}
		if source != target {
			r.link(source, target, database.ColorToPriority(connection.Color))
			created++
		}
		r.markUsed(target)
	}
	return created
}

func (r *resolver) lookupPin(connectionID, pinID string) (*database.DialogueEntry, bool) {
	entry, ok := r.entriesByPin[pinID]
	if !ok {
		r.diagnostics.Debug(common.WarnConnectionPinMissing, connectionID, pinID)
	}
	return entry, ok
}

// resolveJumps links each deferred jump to its target and returns the
// number of links created. A jump whose target pin was never registered
// stays unlinked.
func (r *resolver) resolveJumps() int {
	created := 0
	for _, pending := range r.jumps {
		target, ok := r.entriesByPin[pending.jump.Target.PinRef]
		if !ok {
			r.diagnostics.Warn(common.WarnJumpTargetMissing, pending.jump.ID,
				pending.jump.Target.IDRef, pending.jump.Target.PinRef)
			continue
		}
		r.link(pending.entry, target, database.PriorityNormal)
		r.markUsed(target)
		created++
	}
	return created
}

func (r *resolver) link(origin, destination *database.DialogueEntry, priority database.Priority) {
	link := origin.AddLink(destination, priority)
	r.diagnostics.Debug(common.DebugLinkCreated, link.OriginConversationID, link.OriginDialogueID,
		link.DestinationConversationID, link.DestinationDialogueID, link.Priority)
}

// pruneUnused removes every output entry that nothing linked to and
// returns how many were removed.
func (r *resolver) pruneUnused(db *database.Database) int {
	removed := 0
	for _, entry := range r.unused {
		conversation := db.Conversation(entry.ConversationID)
		if conversation == nil {
			continue
		}
		if conversation.RemoveEntry(entry) {
			r.diagnostics.Debug(common.DebugEntryPruned, entry.ConversationID, entry.ID)
			removed++
		}
	}
	r.unused = nil
	return removed
}
