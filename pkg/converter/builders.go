package converter

import (
	"strings"

	"github.com/hansbonini/dialoguetools/pkg/common"
	"github.com/hansbonini/dialoguetools/pkg/database"
	"github.com/hansbonini/dialoguetools/pkg/expr"
	"github.com/hansbonini/dialoguetools/pkg/project"
)

// FieldConversantEntity names the feature field that picks a fragment's
// listener.
const FieldConversantEntity = "ConversantEntity"

const (
	flowEntryPrefix = "Flow: "
	// jumpFlowEntryOffset places the flow entry of a jump below the jump.
	jumpFlowEntryOffset = 32
	conditionOutputStep = 2
)

// newEntry appends a template entry to conversation.
func (c *conversion) newEntry(conversation *database.Conversation, title, articyID string) *database.DialogueEntry {
	entry := c.template.CreateDialogueEntry(c.nextEntryID(conversation), conversation.ID, title)
	entry.ActorID = conversation.ConversantID
	entry.ConversantID = conversation.ActorID
	entry.Fields.Set(FieldArticyID, articyID, database.FieldTypeText)
	conversation.Entries = append(conversation.Entries, entry)
	c.diagnostics.Debug(common.DebugEntryCreated, conversation.ID, entry.ID, title)
	return entry
}

func (c *conversion) buildDialogueFragment(conversation *database.Conversation, fragment *project.DialogueFragment) {
	entry := c.newEntry(conversation, fragment.DisplayName.Default(), fragment.ID)
	entry.Canvas = database.NewCanvasRect(fragment.Position.X, fragment.Position.Y)
	setLocalizableText(&entry.Fields, database.FieldDialogueText, fragment.Text, true)
	setLocalizableText(&entry.Fields, database.FieldMenuText, fragment.MenuText, true)
	setLocalizableText(&entry.Fields, database.FieldTitle, fragment.DisplayName, false)
	c.setFeatureFields(&entry.Fields, fragment.Features, nil)

	switch c.prefs.StageDirectionsMode {
	case StageDirectionsSequences:
		if directions := fragment.StageDirections.Default(); strings.Contains(directions, "(") || strings.Contains(directions, "{{") {
			setLocalizableText(&entry.Fields, database.FieldSequence, fragment.StageDirections, false)
		}
	case StageDirectionsDescription:
		entry.Fields.Set(database.FieldDescription, fragment.StageDirections.Default(), database.FieldTypeText)
	}
	c.moveScriptField(entry)

	switch actor := c.findActorByArticyID(fragment.SpeakerIDRef); {
	case actor != nil:
		entry.ActorID = actor.ID
	case c.prefs.UseDefaultActors:
		entry.ActorID = conversation.ActorID
	default:
		entry.ActorID = 0
	}

	conversant := c.findConversant(entry.Fields.LookupValue(FieldConversantEntity))
	switch {
	case conversant != nil:
		entry.ConversantID = conversant.ID
	case c.prefs.UseDefaultActors && entry.ActorID == conversation.ActorID:
		entry.ConversantID = conversation.ConversantID
	case c.prefs.UseDefaultActors:
		entry.ConversantID = conversation.ActorID
	default:
		entry.ConversantID = 0
	}

	c.applyPinExpressions(entry, fragment.Pins, true, true)
	c.resolver.registerPins(fragment.Pins, entry)
}

// findConversant resolves a ConversantEntity value the way ConvertSlotsAs
// says it is written.
func (c *conversion) findConversant(value string) *database.Actor {
	if value == "" {
		return nil
	}
	switch c.prefs.ConvertSlotsAs {
	case ConvertSlotsTechnicalName:
		return c.findActorByField(FieldTechnicalName, value)
	case ConvertSlotsDisplayName:
		return c.findActorByField(database.FieldName, value)
	default:
		return c.findActorByArticyID(value)
	}
}

// addFlowFragmentEntry adds a group entry standing for a flow fragment
// nested in a conversation.
func (c *conversion) addFlowFragmentEntry(conversation *database.Conversation, flowFragment *project.FlowFragment) *database.DialogueEntry {
	entry := c.newEntry(conversation, flowFragment.DisplayName.Default(), flowFragment.ID)
	entry.Canvas = database.NewCanvasRect(flowFragment.Position.X, flowFragment.Position.Y)
	setLocalizableText(&entry.Fields, database.FieldTitle, flowFragment.DisplayName, false)
	entry.SetTitle(flowEntryPrefix + entry.Title())
	c.setFeatureFields(&entry.Fields, flowFragment.Features, nil)
	c.moveScriptField(entry)
	entry.ActorID = conversation.ActorID
	entry.ConversantID = conversation.ConversantID

	if c.prefs.FlowFragmentScript != "" {
		name := strings.ReplaceAll(flowFragment.DisplayName.Default(), `"`, "'")
		entry.UserScript = expr.JoinScripts(entry.UserScript, c.prefs.FlowFragmentScript+`("`+name+`")`)
	}
	entry.IsGroup = true
	c.applyPinExpressions(entry, flowFragment.Pins, true, true)
	c.resolver.registerPins(flowFragment.Pins, entry)
	return entry
}

func (c *conversion) buildHub(conversation *database.Conversation, hub *project.Hub) {
	entry := c.newEntry(conversation, hub.DisplayName.Default(), hub.ID)
	entry.Canvas = database.NewCanvasRect(hub.Position.X, hub.Position.Y)
	c.setFeatureFields(&entry.Fields, hub.Features, nil)
	entry.IsGroup = true
	c.applyPinExpressions(entry, hub.Pins, true, true)
	c.resolver.registerPins(hub.Pins, entry)
}

// buildJump adds a group entry that is linked to the jump target after the
// walk. A jump onto a flow fragment also gets a "Flow:" entry carrying the
// fragment's pins, so connections into the fragment still resolve when the
// fragment itself produced no entry.
func (c *conversion) buildJump(conversation *database.Conversation, jump *project.Jump) {
	entry := c.newEntry(conversation, jump.DisplayName.Default(), jump.ID)
	entry.Canvas = database.NewCanvasRect(jump.Position.X, jump.Position.Y)
	c.setFeatureFields(&entry.Fields, jump.Features, nil)
	entry.IsGroup = true
	c.applyPinExpressions(entry, jump.Pins, true, true)
	c.resolver.registerPins(jump.Pins, entry)
	c.resolver.deferJump(jump, entry)

	flowFragment := c.project.FlowFragment(jump.Target.IDRef)
	if flowFragment == nil || !c.includes(flowFragment.ID) {
		return
	}
	flowEntry := c.newEntry(conversation, flowEntryPrefix+flowFragment.DisplayName.Default(), flowFragment.ID)
	flowEntry.Canvas = database.NewCanvasRect(jump.Position.X, jump.Position.Y+jumpFlowEntryOffset)
	c.setFeatureFields(&flowEntry.Fields, flowFragment.Features, nil)
	flowEntry.IsGroup = true
	c.applyPinExpressions(flowEntry, flowFragment.Pins, true, true)
	c.resolver.registerPins(flowFragment.Pins, flowEntry)
}

// buildCondition adds a test entry holding the input pin conditions and one
// group entry per output pin. The pin with index 0 is taken when the
// expression holds, any other index when it does not. Both are linked from
// the test entry directly.
func (c *conversion) buildCondition(conversation *database.Conversation, condition *project.Condition) {
	test := c.newEntry(conversation, condition.Expression, condition.ID)
	test.Canvas = database.NewCanvasRect(condition.Position.X, condition.Position.Y)
	// The expression lives on the branch entries only. On the test entry a
	// false result would stop traversal before the false branch is reached.
	test.IsGroup = true

	trueLua := c.translator.Translate(condition.Expression, true)
	falseLua := "false"
	if trueLua != "" {
		falseLua = "not (" + trueLua + ")"
	}

	for _, pin := range condition.Pins {
		if pin == nil {
			continue
		}
		switch pin.Semantic {
		case project.SemanticInput:
			test.ConditionsString = expr.JoinConditions(test.ConditionsString, c.translator.Translate(pin.Expression, true))
			c.resolver.registerPin(pin, test)
		case project.SemanticOutput:
			title, lua := condition.Expression, trueLua
			if pin.Index != 0 {
				title, lua = "!("+condition.Expression+")", falseLua
			}
			entry := c.newEntry(conversation, title, pin.ID)
			entry.Canvas = database.NewCanvasRect(condition.Position.X, condition.Position.Y+float64(pin.Index+1)*conditionOutputStep)
			entry.IsGroup = true
			entry.ConditionsString = lua
			entry.UserScript = expr.JoinScripts(entry.UserScript, c.translator.Translate(pin.Expression, false))
			test.AddLink(entry, database.PriorityNormal)
			c.resolver.registerPin(pin, entry)
		default:
			c.diagnostics.Warn(common.WarnUnexpectedPinSemantic, pin.Semantic, pin.ID)
		}
	}
}

// buildInstruction adds a non-group entry that runs the instruction as its
// user script and continues at once.
func (c *conversion) buildInstruction(conversation *database.Conversation, instruction *project.Instruction) {
	entry := c.newEntry(conversation, instruction.Expression, instruction.ID)
	entry.Canvas = database.NewCanvasRect(instruction.Position.X, instruction.Position.Y)
	entry.SetSequence(database.SequencerContinue)
	entry.UserScript = expr.JoinScripts("", c.translator.Translate(instruction.Expression, false))
	c.applyPinExpressions(entry, instruction.Pins, true, true)
	c.resolver.registerPins(instruction.Pins, entry)
}
