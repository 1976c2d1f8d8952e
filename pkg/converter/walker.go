package converter

import (
	"fmt"
	"strings"

	"github.com/hansbonini/dialoguetools/pkg/common"
	"github.com/hansbonini/dialoguetools/pkg/database"
	"github.com/hansbonini/dialoguetools/pkg/project"
)

// frame records what a node pushed so that leaving it pops exactly that.
type frame struct {
	flowName     bool
	conversation bool
}

func (c *conversion) pushFlowName(name string) {
	c.flowNames = append(c.flowNames, name)
}

func (c *conversion) pushConversation(conversation *database.Conversation) {
	c.conversations = append(c.conversations, conversation)
}

func (c *conversion) currentConversation() *database.Conversation {
	if len(c.conversations) == 0 {
		return nil
	}
	return c.conversations[len(c.conversations)-1]
}

func (c *conversion) pop(f frame) {
	if f.conversation && len(c.conversations) > 0 {
		c.conversations = c.conversations[:len(c.conversations)-1]
	}
	if f.flowName && len(c.flowNames) > 0 {
		c.flowNames = c.flowNames[:len(c.flowNames)-1]
	}
}

func (c *conversion) resetStacks() {
	c.flowNames = nil
	c.conversations = nil
}

// prependFlowPath prefixes the conversation title with the flow fragment
// names on the stack, as in "Act 1/Village/Title".
func (c *conversion) prependFlowPath(conversation *database.Conversation) {
	mode := c.prefs.FlowFragmentMode
	if mode != FlowFragmentConversationGroups && mode != FlowFragmentNestedConversationGroups {
		return
	}
	if len(c.flowNames) == 0 {
		return
	}
	conversation.SetTitle(strings.Join(c.flowNames, "/") + "/" + conversation.Title())
}

// walk visits node and its subtree depth first.
func (c *conversion) walk(node *project.Node, depth int) error {
	if node == nil {
		return nil
	}
	if depth > c.maxDepth {
		return NewConversionError(ErrorKindRecursionDepth,
			fmt.Sprintf(common.ErrMaxRecursionDepth, c.maxDepth, node.ID), ErrRecursionDepthExceeded)
	}
	if node.Type == project.NodeDialogue && !c.includes(node.ID) {
		return nil
	}
	c.diagnostics.Debug(common.DebugNodeVisited, node.Type, node.ID, depth)

	f := c.enter(node)
	defer c.pop(f)

	for _, child := range node.Nodes {
		if err := c.walk(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// enter builds the entries for node and pushes its context.
func (c *conversion) enter(node *project.Node) frame {
	var f frame
	switch node.Type {
	case project.NodeFlowFragment:
		f = c.enterFlowFragment(node)
	case project.NodeDialogue:
		conversation := c.dialogueConversations[node.ID]
		if conversation == nil {
			c.diagnostics.Warn(common.WarnConversationMissing, node.ID)
			break
		}
		c.pushConversation(conversation)
		f.conversation = true
		c.prependFlowPath(conversation)
	case project.NodeDialogueFragment:
		if conversation := c.activeConversation(node); conversation != nil {
			if fragment := c.project.DialogueFragment(node.ID); fragment != nil {
				c.buildDialogueFragment(conversation, fragment)
			} else {
				c.warnMissing(node)
			}
		}
	case project.NodeHub:
		if conversation := c.activeConversation(node); conversation != nil {
			if hub := c.project.Hub(node.ID); hub != nil {
				c.buildHub(conversation, hub)
			} else {
				c.warnMissing(node)
			}
		}
	case project.NodeJump:
		if conversation := c.activeConversation(node); conversation != nil {
			if jump := c.project.Jump(node.ID); jump != nil {
				c.buildJump(conversation, jump)
			} else {
				c.warnMissing(node)
			}
		}
	case project.NodeCondition:
		if conversation := c.activeConversation(node); conversation != nil {
			if condition := c.project.Condition(node.ID); condition != nil {
				c.buildCondition(conversation, condition)
			} else {
				c.warnMissing(node)
			}
		}
	case project.NodeInstruction:
		if conversation := c.activeConversation(node); conversation != nil {
			if instruction := c.project.Instruction(node.ID); instruction != nil {
				c.buildInstruction(conversation, instruction)
			} else {
				c.warnMissing(node)
			}
		}
	}
	return f
}

// enterFlowFragment nests a conversation, adds a passthrough entry or opens
// a loose-flow conversation, depending on the mode and on whether a
// conversation is active. The fragment's name is pushed afterwards, so a
// conversation it opens is titled by its enclosing fragments only.
func (c *conversion) enterFlowFragment(node *project.Node) frame {
	if c.prefs.FlowFragmentMode == FlowFragmentIgnore {
		return frame{}
	}
	flowFragment := c.project.FlowFragment(node.ID)
	f := c.openFlowFragment(node, flowFragment)
	if flowFragment != nil {
		c.pushFlowName(flowFragment.DisplayName.Default())
		f.flowName = true
	}
	return f
}

func (c *conversion) openFlowFragment(node *project.Node, flowFragment *project.FlowFragment) frame {
	var f frame
	if parent := c.currentConversation(); parent != nil {
		switch {
		case flowFragment == nil:
			c.warnMissing(node)
		case c.prefs.FlowFragmentMode == FlowFragmentNestedConversationGroups:
			conversation := c.createFlowFragmentConversation(flowFragment, false)
			c.prependFlowPath(conversation)
			c.pushConversation(conversation)
			f.conversation = true
		default:
			c.addFlowFragmentEntry(parent, flowFragment)
		}
		return f
	}

	if c.prefs.CreateConversationsForLooseFlow {
		if flowFragment == nil {
			c.diagnostics.Warn(common.WarnLooseFlowMissing, node.ID)
			return f
		}
		conversation := c.createFlowFragmentConversation(flowFragment, true)
		c.prependFlowPath(conversation)
		c.pushConversation(conversation)
		f.conversation = true
	}
	return f
}

func (c *conversion) activeConversation(node *project.Node) *database.Conversation {
	conversation := c.currentConversation()
	if conversation == nil {
		c.diagnostics.Warn(common.WarnNoActiveConversation, node.Type, node.ID)
	}
	return conversation
}

func (c *conversion) warnMissing(node *project.Node) {
	c.diagnostics.Warn(common.WarnElementMissing, node.Type, node.ID)
}
