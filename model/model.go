// Package model defines the minimal provider-agnostic message shape threaded
// through the sub-agent coordinator. It deliberately carries far less than a
// full model-provider message format (no citations, thinking, image, or
// document parts): those concerns belong to the wrapped reasoning/acting
// engine, which the embedding application supplies.
package model

import "goa.design/subagent/wire"

// ConversationRole is the role for a message in a conversation.
type ConversationRole string

const (
	// ConversationRoleSystem is the role for system messages.
	ConversationRoleSystem ConversationRole = "system"
	// ConversationRoleUser is the role for user messages.
	ConversationRoleUser ConversationRole = "user"
	// ConversationRoleAssistant is the role for assistant messages.
	ConversationRoleAssistant ConversationRole = "assistant"
)

type (
	// Part is a marker interface implemented by every message content block
	// the coordinator threads through to the wrapped agent.
	Part interface {
		isPart()
	}

	// TextPart is a plain-text content block.
	TextPart struct {
		Text string
	}

	// ToolResultPart carries one injected inner tool result, addressed at the
	// wrapped agent's pending tool-use declaration.
	ToolResultPart struct {
		// ToolUseID correlates this part to the sub-agent's prior ToolUseBlock.
		ToolUseID string
		// Content is the result payload.
		Content any
		// IsError reports whether Content represents a tool failure.
		IsError bool
	}

	// Message is a single message in the conversation handed to the wrapped
	// agent.
	Message struct {
		Role  ConversationRole
		Parts []Part
	}
)

func (TextPart) isPart()       {}
func (ToolResultPart) isPart() {}

// NewTextMessage builds a single-part text message for the given role.
// Returns nil when text is empty so callers never append empty text parts.
func NewTextMessage(role ConversationRole, text string) *Message {
	if text == "" {
		return nil
	}
	return &Message{Role: role, Parts: []Part{TextPart{Text: text}}}
}

// NewToolResultMessage builds a single user message carrying one
// ToolResultPart built from an injected wire.InnerToolResult. The content is
// the concatenation of the result's text blocks; IsError is true when the
// result metadata marks it so.
func NewToolResultMessage(result wire.InnerToolResult) *Message {
	var text string
	for _, block := range result.Output {
		if tb, ok := block.(wire.TextBlock); ok {
			text += tb.Text
		}
	}
	isError, _ := result.Metadata["is_error"].(bool)
	return &Message{
		Role: ConversationRoleUser,
		Parts: []Part{ToolResultPart{
			ToolUseID: result.ID,
			Content:   text,
			IsError:   isError,
		}},
	}
}
