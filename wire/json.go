package wire

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes an InnerToolResult while preserving the concrete
// ContentBlock types stored in Output via an explicit Kind discriminator, so
// a round trip through a session.Store backed by JSON (as inmem.Store is)
// does not collapse TextBlock/ToolUseBlock into untyped maps.
func (r InnerToolResult) MarshalJSON() ([]byte, error) {
	type alias struct {
		ID       string         `json:"ID"`
		Name     string         `json:"Name"`
		Output   []any          `json:"Output,omitempty"`
		Metadata map[string]any `json:"Metadata,omitempty"`
	}
	out := alias{ID: r.ID, Name: r.Name, Metadata: r.Metadata}
	if len(r.Output) > 0 {
		out.Output = make([]any, 0, len(r.Output))
		for i, b := range r.Output {
			enc, err := encodeContentBlock(b)
			if err != nil {
				return nil, fmt.Errorf("encode output[%d]: %w", i, err)
			}
			out.Output = append(out.Output, enc)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an InnerToolResult while materializing concrete
// ContentBlock implementations in Output.
func (r *InnerToolResult) UnmarshalJSON(data []byte) error {
	type alias struct {
		ID       string
		Name     string
		Output   []json.RawMessage
		Metadata map[string]any
	}
	var tmp alias
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	r.ID = tmp.ID
	r.Name = tmp.Name
	r.Metadata = tmp.Metadata
	if len(tmp.Output) == 0 {
		r.Output = nil
		return nil
	}
	r.Output = make([]ContentBlock, 0, len(tmp.Output))
	for i, raw := range tmp.Output {
		block, err := decodeContentBlock(raw)
		if err != nil {
			return fmt.Errorf("decode output[%d]: %w", i, err)
		}
		r.Output = append(r.Output, block)
	}
	return nil
}

// MarshalJSON encodes a ToolResult the same way InnerToolResult does, for
// callers that serialize the core's own result blocks (e.g. an outer
// transport layer) rather than only the inner ones staged for injection.
func (t ToolResult) MarshalJSON() ([]byte, error) {
	type alias struct {
		ID       string         `json:"ID"`
		Name     string         `json:"Name"`
		Output   []any          `json:"Output,omitempty"`
		Metadata map[string]any `json:"Metadata,omitempty"`
		Error    *ToolError     `json:"Error,omitempty"`
	}
	out := alias{ID: t.ID, Name: t.Name, Metadata: t.Metadata, Error: t.Error}
	if len(t.Output) > 0 {
		out.Output = make([]any, 0, len(t.Output))
		for i, b := range t.Output {
			enc, err := encodeContentBlock(b)
			if err != nil {
				return nil, fmt.Errorf("encode output[%d]: %w", i, err)
			}
			out.Output = append(out.Output, enc)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a ToolResult while materializing concrete
// ContentBlock implementations in Output.
func (t *ToolResult) UnmarshalJSON(data []byte) error {
	type alias struct {
		ID       string
		Name     string
		Output   []json.RawMessage
		Metadata map[string]any
		Error    *ToolError
	}
	var tmp alias
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	t.ID = tmp.ID
	t.Name = tmp.Name
	t.Metadata = tmp.Metadata
	t.Error = tmp.Error
	if len(tmp.Output) == 0 {
		t.Output = nil
		return nil
	}
	t.Output = make([]ContentBlock, 0, len(tmp.Output))
	for i, raw := range tmp.Output {
		block, err := decodeContentBlock(raw)
		if err != nil {
			return fmt.Errorf("decode output[%d]: %w", i, err)
		}
		t.Output = append(t.Output, block)
	}
	return nil
}

func encodeContentBlock(b ContentBlock) (any, error) {
	switch v := b.(type) {
	case TextBlock:
		return struct {
			Kind string `json:"Kind"`
			TextBlock
		}{Kind: "text", TextBlock: v}, nil
	case ToolUseBlock:
		return struct {
			Kind string `json:"Kind"`
			ToolUseBlock
		}{Kind: "tool_use", ToolUseBlock: v}, nil
	default:
		return nil, fmt.Errorf("wire: unknown content block type %T", b)
	}
}

func decodeContentBlock(raw json.RawMessage) (ContentBlock, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decode content block object: %w", err)
	}
	kindRaw, ok := obj["Kind"]
	if !ok {
		return nil, fmt.Errorf("content block missing Kind discriminator")
	}
	var kind string
	if err := json.Unmarshal(kindRaw, &kind); err != nil {
		return nil, fmt.Errorf("decode Kind: %w", err)
	}
	switch kind {
	case "text":
		var tb TextBlock
		if err := json.Unmarshal(raw, &tb); err != nil {
			return nil, fmt.Errorf("decode TextBlock: %w", err)
		}
		return tb, nil
	case "tool_use":
		var tu ToolUseBlock
		if err := json.Unmarshal(raw, &tu); err != nil {
			return nil, fmt.Errorf("decode ToolUseBlock: %w", err)
		}
		return tu, nil
	default:
		return nil, fmt.Errorf("wire: unknown content block kind %q", kind)
	}
}
