package subagent

import "strings"

// deriveName derives the default tool name: lowercase the agent's display
// name, replace every non-alphanumeric rune with '_', and prefix "call_".
// An empty name derives to "call_agent".
func deriveName(agentName string) string {
	if agentName == "" {
		return "call_agent"
	}
	var b strings.Builder
	b.Grow(len(agentName) + 5)
	b.WriteString("call_")
	for _, r := range strings.ToLower(agentName) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// deriveDescription falls back to the agent's own description, then to a
// generic line naming the agent.
func deriveDescription(agentDescription, agentName string) string {
	if agentDescription != "" {
		return agentDescription
	}
	if agentName == "" {
		agentName = "agent"
	}
	return "Call " + agentName + " to complete tasks"
}
