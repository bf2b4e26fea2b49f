package service

import (
	"fmt"
	"strings"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
)

const brainstormingBrief = "The user is currently in a brainstorming phase with no fixed brand name or industry yet."

// RenderBrief renders the plain-text context the branding assistant is given
// about the active project.
func RenderBrief(project *domain.Project) string {
	if project == nil {
		return brainstormingBrief
	}

	lines := []string{
		fmt.Sprintf("The active brand is %q operating in the %q industry.",
			domain.Deref(project.Name), domain.Deref(project.Industry)),
		fmt.Sprintf("Core Description: %q.", domain.Deref(project.Description)),
	}
	if project.Tagline != nil && *project.Tagline != "" {
		lines = append(lines, fmt.Sprintf("Tagline: %q.", *project.Tagline))
	}
	if project.Strategy != nil {
		lines = append(lines, fmt.Sprintf("Current Strategy: %s.", project.Strategy.Mission))
		if len(project.Strategy.Values) > 0 {
			lines = append(lines, "Values: "+strings.Join(project.Strategy.Values, ", ")+".")
		}
	}
	if len(project.Colors) > 0 {
		lines = append(lines, "Palette: "+strings.Join(project.Colors, ", ")+".")
	}
	return strings.Join(lines, "\n")
}

// RenderStrategyText renders a strategy as labelled plain text.
func RenderStrategyText(s *domain.Strategy) string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "MISSION: %s\n", s.Mission)
	fmt.Fprintf(&b, "VISION: %s", s.Vision)
	if len(s.Values) > 0 {
		b.WriteString("\nVALUES:")
		for _, v := range s.Values {
			b.WriteString("\n- " + v)
		}
	}
	return b.String()
}

// AssistantGreeting is the first assistant message shown for a project.
func AssistantGreeting(project *domain.Project) string {
	name := "your brand"
	if project != nil && domain.Deref(project.Name) != "" {
		name = *project.Name
	}
	return fmt.Sprintf("Hello! I'm your BrandCraft Assistant. Ready to build a legacy for %s?", name)
}
