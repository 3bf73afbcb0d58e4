package diagram

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Terminal styles for the report. Governing members get the same red as in
// the figure.
var (
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ccff"))

	Governing = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#dc1414"))

	Safe = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#14963c"))

	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899"))
)

// MemberStatus renders a one-line status for a member
func MemberStatus(m MemberData) string {
	if m.Governs {
		return Governing.Render(fmt.Sprintf("✗ %s fails first (max load %.3f kips)", m.Name, m.MaxLoad))
	}
	return Safe.Render(fmt.Sprintf("✓ %s holds (safety factor %.3f)", m.Name, m.SafetyFactor))
}
