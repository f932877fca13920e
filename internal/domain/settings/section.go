package settings

import (
	"fmt"

	"github.com/kailas-cloud/agentdesk/internal/domain"
)

// Section names one sub-document of SystemSettings.
type Section string

// Section constants, matching their URL path segment.
const (
	SectionAgentParameters    Section = "agent-parameters"
	SectionResourceManagement Section = "resource-management"
	SectionAccessPermissions  Section = "access-permissions"
)

// Sections returns all section names in document order.
func Sections() []Section {
	return []Section{SectionAgentParameters, SectionResourceManagement, SectionAccessPermissions}
}

// ParseSection resolves a section name. Unknown names wrap domain.ErrNotFound.
func ParseSection(name string) (Section, error) {
	s := Section(name)
	if !s.IsValid() {
		return "", fmt.Errorf("settings section %q: %w", name, domain.ErrNotFound)
	}
	return s, nil
}

// IsValid checks if the section is one of the declared names.
func (s Section) IsValid() bool {
	return s == SectionAgentParameters || s == SectionResourceManagement || s == SectionAccessPermissions
}
