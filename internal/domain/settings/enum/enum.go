// Package enum holds the closed value sets used by system settings.
package enum

import "slices"

// AgentType is a kind of agent that may be enabled system-wide.
type AgentType string

// Agent type constants.
const (
	Conversational AgentType = "Conversational"
	RetrievalBased AgentType = "Retrieval-based"
	Generative     AgentType = "Generative"
	Analytical     AgentType = "Analytical"
)

// AgentSpecialization is a business area an agent may be specialized in.
type AgentSpecialization string

// Agent specialization constants.
const (
	Sales        AgentSpecialization = "Sales"
	Support      AgentSpecialization = "Support"
	Marketing    AgentSpecialization = "Marketing"
	DataAnalysis AgentSpecialization = "Data Analysis"
	HR           AgentSpecialization = "HR"
)

// RewardStructure is the reward scheme applied to agents.
type RewardStructure string

// Reward structure constants.
const (
	Fixed            RewardStructure = "Fixed"
	Variable         RewardStructure = "Variable"
	PerformanceBased RewardStructure = "Performance-based"
)

// UserRole is a role a user can hold in the system.
type UserRole string

// User role constants.
const (
	Administrator UserRole = "Administrator"
	Developer     UserRole = "Developer"
	Analyst       UserRole = "Analyst"
	Viewer        UserRole = "Viewer"
)

// Set names, used as validator rule parameters.
const (
	SetAgentType           = "agent_type"
	SetAgentSpecialization = "agent_specialization"
	SetRewardStructure     = "reward_structure"
	SetUserRole            = "user_role"
)

// AgentTypes returns all agent types in declaration order.
func AgentTypes() []AgentType {
	return []AgentType{Conversational, RetrievalBased, Generative, Analytical}
}

// AgentSpecializations returns all specializations in declaration order.
func AgentSpecializations() []AgentSpecialization {
	return []AgentSpecialization{Sales, Support, Marketing, DataAnalysis, HR}
}

// RewardStructures returns all reward structures in declaration order.
func RewardStructures() []RewardStructure {
	return []RewardStructure{Fixed, Variable, PerformanceBased}
}

// UserRoles returns all user roles in declaration order.
func UserRoles() []UserRole {
	return []UserRole{Administrator, Developer, Analyst, Viewer}
}

// IsValid reports whether t is a declared agent type.
func (t AgentType) IsValid() bool { return slices.Contains(AgentTypes(), t) }

// IsValid reports whether s is a declared specialization.
func (s AgentSpecialization) IsValid() bool { return slices.Contains(AgentSpecializations(), s) }

// IsValid reports whether r is a declared reward structure.
func (r RewardStructure) IsValid() bool { return slices.Contains(RewardStructures(), r) }

// IsValid reports whether r is a declared user role.
func (r UserRole) IsValid() bool { return slices.Contains(UserRoles(), r) }

// Values returns the members of the named set as strings, or nil for an unknown set.
func Values(set string) []string {
	switch set {
	case SetAgentType:
		return toStrings(AgentTypes())
	case SetAgentSpecialization:
		return toStrings(AgentSpecializations())
	case SetRewardStructure:
		return toStrings(RewardStructures())
	case SetUserRole:
		return toStrings(UserRoles())
	default:
		return nil
	}
}

// Contains reports whether v is a member of the named set.
func Contains(set, v string) bool {
	return slices.Contains(Values(set), v)
}

// Dedup removes repeated members, keeping the first occurrence of each.
// It always returns a new slice.
func Dedup[T comparable](in []T) []T {
	out := make([]T, 0, len(in))
	seen := make(map[T]struct{}, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
