package enum

import (
	"reflect"
	"testing"
)

func TestIsValid_DeclaredMembers(t *testing.T) {
	for _, v := range AgentTypes() {
		if !v.IsValid() {
			t.Errorf("AgentType %q should be valid", v)
		}
	}
	for _, v := range AgentSpecializations() {
		if !v.IsValid() {
			t.Errorf("AgentSpecialization %q should be valid", v)
		}
	}
	for _, v := range RewardStructures() {
		if !v.IsValid() {
			t.Errorf("RewardStructure %q should be valid", v)
		}
	}
	for _, v := range UserRoles() {
		if !v.IsValid() {
			t.Errorf("UserRole %q should be valid", v)
		}
	}
}

func TestIsValid_Unknown(t *testing.T) {
	if AgentType("Robotic").IsValid() {
		t.Error("unknown agent type accepted")
	}
	if AgentSpecialization("data analysis").IsValid() {
		t.Error("enum match must be case-sensitive")
	}
	if RewardStructure("").IsValid() {
		t.Error("empty reward structure accepted")
	}
	if UserRole("Root").IsValid() {
		t.Error("unknown role accepted")
	}
}

func TestValues(t *testing.T) {
	got := Values(SetAgentSpecialization)
	want := []string{"Sales", "Support", "Marketing", "Data Analysis", "HR"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Values(%q) = %v, want %v", SetAgentSpecialization, got, want)
	}
	if Values("colour") != nil {
		t.Error("unknown set should return nil")
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		set, v string
		want   bool
	}{
		{SetAgentType, "Retrieval-based", true},
		{SetAgentType, "Retrieval", false},
		{SetRewardStructure, "Performance-based", true},
		{SetUserRole, "Viewer", true},
		{SetUserRole, "viewer", false},
		{"nope", "Viewer", false},
	}
	for _, tc := range tests {
		if got := Contains(tc.set, tc.v); got != tc.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", tc.set, tc.v, got, tc.want)
		}
	}
}

func TestAllListsAreFresh(t *testing.T) {
	a := AgentTypes()
	a[0] = "mutated"
	if AgentTypes()[0] != Conversational {
		t.Error("AgentTypes must return a fresh slice")
	}
}

func TestDedup(t *testing.T) {
	in := []UserRole{Viewer, Administrator, Viewer, Analyst, Administrator}
	got := Dedup(in)
	want := []UserRole{Viewer, Administrator, Analyst}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedup = %v, want %v", got, want)
	}
	if len(in) != 5 {
		t.Error("Dedup must not modify its input")
	}
	if got := Dedup([]UserRole{}); len(got) != 0 || got == nil {
		t.Errorf("Dedup(empty) = %#v, want empty non-nil", got)
	}
}
