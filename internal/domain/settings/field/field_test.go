package field

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/agentdesk/internal/domain"
	"github.com/kailas-cloud/agentdesk/internal/domain/settings/enum"
)

func mustValidationError(t *testing.T, err error, field string) *domain.ValidationError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error for %s", field)
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Field != field {
		t.Errorf("Field = %q, want %q", ve.Field, field)
	}
	return ve
}

func TestValidate_RateBoundaries(t *testing.T) {
	for _, name := range []string{DefaultLearningRate, DefaultExplorationRate} {
		for _, ok := range []float64{0.01, 0.5, 1.0} {
			got, err := Validate(name, ok)
			if err != nil {
				t.Errorf("Validate(%s, %v) unexpected error: %v", name, ok, err)
				continue
			}
			if got != ok {
				t.Errorf("Validate(%s, %v) = %v, want value unchanged", name, ok, got)
			}
		}
		for _, bad := range []float64{0.009, 1.01, 0, -1} {
			_, err := Validate(name, bad)
			ve := mustValidationError(t, err, name)
			if ve.Allowed != "[0.01, 1.0]" {
				t.Errorf("Allowed = %q, want [0.01, 1.0]", ve.Allowed)
			}
			if ve.Value != bad {
				t.Errorf("Value = %v, want %v", ve.Value, bad)
			}
		}
	}
}

func TestValidate_NonNegativeFloats(t *testing.T) {
	for _, name := range []string{MaxComputeUsage, MaxStorageUsage, CostPerComputeHour, CostPerGBStorage} {
		if _, err := Validate(name, 0.0); err != nil {
			t.Errorf("%s: 0 should be accepted: %v", name, err)
		}
		if _, err := Validate(name, 123.45); err != nil {
			t.Errorf("%s: 123.45 should be accepted: %v", name, err)
		}
		_, err := Validate(name, -0.001)
		mustValidationError(t, err, name)
	}
}

func TestValidate_Ints(t *testing.T) {
	if _, err := Validate(MaxTokensPerResponse, 1); err != nil {
		t.Errorf("max_tokens 1: %v", err)
	}
	_, err := Validate(MaxTokensPerResponse, 0)
	ve := mustValidationError(t, err, MaxTokensPerResponse)
	if ve.Allowed != ">= 1" {
		t.Errorf("Allowed = %q, want >= 1", ve.Allowed)
	}

	if _, err := Validate(APIRateLimit, 0); err != nil {
		t.Errorf("api_rate_limit 0: %v", err)
	}
	_, err = Validate(APIRateLimit, -5)
	mustValidationError(t, err, APIRateLimit)

	// Whole floats are accepted as ints (JSON numbers), fractional ones are not.
	if _, err := Validate(APIRateLimit, 250.0); err != nil {
		t.Errorf("api_rate_limit 250.0: %v", err)
	}
	_, err = Validate(APIRateLimit, 2.5)
	mustValidationError(t, err, APIRateLimit)
}

func TestValidate_UnsignedInts(t *testing.T) {
	if _, err := Validate(APIRateLimit, uint(5)); err != nil {
		t.Errorf("api_rate_limit uint(5): %v", err)
	}
	if _, err := Validate(MaxTokensPerResponse, uint32(512)); err != nil {
		t.Errorf("max_tokens uint32(512): %v", err)
	}
	if _, err := Validate(MaxComputeUsage, uint64(100)); err != nil {
		t.Errorf("max_compute_usage uint64(100): %v", err)
	}

	_, err := Validate(MaxTokensPerResponse, uint(0))
	mustValidationError(t, err, MaxTokensPerResponse)

	// Does not fit in int64.
	_, err = Validate(APIRateLimit, ^uint64(0))
	mustValidationError(t, err, APIRateLimit)
}

func TestValidate_Enum(t *testing.T) {
	for _, r := range enum.RewardStructures() {
		if _, err := Validate(RewardStructure, r); err != nil {
			t.Errorf("reward %q: %v", r, err)
		}
		if _, err := Validate(RewardStructure, string(r)); err != nil {
			t.Errorf("reward string %q: %v", r, err)
		}
	}
	_, err := Validate(RewardStructure, "Bonus")
	ve := mustValidationError(t, err, RewardStructure)
	if !strings.Contains(ve.Allowed, "Performance-based") {
		t.Errorf("Allowed = %q, want the reward set", ve.Allowed)
	}
}

func TestValidate_EnumSet(t *testing.T) {
	all := enum.AgentSpecializations()
	if _, err := Validate(EnabledAgentSpecializations, all); err != nil {
		t.Errorf("all specializations: %v", err)
	}
	if _, err := Validate(EnabledAgentSpecializations, []string{"Data Analysis"}); err != nil {
		t.Errorf("member with a space: %v", err)
	}
	if _, err := Validate(EnabledAgentTypes, []enum.AgentType{}); err != nil {
		t.Errorf("empty set: %v", err)
	}

	_, err := Validate(EnabledUserRoles, []string{"Viewer", "Root"})
	ve := mustValidationError(t, err, EnabledUserRoles)
	if ve.Value != "Root" {
		t.Errorf("Value = %v, want the offending member Root", ve.Value)
	}
	if !strings.HasPrefix(ve.Allowed, "subset of [") {
		t.Errorf("Allowed = %q", ve.Allowed)
	}
}

func TestValidate_Bool(t *testing.T) {
	if _, err := Validate(EnableAPIAccess, false); err != nil {
		t.Errorf("bool: %v", err)
	}
	_, err := Validate(EnableLogging, "yes")
	mustValidationError(t, err, EnableLogging)
}

func TestValidate_WrongType(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{DefaultLearningRate, "0.5"},
		{MaxTokensPerResponse, true},
		{RewardStructure, 3},
		{EnabledAgentTypes, "Generative"},
		{MaxComputeUsage, nil},
	}
	for _, tc := range tests {
		_, err := Validate(tc.name, tc.value)
		mustValidationError(t, err, tc.name)
	}
}

func TestValidate_UnknownField(t *testing.T) {
	_, err := Validate("max_gpu_usage", 1.0)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDefaults_SatisfyConstraints(t *testing.T) {
	for _, c := range All() {
		if _, err := Validate(c.Name, c.Default()); err != nil {
			t.Errorf("default of %s violates its own constraint: %v", c.Name, err)
		}
	}
}

func TestDefaultOf_FreshSlices(t *testing.T) {
	a := DefaultOf[[]enum.UserRole](EnabledUserRoles)
	a[0] = enum.Viewer
	b := DefaultOf[[]enum.UserRole](EnabledUserRoles)
	if b[0] != enum.Administrator {
		t.Error("defaults must not share slices between calls")
	}
}

func TestLookup(t *testing.T) {
	c, ok := Lookup(APIRateLimit)
	if !ok {
		t.Fatal("api_rate_limit not registered")
	}
	if c.Kind != Int {
		t.Errorf("Kind = %v, want Int", c.Kind)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("unknown field found")
	}
	if len(All()) != 14 {
		t.Errorf("expected 14 fields, got %d", len(All()))
	}
}
