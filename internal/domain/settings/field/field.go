// Package field declares the constraint and default of every scalar settings field.
package field

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/agentdesk/internal/domain"
	"github.com/kailas-cloud/agentdesk/internal/domain/settings/enum"
)

// Kind is the value shape a field accepts.
type Kind int

// Field kinds.
const (
	Float Kind = iota
	Int
	Bool
	Enum
	EnumSet
)

// Field names as they appear on the wire.
const (
	DefaultLearningRate         = "default_learning_rate"
	DefaultExplorationRate      = "default_exploration_rate"
	EnabledAgentTypes           = "enabled_agent_types"
	EnabledAgentSpecializations = "enabled_agent_specializations"
	RewardStructure             = "reward_structure"
	MaxTokensPerResponse        = "max_tokens_per_response"

	MaxComputeUsage    = "max_compute_usage"
	MaxStorageUsage    = "max_storage_usage"
	CostPerComputeHour = "cost_per_compute_hour"
	CostPerGBStorage   = "cost_per_gb_storage"

	EnabledUserRoles = "enabled_user_roles"
	EnableAPIAccess  = "enable_api_access"
	APIRateLimit     = "api_rate_limit"
	EnableLogging    = "enable_logging"
)

const enumTag = "agentdesk_enum"

// Constraint describes one scalar field: its shape, rule, permitted domain and default.
type Constraint struct {
	Name    string
	Kind    Kind
	Rule    string // validator tag
	Allowed string // human-readable domain, reported in ValidationError
	Default func() any
}

var registry = []Constraint{
	{
		Name: DefaultLearningRate, Kind: Float, Rule: "gte=0.01,lte=1", Allowed: "[0.01, 1.0]",
		Default: func() any { return 0.1 },
	},
	{
		Name: DefaultExplorationRate, Kind: Float, Rule: "gte=0.01,lte=1", Allowed: "[0.01, 1.0]",
		Default: func() any { return 0.1 },
	},
	{
		Name: EnabledAgentTypes, Kind: EnumSet,
		Rule:    "dive," + enumTag + "=" + enum.SetAgentType,
		Allowed: subsetOf(enum.SetAgentType),
		Default: func() any { return []enum.AgentType{enum.Conversational, enum.RetrievalBased} },
	},
	{
		Name: EnabledAgentSpecializations, Kind: EnumSet,
		Rule:    "dive," + enumTag + "=" + enum.SetAgentSpecialization,
		Allowed: subsetOf(enum.SetAgentSpecialization),
		Default: func() any { return []enum.AgentSpecialization{enum.Sales, enum.Support} },
	},
	{
		Name: RewardStructure, Kind: Enum,
		Rule:    enumTag + "=" + enum.SetRewardStructure,
		Allowed: oneOf(enum.SetRewardStructure),
		Default: func() any { return enum.Fixed },
	},
	{
		Name: MaxTokensPerResponse, Kind: Int, Rule: "gte=1", Allowed: ">= 1",
		Default: func() any { return 512 },
	},
	{
		Name: MaxComputeUsage, Kind: Float, Rule: "gte=0", Allowed: ">= 0",
		Default: func() any { return 10000.0 },
	},
	{
		Name: MaxStorageUsage, Kind: Float, Rule: "gte=0", Allowed: ">= 0",
		Default: func() any { return 1000.0 },
	},
	{
		Name: CostPerComputeHour, Kind: Float, Rule: "gte=0", Allowed: ">= 0",
		Default: func() any { return 0.05 },
	},
	{
		Name: CostPerGBStorage, Kind: Float, Rule: "gte=0", Allowed: ">= 0",
		Default: func() any { return 0.02 },
	},
	{
		Name: EnabledUserRoles, Kind: EnumSet,
		Rule:    "dive," + enumTag + "=" + enum.SetUserRole,
		Allowed: subsetOf(enum.SetUserRole),
		Default: func() any { return []enum.UserRole{enum.Administrator, enum.Developer} },
	},
	{
		Name: EnableAPIAccess, Kind: Bool, Allowed: "true or false",
		Default: func() any { return true },
	},
	{
		Name: APIRateLimit, Kind: Int, Rule: "gte=0", Allowed: ">= 0",
		Default: func() any { return 1000 },
	},
	{
		Name: EnableLogging, Kind: Bool, Allowed: "true or false",
		Default: func() any { return true },
	},
}

var byName = func() map[string]Constraint {
	m := make(map[string]Constraint, len(registry))
	for _, c := range registry {
		m[c.Name] = c
	}
	return m
}()

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation(enumTag, func(fl validator.FieldLevel) bool {
		return enum.Contains(fl.Param(), fl.Field().String())
	})
	if err != nil {
		panic("register " + enumTag + ": " + err.Error())
	}
	return v
}

// All returns every constraint in declaration order.
func All() []Constraint {
	out := make([]Constraint, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the constraint for a field name.
func Lookup(name string) (Constraint, bool) {
	c, ok := byName[name]
	return c, ok
}

// DefaultOf returns the default of a field as T. Panics on unknown name or type mismatch.
func DefaultOf[T any](name string) T {
	c, ok := byName[name]
	if !ok {
		panic("field: unknown field " + name)
	}
	return c.Default().(T)
}

// Validate returns value unchanged if it satisfies the field's constraint.
// Otherwise returns a *domain.ValidationError naming the field, value and allowed domain.
func Validate(name string, value any) (any, error) {
	c, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("field %q: %w", name, domain.ErrNotFound)
	}

	normalized, err := normalize(c, value)
	if err != nil {
		return nil, err
	}
	if c.Rule == "" {
		return value, nil
	}

	if err := validate.Var(normalized, c.Rule); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, domain.NewValidationError(c.Name, verrs[0].Value(), c.Allowed)
		}
		return nil, domain.NewValidationError(c.Name, value, c.Allowed)
	}
	return value, nil
}

// normalize converts value to the canonical Go type of the field kind.
func normalize(c Constraint, value any) (any, error) {
	wrongType := func() error {
		return domain.NewValidationError(c.Name, value, c.Allowed)
	}
	if value == nil {
		return nil, wrongType()
	}

	rv := reflect.ValueOf(value)
	switch c.Kind {
	case Float:
		switch {
		case rv.CanFloat():
			f := rv.Float()
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, wrongType()
			}
			return f, nil
		case rv.CanInt():
			return float64(rv.Int()), nil
		case rv.CanUint():
			return float64(rv.Uint()), nil
		}
	case Int:
		switch {
		case rv.CanInt():
			return rv.Int(), nil
		case rv.CanUint():
			u := rv.Uint()
			if u > math.MaxInt64 {
				return nil, wrongType()
			}
			return int64(u), nil
		case rv.CanFloat():
			f := rv.Float()
			if f != math.Trunc(f) || math.IsInf(f, 0) {
				return nil, wrongType()
			}
			return int64(f), nil
		}
	case Bool:
		if rv.Kind() == reflect.Bool {
			return rv.Bool(), nil
		}
	case Enum:
		if rv.Kind() == reflect.String {
			return rv.String(), nil
		}
	case EnumSet:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.String {
			out := make([]string, rv.Len())
			for i := range out {
				out[i] = rv.Index(i).String()
			}
			return out, nil
		}
	}
	return nil, wrongType()
}

func oneOf(set string) string {
	return "one of [" + strings.Join(enum.Values(set), ", ") + "]"
}

func subsetOf(set string) string {
	return "subset of [" + strings.Join(enum.Values(set), ", ") + "]"
}
