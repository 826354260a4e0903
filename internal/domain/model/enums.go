package model

import (
	"fmt"

	"github.com/goccy/go-json"
)

type ExperienceLevel string
type Difficulty string
type ProjectStatus string
type PairingStatus string
type CollaboratorRole string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceExpert       ExperienceLevel = "expert"

	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"

	StatusOngoing   ProjectStatus = "ongoing"
	StatusCompleted ProjectStatus = "completed"
	StatusPaused    ProjectStatus = "paused"

	PairingPending  PairingStatus = "pending"
	PairingApproved PairingStatus = "approved"
	PairingRejected PairingStatus = "rejected"

	RoleAdmin       CollaboratorRole = "admin"
	RoleContributor CollaboratorRole = "contributor"
)

// EnumError reports a value outside a closed set.
type EnumError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("%s must be one of: %v (got %q)", e.Field, e.Allowed, e.Value)
}

func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceExpert:
		return true
	}
	return false
}

func (l *ExperienceLevel) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "experience_level", (*string)(l), func(s string) bool { return ExperienceLevel(s).Valid() },
		[]string{"beginner", "intermediate", "advanced", "expert"})
}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

func (d *Difficulty) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "difficulty_level", (*string)(d), func(s string) bool { return Difficulty(s).Valid() },
		[]string{"beginner", "intermediate", "advanced"})
}

// ParseDifficulty validates a query-string value.
func ParseDifficulty(s string) (Difficulty, error) {
	if !Difficulty(s).Valid() {
		return "", &EnumError{Field: "difficulty", Value: s, Allowed: []string{"beginner", "intermediate", "advanced"}}
	}
	return Difficulty(s), nil
}

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusPaused:
		return true
	}
	return false
}

func (s *ProjectStatus) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "status", (*string)(s), func(v string) bool { return ProjectStatus(v).Valid() },
		[]string{"ongoing", "completed", "paused"})
}

// ParseProjectStatus validates a query-string value.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	if !ProjectStatus(s).Valid() {
		return "", &EnumError{Field: "status", Value: s, Allowed: []string{"ongoing", "completed", "paused"}}
	}
	return ProjectStatus(s), nil
}

func (s PairingStatus) Valid() bool {
	switch s {
	case PairingPending, PairingApproved, PairingRejected:
		return true
	}
	return false
}

func (s *PairingStatus) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "status", (*string)(s), func(v string) bool { return PairingStatus(v).Valid() },
		[]string{"pending", "approved", "rejected"})
}

func (r CollaboratorRole) Valid() bool {
	return r == RoleAdmin || r == RoleContributor
}

func (r *CollaboratorRole) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "role", (*string)(r), func(v string) bool { return CollaboratorRole(v).Valid() },
		[]string{"admin", "contributor"})
}

func unmarshalEnum(data []byte, field string, dst *string, valid func(string) bool, allowed []string) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &EnumError{Field: field, Value: string(data), Allowed: allowed}
	}
	if !valid(s) {
		return &EnumError{Field: field, Value: s, Allowed: allowed}
	}
	*dst = s
	return nil
}
