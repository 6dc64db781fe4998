package services

import (
	"fmt"
	"strings"

	"github.com/wizardsmarket/wizards/internal/models"
)

// ProfileSnapshot is the combined read the evaluator works on: identity row,
// resolved role name and the role-specific profile with its child collections
// preloaded. Fetching it is a single repository call so the guards never
// waterfall sequential queries.
type ProfileSnapshot struct {
	User     models.User
	RoleName string
	Expert   *models.ExpertProfile
	Customer *models.CustomerProfile
}

// CompletionVerdict is derived and ephemeral. It is recomputed on every
// navigation check, never persisted.
type CompletionVerdict struct {
	Role          Role
	BasicComplete bool
	RoleComplete  bool
	Complete      bool
	MissingFields []string
}

type ProfileReader interface {
	LoadSnapshot(userID uint) (ProfileSnapshot, error)
}

type CompletenessEvaluator struct {
	profiles ProfileReader
}

func NewCompletenessEvaluator(profiles ProfileReader) *CompletenessEvaluator {
	return &CompletenessEvaluator{profiles: profiles}
}

// Evaluate computes the completion verdict for a user. A failed read is
// returned as an error; it is never silently folded into "incomplete".
func (evaluator *CompletenessEvaluator) Evaluate(userID uint) (CompletionVerdict, error) {
	snapshot, err := evaluator.profiles.LoadSnapshot(userID)
	if err != nil {
		return CompletionVerdict{}, fmt.Errorf("load profile snapshot: %w", err)
	}
	return EvaluateSnapshot(snapshot), nil
}

// EvaluateSnapshot applies the completion rules to an already-fetched
// snapshot. complete = basicComplete AND roleComplete, with admin exempt.
func EvaluateSnapshot(snapshot ProfileSnapshot) CompletionVerdict {
	role := ParseRole(snapshot.RoleName)
	verdict := CompletionVerdict{Role: role, MissingFields: []string{}}

	verdict.BasicComplete = true
	if isBlank(snapshot.User.FirstName) || isBlank(snapshot.User.LastName) {
		verdict.BasicComplete = false
		verdict.MissingFields = append(verdict.MissingFields, string(FieldName))
	}
	if snapshot.User.CountryID == nil {
		verdict.BasicComplete = false
		verdict.MissingFields = append(verdict.MissingFields, string(FieldCountry))
	}
	if snapshot.User.RoleID == nil || role == RoleUnset {
		verdict.BasicComplete = false
		verdict.MissingFields = append(verdict.MissingFields, string(FieldRole))
	}

	spec := RequiredFieldsFor(role)
	if spec.Exempt {
		verdict.BasicComplete = true
		verdict.RoleComplete = true
		verdict.Complete = true
		verdict.MissingFields = []string{}
		return verdict
	}

	verdict.RoleComplete = spec.Satisfiable
	for _, field := range spec.Scalars {
		if isBlank(snapshot.scalarValue(field)) {
			verdict.RoleComplete = false
			verdict.MissingFields = append(verdict.MissingFields, string(field))
		}
	}
	for _, field := range spec.Collections {
		if snapshot.collectionLen(field) < 1 {
			verdict.RoleComplete = false
			verdict.MissingFields = append(verdict.MissingFields, string(field))
		}
	}

	verdict.Complete = verdict.BasicComplete && verdict.RoleComplete
	return verdict
}

func (snapshot ProfileSnapshot) scalarValue(field ProfileField) string {
	switch field {
	case FieldBio:
		if snapshot.Expert != nil {
			return snapshot.Expert.Bio
		}
	case FieldProfession:
		if snapshot.Expert != nil && snapshot.Expert.ProfessionID != nil {
			return "set"
		}
	case FieldCompanyName:
		if snapshot.Customer != nil {
			return snapshot.Customer.CompanyName
		}
	case FieldJobTitle:
		if snapshot.Customer != nil {
			return snapshot.Customer.JobTitle
		}
	case FieldCompanyDescription:
		if snapshot.Customer != nil {
			return snapshot.Customer.Description
		}
	}
	return ""
}

func (snapshot ProfileSnapshot) collectionLen(field ProfileField) int {
	if snapshot.Expert == nil {
		return 0
	}
	switch field {
	case FieldSkills:
		return len(snapshot.Expert.Skills)
	case FieldTools:
		return len(snapshot.Expert.Tools)
	case FieldExpertise:
		return len(snapshot.Expert.Expertise)
	default:
		return 0
	}
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
