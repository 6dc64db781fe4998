package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/wizardsmarket/wizards/internal/models"
)

var (
	ErrSubmissionRoleRequired = errors.New("profile submission requires a role")
	ErrTermsNotAccepted       = errors.New("terms and privacy policy must be accepted")
)

// ProfileSubmission is the full edited form state for one save: identity
// fields plus the role-specific block. Exactly one of Expert/Customer is set
// for role-bearing users.
type ProfileSubmission struct {
	FirstName       string
	LastName        string
	CountryID       *uint
	LinkedinProfile string
	OtherLink       string
	AvatarURL       string
	CVURL           string
	Expert          *ExpertSubmission
	Customer        *CustomerSubmission
}

type ExpertSubmission struct {
	Bio          string
	ProfessionID *uint
	Skills       []string
	Tools        []string
	Expertise    []ExpertiseEntry
}

type ExpertiseEntry struct {
	PlatformID     uint
	Rating         int
	ExperienceTime string
}

type CustomerSubmission struct {
	CompanyName     string
	JobTitle        string
	Description     string
	AcceptedTerms   bool
	AcceptedPrivacy bool
	SolutionIDs     []uint
}

// ProfileWriter is the persistence surface the coordinator drives. Replace
// methods swap a child collection in full (delete then insert) inside one
// transaction per collection; the boundary between groups stays
// non-transactional.
type ProfileWriter interface {
	UpdateIdentity(userID uint, updates map[string]any) error
	UpsertExpertProfile(userID uint, bio string, professionID *uint) error
	ReplaceExpertSkills(userID uint, names []string) error
	ReplaceExpertTools(userID uint, names []string) error
	ReplaceExpertExpertise(userID uint, entries []models.ExpertExpertise) error
	UpsertCustomerProfile(userID uint, companyName string, jobTitle string, description string, acceptedTerms bool, acceptedPrivacy bool) error
	ReplaceCustomerSolutions(userID uint, solutionIDs []uint) error
	UpsertAvatar(userID uint, url string) error
	UpsertCV(userID uint, name string, url string) error
}

type ProfileService struct {
	profiles ProfileWriter
}

func NewProfileService(profiles ProfileWriter) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Submit persists an edited profile and returns the verdict recomputed from
// the submitted values. When values equal initial no write happens at all.
// The identity write goes first; if it fails nothing else is attempted.
// A failure later in the sequence aborts the remaining writes but does not
// roll back groups already committed.
func (service *ProfileService) Submit(userID uint, role Role, values ProfileSubmission, initial ProfileSubmission) (CompletionVerdict, error) {
	if role == RoleUnset {
		return CompletionVerdict{}, ErrSubmissionRoleRequired
	}

	values = NormalizeSubmission(values)

	if values.Customer != nil && (!values.Customer.AcceptedTerms || !values.Customer.AcceptedPrivacy) {
		return CompletionVerdict{}, ErrTermsNotAccepted
	}

	if reflect.DeepEqual(values, NormalizeSubmission(initial)) {
		return VerdictFromSubmission(role, values), nil
	}

	if err := service.profiles.UpdateIdentity(userID, identityUpdates(values)); err != nil {
		return CompletionVerdict{}, fmt.Errorf("update identity: %w", err)
	}

	switch role {
	case RoleExpert:
		if values.Expert != nil {
			if err := service.writeExpert(userID, values.Expert); err != nil {
				return CompletionVerdict{}, err
			}
		}
	case RoleCustomer:
		if values.Customer != nil {
			if err := service.writeCustomer(userID, values.Customer); err != nil {
				return CompletionVerdict{}, err
			}
		}
	}

	if values.AvatarURL != "" {
		if err := service.profiles.UpsertAvatar(userID, values.AvatarURL); err != nil {
			return CompletionVerdict{}, fmt.Errorf("upsert avatar: %w", err)
		}
	}
	if values.CVURL != "" {
		if err := service.profiles.UpsertCV(userID, "CV", values.CVURL); err != nil {
			return CompletionVerdict{}, fmt.Errorf("upsert cv: %w", err)
		}
	}

	return VerdictFromSubmission(role, values), nil
}

func (service *ProfileService) writeExpert(userID uint, expert *ExpertSubmission) error {
	if err := service.profiles.UpsertExpertProfile(userID, expert.Bio, expert.ProfessionID); err != nil {
		return fmt.Errorf("upsert expert profile: %w", err)
	}
	if err := service.profiles.ReplaceExpertSkills(userID, expert.Skills); err != nil {
		return fmt.Errorf("replace skills: %w", err)
	}
	if err := service.profiles.ReplaceExpertTools(userID, expert.Tools); err != nil {
		return fmt.Errorf("replace tools: %w", err)
	}

	entries := make([]models.ExpertExpertise, 0, len(expert.Expertise))
	for _, entry := range expert.Expertise {
		entries = append(entries, models.ExpertExpertise{
			UserID:         userID,
			PlatformID:     entry.PlatformID,
			Rating:         entry.Rating,
			ExperienceTime: entry.ExperienceTime,
		})
	}
	if err := service.profiles.ReplaceExpertExpertise(userID, entries); err != nil {
		return fmt.Errorf("replace expertise: %w", err)
	}
	return nil
}

func (service *ProfileService) writeCustomer(userID uint, customer *CustomerSubmission) error {
	if err := service.profiles.UpsertCustomerProfile(
		userID,
		customer.CompanyName,
		customer.JobTitle,
		customer.Description,
		customer.AcceptedTerms,
		customer.AcceptedPrivacy,
	); err != nil {
		return fmt.Errorf("upsert customer profile: %w", err)
	}
	if err := service.profiles.ReplaceCustomerSolutions(userID, customer.SolutionIDs); err != nil {
		return fmt.Errorf("replace solutions: %w", err)
	}
	return nil
}

func identityUpdates(values ProfileSubmission) map[string]any {
	updates := map[string]any{
		"first_name":       values.FirstName,
		"last_name":        values.LastName,
		"country_id":       values.CountryID,
		"linkedin_profile": values.LinkedinProfile,
		"other_link":       values.OtherLink,
	}
	if values.AvatarURL != "" {
		updates["avatar_url"] = values.AvatarURL
	}
	if values.CVURL != "" {
		updates["cv_url"] = values.CVURL
	}
	return updates
}

// NormalizeSubmission trims scalar inputs, drops blank collection entries and
// clamps expertise ratings into 1..5.
func NormalizeSubmission(values ProfileSubmission) ProfileSubmission {
	values.FirstName = strings.TrimSpace(values.FirstName)
	values.LastName = strings.TrimSpace(values.LastName)
	values.LinkedinProfile = strings.TrimSpace(values.LinkedinProfile)
	values.OtherLink = strings.TrimSpace(values.OtherLink)
	values.AvatarURL = strings.TrimSpace(values.AvatarURL)
	values.CVURL = strings.TrimSpace(values.CVURL)

	if values.Expert != nil {
		expert := *values.Expert
		expert.Bio = strings.TrimSpace(expert.Bio)
		expert.Skills = normalizeNames(expert.Skills)
		expert.Tools = normalizeNames(expert.Tools)

		entries := make([]ExpertiseEntry, 0, len(expert.Expertise))
		for _, entry := range expert.Expertise {
			if entry.PlatformID == 0 {
				continue
			}
			entry.Rating = ClampExpertiseRating(entry.Rating)
			entry.ExperienceTime = strings.TrimSpace(entry.ExperienceTime)
			entries = append(entries, entry)
		}
		expert.Expertise = entries
		values.Expert = &expert
	}

	if values.Customer != nil {
		customer := *values.Customer
		customer.CompanyName = strings.TrimSpace(customer.CompanyName)
		customer.JobTitle = strings.TrimSpace(customer.JobTitle)
		customer.Description = strings.TrimSpace(customer.Description)
		if customer.SolutionIDs == nil {
			customer.SolutionIDs = []uint{}
		}
		values.Customer = &customer
	}

	return values
}

func normalizeNames(raw []string) []string {
	names := make([]string, 0, len(raw))
	for _, value := range raw {
		name := strings.TrimSpace(value)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

func ClampExpertiseRating(value int) int {
	if value < 1 {
		return 1
	}
	if value > 5 {
		return 5
	}
	return value
}

// SubmissionFromSnapshot rebuilds the form state a saved profile would
// produce, for comparison against an incoming save.
func SubmissionFromSnapshot(snapshot ProfileSnapshot) ProfileSubmission {
	values := ProfileSubmission{
		FirstName:       snapshot.User.FirstName,
		LastName:        snapshot.User.LastName,
		CountryID:       snapshot.User.CountryID,
		LinkedinProfile: snapshot.User.LinkedinProfile,
		OtherLink:       snapshot.User.OtherLink,
		AvatarURL:       snapshot.User.AvatarURL,
		CVURL:           snapshot.User.CVURL,
	}

	if snapshot.Expert != nil {
		expert := &ExpertSubmission{
			Bio:          snapshot.Expert.Bio,
			ProfessionID: snapshot.Expert.ProfessionID,
			Skills:       make([]string, 0, len(snapshot.Expert.Skills)),
			Tools:        make([]string, 0, len(snapshot.Expert.Tools)),
			Expertise:    make([]ExpertiseEntry, 0, len(snapshot.Expert.Expertise)),
		}
		for _, skill := range snapshot.Expert.Skills {
			expert.Skills = append(expert.Skills, skill.Name)
		}
		for _, tool := range snapshot.Expert.Tools {
			expert.Tools = append(expert.Tools, tool.Name)
		}
		for _, entry := range snapshot.Expert.Expertise {
			expert.Expertise = append(expert.Expertise, ExpertiseEntry{
				PlatformID:     entry.PlatformID,
				Rating:         entry.Rating,
				ExperienceTime: entry.ExperienceTime,
			})
		}
		values.Expert = expert
	}

	if snapshot.Customer != nil {
		customer := &CustomerSubmission{
			CompanyName:     snapshot.Customer.CompanyName,
			JobTitle:        snapshot.Customer.JobTitle,
			Description:     snapshot.Customer.Description,
			AcceptedTerms:   snapshot.Customer.AcceptedTerms,
			AcceptedPrivacy: snapshot.Customer.AcceptedPrivacy,
			SolutionIDs:     make([]uint, 0, len(snapshot.Customer.Solutions)),
		}
		for _, solution := range snapshot.Customer.Solutions {
			customer.SolutionIDs = append(customer.SolutionIDs, solution.SolutionID)
		}
		values.Customer = customer
	}

	return values
}

// VerdictFromSubmission evaluates completeness directly from submitted values
// without a fresh read, by assembling the snapshot the evaluator would have
// fetched.
func VerdictFromSubmission(role Role, values ProfileSubmission) CompletionVerdict {
	roleID := uint(0)
	var roleIDRef *uint
	if role != RoleUnset {
		roleID = 1
		roleIDRef = &roleID
	}

	snapshot := ProfileSnapshot{
		User: models.User{
			FirstName:       values.FirstName,
			LastName:        values.LastName,
			CountryID:       values.CountryID,
			RoleID:          roleIDRef,
			LinkedinProfile: values.LinkedinProfile,
			AvatarURL:       values.AvatarURL,
			CVURL:           values.CVURL,
		},
		RoleName: role.Name(),
	}

	if values.Expert != nil {
		expert := &models.ExpertProfile{
			Bio:          values.Expert.Bio,
			ProfessionID: values.Expert.ProfessionID,
		}
		for _, name := range values.Expert.Skills {
			expert.Skills = append(expert.Skills, models.ExpertSkill{Name: name})
		}
		for _, name := range values.Expert.Tools {
			expert.Tools = append(expert.Tools, models.ExpertTool{Name: name})
		}
		for _, entry := range values.Expert.Expertise {
			expert.Expertise = append(expert.Expertise, models.ExpertExpertise{
				PlatformID:     entry.PlatformID,
				Rating:         entry.Rating,
				ExperienceTime: entry.ExperienceTime,
			})
		}
		snapshot.Expert = expert
	}

	if values.Customer != nil {
		snapshot.Customer = &models.CustomerProfile{
			CompanyName:     values.Customer.CompanyName,
			JobTitle:        values.Customer.JobTitle,
			Description:     values.Customer.Description,
			AcceptedTerms:   values.Customer.AcceptedTerms,
			AcceptedPrivacy: values.Customer.AcceptedPrivacy,
		}
	}

	return EvaluateSnapshot(snapshot)
}
