package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wizardsmarket/wizards/internal/services"
)

// Profile returns the stored profile in the same shape the edit form
// submits, plus the current completion verdict.
func (handler *Handler) Profile(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	handler.ensureDependencies()
	snapshot, err := handler.repositories.Profiles.LoadSnapshot(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	return c.JSON(fiber.Map{
		"profile": profilePayload(snapshot),
		"verdict": verdictPayload(services.EvaluateSnapshot(snapshot)),
	})
}

// UpdateProfile saves an edited profile. A save identical to the stored
// state is acknowledged without touching the database. The response carries
// the verdict recomputed from the submitted values and the navigation
// decision for the page the form lives on.
func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var input profileInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := handler.validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid profile data")
	}

	handler.ensureDependencies()
	snapshot, err := handler.repositories.Profiles.LoadSnapshot(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	role := currentRole(c)
	values := submissionFromInput(input)
	initial := services.SubmissionFromSnapshot(snapshot)

	verdict, err := handler.profileService.Submit(user.ID, role, values, initial)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSubmissionRoleRequired):
			return apiError(c, fiber.StatusConflict, "complete onboarding before editing the profile")
		case errors.Is(err, services.ErrTermsNotAccepted):
			return apiError(c, fiber.StatusBadRequest, "terms and privacy policy must be accepted")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to save profile")
		}
	}

	pagePath := requestedPagePath(c)
	destination := services.Decide(pagePath, true, verdict)
	payload := destinationPayload(destination, pagePath)
	payload["verdict"] = verdictPayload(verdict)
	return c.JSON(payload)
}

// ProfileSummary reports the soft completion meter shown on the dashboard.
// It is advisory only and never triggers a redirect.
func (handler *Handler) ProfileSummary(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	handler.ensureDependencies()
	snapshot, err := handler.repositories.Profiles.LoadSnapshot(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	summary := services.SummarizeProfile(snapshot)
	return c.JSON(fiber.Map{
		"completion_percent": summary.CompletionPercent,
		"missing_fields":     summary.MissingFields,
	})
}

func submissionFromInput(input profileInput) services.ProfileSubmission {
	values := services.ProfileSubmission{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		CountryID:       input.CountryID,
		LinkedinProfile: input.LinkedinProfile,
		OtherLink:       input.OtherLink,
		AvatarURL:       input.AvatarURL,
		CVURL:           input.CVURL,
	}

	if input.Expert != nil {
		expert := &services.ExpertSubmission{
			Bio:          input.Expert.Bio,
			ProfessionID: input.Expert.ProfessionID,
			Skills:       input.Expert.Skills,
			Tools:        input.Expert.Tools,
		}
		for _, entry := range input.Expert.Expertise {
			expert.Expertise = append(expert.Expertise, services.ExpertiseEntry{
				PlatformID:     entry.PlatformID,
				Rating:         entry.Rating,
				ExperienceTime: entry.ExperienceTime,
			})
		}
		values.Expert = expert
	}

	if input.Customer != nil {
		values.Customer = &services.CustomerSubmission{
			CompanyName:     input.Customer.CompanyName,
			JobTitle:        input.Customer.JobTitle,
			Description:     input.Customer.Description,
			AcceptedTerms:   input.Customer.AcceptedTerms,
			AcceptedPrivacy: input.Customer.AcceptedPrivacy,
			SolutionIDs:     input.Customer.SolutionIDs,
		}
	}

	return values
}

func profilePayload(snapshot services.ProfileSnapshot) fiber.Map {
	payload := fiber.Map{
		"first_name":       snapshot.User.FirstName,
		"last_name":        snapshot.User.LastName,
		"country_id":       snapshot.User.CountryID,
		"role":             snapshot.RoleName,
		"linkedin_profile": snapshot.User.LinkedinProfile,
		"other_link":       snapshot.User.OtherLink,
		"avatar_url":       snapshot.User.AvatarURL,
		"cv_url":           snapshot.User.CVURL,
	}

	if snapshot.Expert != nil {
		skills := make([]string, 0, len(snapshot.Expert.Skills))
		for _, skill := range snapshot.Expert.Skills {
			skills = append(skills, skill.Name)
		}
		tools := make([]string, 0, len(snapshot.Expert.Tools))
		for _, tool := range snapshot.Expert.Tools {
			tools = append(tools, tool.Name)
		}
		expertise := make([]fiber.Map, 0, len(snapshot.Expert.Expertise))
		for _, entry := range snapshot.Expert.Expertise {
			expertise = append(expertise, fiber.Map{
				"platform_id":     entry.PlatformID,
				"rating":          entry.Rating,
				"experience_time": entry.ExperienceTime,
			})
		}
		payload["expert"] = fiber.Map{
			"bio":           snapshot.Expert.Bio,
			"profession_id": snapshot.Expert.ProfessionID,
			"skills":        skills,
			"tools":         tools,
			"expertise":     expertise,
		}
	}

	if snapshot.Customer != nil {
		solutionIDs := make([]uint, 0, len(snapshot.Customer.Solutions))
		for _, solution := range snapshot.Customer.Solutions {
			solutionIDs = append(solutionIDs, solution.SolutionID)
		}
		payload["customer"] = fiber.Map{
			"company_name":     snapshot.Customer.CompanyName,
			"job_title":        snapshot.Customer.JobTitle,
			"description":      snapshot.Customer.Description,
			"accepted_terms":   snapshot.Customer.AcceptedTerms,
			"accepted_privacy": snapshot.Customer.AcceptedPrivacy,
			"solution_ids":     solutionIDs,
		}
	}

	return payload
}
