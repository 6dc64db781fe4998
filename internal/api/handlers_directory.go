package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wizardsmarket/wizards/internal/services"
)

// ListExperts serves the public expert directory. Only profiles that pass
// the completion gate are listed.
func (handler *Handler) ListExperts(c *fiber.Ctx) error {
	handler.ensureDependencies()

	filter := services.ExpertFilter{
		Query:      c.Query("q"),
		Skill:      c.Query("skill"),
		PlatformID: queryUint(c, "platform_id"),
		CountryID:  queryUint(c, "country_id"),
	}

	snapshots, err := handler.directoryService.ListComplete(filter)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load experts")
	}

	experts := make([]fiber.Map, 0, len(snapshots))
	for _, snapshot := range snapshots {
		experts = append(experts, expertCardPayload(snapshot))
	}
	return c.JSON(fiber.Map{"experts": experts})
}

// GetExpert serves one public expert profile.
func (handler *Handler) GetExpert(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid expert id")
	}

	handler.ensureDependencies()
	snapshot, err := handler.repositories.Profiles.LoadSnapshot(uint(userID))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load expert")
	}

	verdict := services.EvaluateSnapshot(snapshot)
	if verdict.Role != services.RoleExpert || !verdict.Complete {
		return apiError(c, fiber.StatusNotFound, "expert not found")
	}

	payload := expertCardPayload(snapshot)
	payload["profile"] = profilePayload(snapshot)
	return c.JSON(payload)
}

func expertCardPayload(snapshot services.ProfileSnapshot) fiber.Map {
	card := fiber.Map{
		"id":         snapshot.User.ID,
		"first_name": snapshot.User.FirstName,
		"last_name":  snapshot.User.LastName,
		"country_id": snapshot.User.CountryID,
		"avatar_url": snapshot.User.AvatarURL,
	}
	if snapshot.Expert != nil {
		skills := make([]string, 0, len(snapshot.Expert.Skills))
		for _, skill := range snapshot.Expert.Skills {
			skills = append(skills, skill.Name)
		}
		card["bio"] = snapshot.Expert.Bio
		card["profession_id"] = snapshot.Expert.ProfessionID
		card["skills"] = skills
	}
	return card
}

func queryUint(c *fiber.Ctx, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return nil
	}
	parsed := uint(value)
	return &parsed
}
