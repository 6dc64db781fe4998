package api

import "github.com/gofiber/fiber/v2"

// RegisterRoutes wires the JSON API. Everything under /api/my requires a
// session; project writes additionally require the customer role.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/session", handler.Session)
	auth.Get("/google", handler.GoogleLogin)
	auth.Get("/google/callback", handler.GoogleCallback)
	auth.Post("/magic-link", handler.MagicLinkRequest)
	auth.Get("/magic-link/verify", handler.MagicLinkVerify)

	api.Get("/gate", handler.Gate)
	api.Get("/catalogs", handler.Catalogs)
	api.Get("/experts", handler.ListExperts)
	api.Get("/experts/:id", handler.GetExpert)
	api.Get("/projects", handler.BrowseProjects)
	api.Get("/projects/:id", handler.GetPublishedProject)

	my := api.Group("/my", handler.AuthRequired)
	my.Post("/onboarding", handler.CompleteOnboarding)
	my.Get("/profile", handler.Profile)
	my.Put("/profile", handler.UpdateProfile)
	my.Get("/profile/summary", handler.ProfileSummary)
	my.Post("/uploads/avatar", handler.UploadAvatar)
	my.Post("/uploads/cv", handler.UploadCV)

	projects := my.Group("/projects", handler.CustomerOnly)
	projects.Get("/", handler.MyProjects)
	projects.Post("/", handler.CreateProject)
	projects.Put("/:id", handler.UpdateProject)
	projects.Patch("/:id/status", handler.SetProjectStatus)
	projects.Delete("/:id", handler.DeleteProject)
	projects.Post("/:id/offers", handler.AddProjectOffer)
}
