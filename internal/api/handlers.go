package api

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/wizardsmarket/wizards/internal/db"
	"github.com/wizardsmarket/wizards/internal/services"
	"github.com/wizardsmarket/wizards/internal/storage"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool
	appBaseURL   string
	validate     *validator.Validate

	repositories     *db.Repositories
	authService      *services.AuthService
	onboardingSvc    *services.OnboardingService
	profileService   *services.ProfileService
	evaluator        *services.CompletenessEvaluator
	projectService   *services.ProjectService
	directoryService *services.DirectoryService
	mailer           *services.MailerService
	uploads          *storage.LocalStore

	googleOAuth *oauth2.Config

	loginLimiter     *attemptLimiter
	magicLinkLimiter *attemptLimiter
}

// Config carries everything the handler needs beyond the database handle.
type Config struct {
	SecretKey          string
	CookieSecure       bool
	AppBaseURL         string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	Uploads            *storage.LocalStore
	Mailer             *services.MailerService
}

func NewHandler(database *gorm.DB, cfg Config) *Handler {
	handler := &Handler{
		db:               database,
		secretKey:        []byte(cfg.SecretKey),
		cookieSecure:     cfg.CookieSecure,
		appBaseURL:       cfg.AppBaseURL,
		validate:         validator.New(),
		mailer:           cfg.Mailer,
		uploads:          cfg.Uploads,
		loginLimiter:     newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
		magicLinkLimiter: newAttemptLimiter(magicLinkRequestLimit, magicLinkRequestWindow),
	}

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		handler.googleOAuth = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
	}

	return handler.withDependencies(database)
}

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
	magicLinkTokenTTL    = 30 * time.Minute

	loginAttemptsLimit     = 10
	loginAttemptsWindow    = 15 * time.Minute
	magicLinkRequestLimit  = 5
	magicLinkRequestWindow = 15 * time.Minute
)

type credentialsInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type onboardingInput struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=expert customer"`
}

type magicLinkInput struct {
	Email    string `json:"email" validate:"required,email"`
	Redirect string `json:"redirect"`
}

type expertiseInput struct {
	PlatformID     uint   `json:"platform_id" validate:"required"`
	Rating         int    `json:"rating" validate:"min=0,max=5"`
	ExperienceTime string `json:"experience_time"`
}

type expertProfileInput struct {
	Bio          string           `json:"bio"`
	ProfessionID *uint            `json:"profession_id"`
	Skills       []string         `json:"skills"`
	Tools        []string         `json:"tools"`
	Expertise    []expertiseInput `json:"expertise"`
}

type customerProfileInput struct {
	CompanyName     string `json:"company_name"`
	JobTitle        string `json:"job_title"`
	Description     string `json:"description"`
	AcceptedTerms   bool   `json:"accepted_terms"`
	AcceptedPrivacy bool   `json:"accepted_privacy"`
	SolutionIDs     []uint `json:"solution_ids"`
}

type profileInput struct {
	FirstName       string                `json:"first_name"`
	LastName        string                `json:"last_name"`
	CountryID       *uint                 `json:"country_id"`
	LinkedinProfile string                `json:"linkedin_profile"`
	OtherLink       string                `json:"other_link"`
	AvatarURL       string                `json:"avatar_url"`
	CVURL           string                `json:"cv_url"`
	Expert          *expertProfileInput   `json:"expert"`
	Customer        *customerProfileInput `json:"customer"`
}

type projectInput struct {
	Title         string     `json:"title" validate:"required"`
	Description   string     `json:"description"`
	CategoryID    *uint      `json:"category_id"`
	SubcategoryID *uint      `json:"subcategory_id"`
	Budget        int        `json:"budget" validate:"min=0"`
	Deadline      *time.Time `json:"deadline"`
}

type projectStatusInput struct {
	Status string `json:"status" validate:"required,oneof=published closed"`
}

type offerInput struct {
	PlatformID     *uint    `json:"platform_id"`
	Headline       string   `json:"headline" validate:"required"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	ExpertCount    int      `json:"expert_count" validate:"min=1"`
}

type magicLinkClaims struct {
	UserID  uint   `json:"uid"`
	Nonce   string `json:"nonce"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}
