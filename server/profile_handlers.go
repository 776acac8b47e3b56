package server

import (
	"fmt"
	"time"

	"devconnect/cache"
	"devconnect/github"
	"devconnect/models"
	"devconnect/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	profileListCacheKey = "profiles:all"
	profileListCacheTTL = time.Minute
	githubCacheTTL      = 10 * time.Minute
)

// GetMyProfile handles GET /api/profile/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if profile == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewNotFoundError("There is no profile for this user"))
	}

	return c.JSON(profile)
}

// profileRequest is the body for POST /api/profile. Skills arrives as a
// comma-separated string; social links come in flat.
type profileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// UpsertProfile handles POST /api/profile. An existing profile receives a
// merge of the provided fields; the social block is replaced wholesale.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.FieldError{Msg: "Invalid request body"}))
	}

	var errs []models.FieldError
	if fe := validation.Required(req.Status, "Status", "status"); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validation.Required(req.Skills, "Skills", "skills"); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(errs...))
	}

	social := models.Social{
		Youtube:   req.Youtube,
		Twitter:   req.Twitter,
		Facebook:  req.Facebook,
		Linkedin:  req.Linkedin,
		Instagram: req.Instagram,
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if profile == nil {
		profile = &models.Profile{
			UserID:         userID,
			Company:        req.Company,
			Website:        req.Website,
			Location:       req.Location,
			Bio:            req.Bio,
			Status:         req.Status,
			GithubUsername: req.GithubUsername,
			Skills:         validation.SplitSkills(req.Skills),
			Social:         social,
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	} else {
		// Merge: only supplied fields change, but social is rebuilt each time.
		if req.Company != "" {
			profile.Company = req.Company
		}
		if req.Website != "" {
			profile.Website = req.Website
		}
		if req.Location != "" {
			profile.Location = req.Location
		}
		if req.Bio != "" {
			profile.Bio = req.Bio
		}
		profile.Status = req.Status
		if req.GithubUsername != "" {
			profile.GithubUsername = req.GithubUsername
		}
		profile.Skills = validation.SplitSkills(req.Skills)
		profile.Social = social

		if err := s.profileRepo.Save(ctx, profile); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}

	cache.Invalidate(ctx, profileListCacheKey)

	updated, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(updated)
}

// GetAllProfiles handles GET /api/profile
func (s *Server) GetAllProfiles(c *fiber.Ctx) error {
	ctx := c.Context()

	var profiles []models.Profile
	err := cache.CacheAside(ctx, profileListCacheKey, &profiles, profileListCacheTTL, func() error {
		var err error
		profiles, err = s.profileRepo.List(ctx)
		return err
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(profiles)
}

// GetProfileByUserID handles GET /api/profile/user/:user_id
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("user_id")
	if err != nil || userID <= 0 {
		// A malformed id reads the same as a missing profile.
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewNotFoundError("Profile not found"))
	}

	profile, err := s.profileRepo.GetByUserID(c.Context(), uint(userID))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if profile == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewNotFoundError("Profile not found"))
	}

	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile: removes the profile, the user's
// posts, and the user record itself.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	if err := s.userRepo.DeleteAccount(ctx, userID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	cache.Invalidate(ctx, profileListCacheKey)

	return c.JSON(fiber.Map{"msg": "User deleted"})
}

// GetGithubRepos handles GET /api/profile/github/:username
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	ctx := c.Context()
	username := c.Params("username")

	var repos []github.Repo
	key := fmt.Sprintf("github:repos:%s", username)
	err := cache.CacheAside(ctx, key, &repos, githubCacheTTL, func() error {
		var err error
		repos, err = s.github.ListRepos(ctx, username)
		return err
	})
	if err != nil {
		if err == github.ErrUserNotFound {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewUpstreamError("No Github profile found"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(repos)
}
