package server

import (
	"time"

	"devconnect/cache"
	"devconnect/models"
	"devconnect/validation"

	"github.com/gofiber/fiber/v2"
)

// parseDate accepts the date formats profile forms submit.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, ok := parseDate(s); ok {
		return &t
	}
	return nil
}

// AddExperience handles PUT /api/profile/experience, prepending the entry.
func (s *Server) AddExperience(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string `json:"title"`
		Company     string `json:"company"`
		Location    string `json:"location"`
		From        string `json:"from"`
		To          string `json:"to"`
		Current     bool   `json:"current"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.FieldError{Msg: "Invalid request body"}))
	}

	var errs []models.FieldError
	if fe := validation.Required(req.Title, "Title", "title"); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validation.Required(req.Company, "Company", "company"); fe != nil {
		errs = append(errs, *fe)
	}
	from, ok := parseDate(req.From)
	if !ok {
		errs = append(errs, models.FieldError{Msg: "From date is required", Param: "from"})
	}
	if len(errs) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(errs...))
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if profile == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewNotFoundError("There is no profile for this user"))
	}

	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		Current:     req.Current,
		Description: req.Description,
	}
	if !req.Current {
		exp.To = parseOptionalDate(req.To)
	}

	if err := s.profileRepo.AddExperience(ctx, exp); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	cache.Invalidate(ctx, profileListCacheKey)

	updated, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(updated)
}

// DeleteExperience handles DELETE /api/profile/experience/:exp_id. The entry
// must belong to the caller's own profile; an unknown id is a 404.
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if profile == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewNotFoundError("There is no profile for this user"))
	}

	expID, err := c.ParamsInt("exp_id")
	if err != nil || expID <= 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Experience not found"))
	}

	deleted, err := s.profileRepo.DeleteExperience(ctx, profile.ID, uint(expID))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if !deleted {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Experience not found"))
	}

	cache.Invalidate(ctx, profileListCacheKey)

	updated, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(updated)
}
