package server

import (
	"devconnect/cache"
	"devconnect/models"
	"devconnect/validation"

	"github.com/gofiber/fiber/v2"
)

// AddEducation handles PUT /api/profile/education, prepending the entry.
func (s *Server) AddEducation(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		School       string `json:"school"`
		Degree       string `json:"degree"`
		FieldOfStudy string `json:"fieldofstudy"`
		From         string `json:"from"`
		To           string `json:"to"`
		Current      bool   `json:"current"`
		Description  string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.FieldError{Msg: "Invalid request body"}))
	}

	var errs []models.FieldError
	if fe := validation.Required(req.School, "School", "school"); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validation.Required(req.Degree, "Degree", "degree"); fe != nil {
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

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		Current:      req.Current,
		Description:  req.Description,
	}
	if !req.Current {
		edu.To = parseOptionalDate(req.To)
	}

	if err := s.profileRepo.AddEducation(ctx, edu); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	cache.Invalidate(ctx, profileListCacheKey)

	updated, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(updated)
}

// DeleteEducation handles DELETE /api/profile/education/:edu_id.
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
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

	eduID, err := c.ParamsInt("edu_id")
	if err != nil || eduID <= 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Education not found"))
	}

	deleted, err := s.profileRepo.DeleteEducation(ctx, profile.ID, uint(eduID))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if !deleted {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Education not found"))
	}

	cache.Invalidate(ctx, profileListCacheKey)

	updated, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(updated)
}
