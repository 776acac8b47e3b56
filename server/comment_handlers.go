package server

import (
	"devconnect/models"
	"devconnect/validation"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /api/posts/comment/:id, prepending the comment.
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	post, err := s.postByParam(c)
	if err != nil {
		return respondPostError(c, err)
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.FieldError{Msg: "Invalid request body"}))
	}
	if fe := validation.Required(req.Text, "Text", "text"); fe != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(*fe))
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	comment := &models.Comment{
		PostID: post.ID,
		UserID: userID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}

	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	updated, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(updated.Comments)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:comment_id. The
// comment is matched by its own id and may only be removed by its author.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	post, err := s.postByParam(c)
	if err != nil {
		return respondPostError(c, err)
	}

	commentID, err := c.ParamsInt("comment_id")
	if err != nil || commentID <= 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Comment not found"))
	}

	var target *models.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == uint(commentID) {
			target = &post.Comments[i]
			break
		}
	}
	if target == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Comment not found"))
	}

	if target.UserID != userID {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewForbiddenError("User unauthorised"))
	}

	if err := s.postRepo.DeleteComment(ctx, post.ID, target.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	updated, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(updated.Comments)
}
