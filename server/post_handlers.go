package server

import (
	"devconnect/models"
	"devconnect/validation"

	"github.com/gofiber/fiber/v2"
)

// postByParam loads the post named by the :id route param. A malformed id
// reads the same as a missing post.
func (s *Server) postByParam(c *fiber.Ctx) (*models.Post, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, models.NewNotFoundError("Post not found")
	}

	post, err := s.postRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post not found")
	}
	return post, nil
}

func respondPostError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
		return models.RespondWithError(c, fiber.StatusNotFound, appErr)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// CreatePost handles POST /api/posts. The author's name and avatar are
// copied onto the post and never resynced.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

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

	post := &models.Post{
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
		UserID: userID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(created)
}

// GetPosts handles GET /api/posts, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postByParam(c)
	if err != nil {
		return respondPostError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id, owner only.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	post, err := s.postByParam(c)
	if err != nil {
		return respondPostError(c, err)
	}

	if post.UserID != userID {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewForbiddenError("User not authorised to delete post"))
	}

	if err := s.postRepo.Delete(c.Context(), post.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"msg": "Post removed"})
}

// LikePost handles PUT /api/posts/like/:id. Liking twice is a domain error.
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	post, err := s.postByParam(c)
	if err != nil {
		return respondPostError(c, err)
	}

	for _, like := range post.Likes {
		if like.UserID == userID {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewConflictError("Post already liked"))
		}
	}

	if err := s.postRepo.AddLike(ctx, &models.Like{PostID: post.ID, UserID: userID}); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	updated, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(updated.Likes)
}

// UnlikePost handles PUT /api/posts/unlike/:id.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	post, err := s.postByParam(c)
	if err != nil {
		return respondPostError(c, err)
	}

	liked := false
	for _, like := range post.Likes {
		if like.UserID == userID {
			liked = true
			break
		}
	}
	if !liked {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewConflictError("Post has not yet been liked"))
	}

	if err := s.postRepo.RemoveLike(ctx, post.ID, userID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	updated, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(updated.Likes)
}
