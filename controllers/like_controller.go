package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"photogram-api/services"
	"photogram-api/utils"
)

type LikeController struct {
	likes *services.LikeService
	log   *slog.Logger
}

func NewLikeController(likes *services.LikeService, log *slog.Logger) *LikeController {
	return &LikeController{likes: likes, log: log}
}

// LikePost toggles the caller's like on a post and returns {is_liked, likes_count}.
func (lc *LikeController) LikePost(c *gin.Context) {
	result, err := lc.likes.TogglePostLike(c.Request.Context(), currentUserID(c), c.Param("post_id"))
	if err != nil {
		utils.SendServiceError(c, lc.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// LikeComment toggles the caller's like on a comment of the given post.
func (lc *LikeController) LikeComment(c *gin.Context) {
	result, err := lc.likes.ToggleCommentLike(c.Request.Context(), currentUserID(c), c.Param("post_id"), c.Param("comment_id"))
	if err != nil {
		utils.SendServiceError(c, lc.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
