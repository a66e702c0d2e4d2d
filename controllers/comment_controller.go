package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"photogram-api/forms"
	"photogram-api/services"
	"photogram-api/utils"
)

type CommentController struct {
	comments *services.CommentService
	log      *slog.Logger
}

func NewCommentController(comments *services.CommentService, log *slog.Logger) *CommentController {
	return &CommentController{comments: comments, log: log}
}

// GET /posts/:id/comments
func (cc *CommentController) GetComments(c *gin.Context) {
	comments, err := cc.comments.List(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		utils.SendServiceError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// POST /posts/:id/comments
func (cc *CommentController) CreateComment(c *gin.Context) {
	var form forms.CommentForm
	if !bindForm(c, &form) {
		return
	}

	comment, err := cc.comments.Create(c.Request.Context(), currentUserID(c), c.Param("id"), form)
	if err != nil {
		utils.SendServiceError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// PUT /posts/:id/comments/:comment_id
func (cc *CommentController) UpdateComment(c *gin.Context) {
	var form forms.CommentForm
	if !bindForm(c, &form) {
		return
	}

	comment, err := cc.comments.Update(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("comment_id"), form)
	if err != nil {
		utils.SendServiceError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DELETE /posts/:id/comments/:comment_id
func (cc *CommentController) DeleteComment(c *gin.Context) {
	if err := cc.comments.Delete(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("comment_id")); err != nil {
		utils.SendServiceError(c, cc.log, err)
		return
	}
	utils.SendSuccess(c, "Comment deleted successfully", nil)
}
