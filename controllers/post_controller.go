// File: /controllers/post_controller.go
package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"photogram-api/forms"
	"photogram-api/services"
	"photogram-api/utils"
)

type PostController struct {
	posts *services.PostService
	log   *slog.Logger
}

func NewPostController(posts *services.PostService, log *slog.Logger) *PostController {
	return &PostController{
		posts: posts,
		log:   log,
	}
}

// GetPosts lists all posts, newest first.
func (pc *PostController) GetPosts(c *gin.Context) {
	page, limit := utils.Pagination(c)

	response, err := pc.posts.List(c.Request.Context(), currentUserID(c), page, limit)
	if err != nil {
		utils.SendServiceError(c, pc.log, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetFeed lists posts of the users the caller subscribes to.
func (pc *PostController) GetFeed(c *gin.Context) {
	page, limit := utils.Pagination(c)

	response, err := pc.posts.Feed(c.Request.Context(), currentUserID(c), page, limit)
	if err != nil {
		utils.SendServiceError(c, pc.log, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (pc *PostController) CreatePost(c *gin.Context) {
	var form forms.PostForm
	if !bindForm(c, &form) {
		return
	}

	images, ok := bindFiles(c, "images", "image")
	if !ok {
		return
	}

	post, err := pc.posts.Create(c.Request.Context(), currentUserID(c), form, images)
	if err != nil {
		sendUploadError(c, pc.log, "images", err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (pc *PostController) GetPost(c *gin.Context) {
	post, err := pc.posts.Get(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		utils.SendServiceError(c, pc.log, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (pc *PostController) UpdatePost(c *gin.Context) {
	var form forms.PostForm
	if !bindForm(c, &form) {
		return
	}

	images, ok := bindFiles(c, "images", "image")
	if !ok {
		return
	}

	post, err := pc.posts.Update(c.Request.Context(), currentUserID(c), c.Param("id"), form, images)
	if err != nil {
		sendUploadError(c, pc.log, "images", err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (pc *PostController) DeletePost(c *gin.Context) {
	if err := pc.posts.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		utils.SendServiceError(c, pc.log, err)
		return
	}

	utils.SendSuccess(c, "Post deleted successfully", nil)
}
