package controllers

import (
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"photogram-api/forms"
	"photogram-api/services"
	"photogram-api/utils"
)

type ProfileController struct {
	profiles      *services.ProfileService
	subscriptions *services.SubscriptionService
	log           *slog.Logger
}

func NewProfileController(profiles *services.ProfileService, subscriptions *services.SubscriptionService, log *slog.Logger) *ProfileController {
	return &ProfileController{
		profiles:      profiles,
		subscriptions: subscriptions,
		log:           log,
	}
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	profile, err := pc.profiles.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.SendServiceError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (pc *ProfileController) CreateProfile(c *gin.Context) {
	var form forms.ProfileForm
	if !bindForm(c, &form) {
		return
	}

	avatar, ok := avatarFile(c)
	if !ok {
		return
	}

	profile, err := pc.profiles.Create(c.Request.Context(), currentUserID(c), form, avatar)
	if err != nil {
		sendUploadError(c, pc.log, "avatar", err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	var form forms.ProfileForm
	if !bindForm(c, &form) {
		return
	}

	avatar, ok := avatarFile(c)
	if !ok {
		return
	}

	profile, err := pc.profiles.Update(c.Request.Context(), currentUserID(c), c.Param("id"), form, avatar)
	if err != nil {
		sendUploadError(c, pc.log, "avatar", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetUser returns another user's public page.
func (pc *ProfileController) GetUser(c *gin.Context) {
	public, err := pc.profiles.Public(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		utils.SendServiceError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, public)
}

// Subscribe toggles the caller's subscription to :user_id.
func (pc *ProfileController) Subscribe(c *gin.Context) {
	result, err := pc.subscriptions.Toggle(c.Request.Context(), currentUserID(c), c.Param("user_id"))
	if err != nil {
		utils.SendServiceError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func avatarFile(c *gin.Context) (*multipart.FileHeader, bool) {
	files, ok := bindFiles(c, "avatar")
	if !ok || len(files) == 0 {
		return nil, ok
	}
	return files[0], true
}
