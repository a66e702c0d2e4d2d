// File: /controllers/auth_controller.go
package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"photogram-api/forms"
	"photogram-api/middleware"
	"photogram-api/models"
	"photogram-api/services"
	"photogram-api/utils"
)

type AuthController struct {
	auth         *services.AuthService
	log          *slog.Logger
	secureCookie bool
}

func NewAuthController(auth *services.AuthService, log *slog.Logger, secureCookie bool) *AuthController {
	return &AuthController{
		auth:         auth,
		log:          log,
		secureCookie: secureCookie,
	}
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates the account and logs the new user in.
func (ac *AuthController) Register(c *gin.Context) {
	var form forms.RegisterForm
	if !bindForm(c, &form) {
		return
	}

	user, token, err := ac.auth.Register(c.Request.Context(), form)
	if err != nil {
		utils.SendServiceError(c, ac.log, err)
		return
	}

	ac.setTokenCookie(c, token)
	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

func (ac *AuthController) Login(c *gin.Context) {
	var form forms.LoginForm
	if !bindForm(c, &form) {
		return
	}

	user, token, err := ac.auth.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		utils.SendServiceError(c, ac.log, err)
		return
	}

	ac.setTokenCookie(c, token)
	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// Logout revokes the token used for this request and clears the cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.auth.Revoke(c.Request.Context(), middleware.CurrentClaims(c)); err != nil {
		utils.SendServiceError(c, ac.log, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", ac.secureCookie, true)
	utils.SendSuccess(c, "Successfully logged out", nil)
}

// Me returns the signed-in user.
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.auth.CurrentUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.SendServiceError(c, ac.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ac *AuthController) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, token, int(ac.auth.TokenTTL().Seconds()), "/", "", ac.secureCookie, true)
}
