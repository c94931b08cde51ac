package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/signup", OptionsPost)
		r.POST("/signup", co.Signup)
		r.OPTIONS("/login", OptionsPost)
		r.POST("/login", co.Login)
	}

	me := r.Group("/me", auth.Middleware(co.Tokens))
	{
		me.OPTIONS("", OptionsGet)
		me.GET("", co.GetMe)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/signup [options]
// @Router			/v1/auth/login [options]
func OptionsPost(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/me [options]
func OptionsGet(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Sign up
// @Description	Creates a new user and returns a session for it
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201		{object}	SessionResponse
// @Failure		400		{object}	SessionResponse
// @Failure		500		{object}	SessionResponse
// @Param			signup	body		SignupRequest	true	"Sign up data"
// @Router			/v1/auth/signup [post]
func (co Controller) Signup(c *gin.Context) {
	var request SignupRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{Error: &s})
		return
	}

	if request.Password != request.ConfirmPassword {
		s := auth.ErrPasswordMismatch.Error()
		c.JSON(http.StatusBadRequest, SessionResponse{Error: &s})
		return
	}

	requirements := auth.PasswordRequirements(request.Password)
	if len(requirements) > 0 {
		s := auth.ErrWeakPassword.Error()
		c.JSON(http.StatusBadRequest, SessionResponse{Error: &s, Requirements: requirements})
		return
	}

	hash, err := auth.HashPassword(request.Password, co.Config.Auth.BcryptCost)
	if err != nil {
		log.Error().Err(err).Msg("Signup")
		s := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{Error: &s})
		return
	}

	user := models.User{
		Email:        request.Email,
		Name:         request.Name,
		PasswordHash: hash,
	}

	err = co.db(c).Create(&user).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{Error: &s})
		return
	}

	co.session(c, http.StatusCreated, user)
}

// @Summary		Log in
// @Description	Verifies the credentials and returns a session
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200		{object}	SessionResponse
// @Failure		400		{object}	SessionResponse
// @Failure		401		{object}	SessionResponse
// @Failure		500		{object}	SessionResponse
// @Param			login	body		LoginRequest	true	"Credentials"
// @Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var request LoginRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{Error: &s})
		return
	}

	var user models.User
	err = co.db(c).Where("email = ?", strings.ToLower(strings.TrimSpace(request.Email))).First(&user).Error
	if err != nil {
		// Do not tell which of email and password is wrong
		if errors.Is(err, models.ErrResourceNotFound) {
			err = auth.ErrInvalidCredentials
		}

		s := err.Error()
		c.JSON(status(err), SessionResponse{Error: &s})
		return
	}

	err = auth.CheckPassword(user.PasswordHash, request.Password)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{Error: &s})
		return
	}

	co.session(c, http.StatusOK, user)
}

// @Summary		Current user
// @Description	Returns the authenticated user
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	UserResponse
// @Failure		404	{object}	UserResponse
// @Router			/v1/auth/me [get]
func (co Controller) GetMe(c *gin.Context) {
	var user models.User
	err := co.db(c).Where("id = ?", auth.UserID(c)).First(&user).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{Error: &s})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

func (co Controller) session(c *gin.Context, code int, user models.User) {
	token, expires, err := co.Tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("Session")
		s := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{Error: &s})
		return
	}

	c.JSON(code, SessionResponse{Data: &Session{
		Token:     token,
		ExpiresAt: expires,
		User:      newUser(user),
	}})
}
