// Auth HTTP handlers.
//
//   - GET  /auth/me        (current identity, may still be loading)
//   - POST /auth/sign-in
//   - POST /auth/sign-up   (signs the new account in)
//   - POST /auth/sign-out
//
// Failures carry only the category message from the identity adapter.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-study-session/internal/domain"
)

// CredentialsRequest is the sign-in and sign-up payload.
type CredentialsRequest struct {
	Email    string `json:"email" example:"ana@example.com"`
	Password string `json:"password" example:"correct-horse"`
}

// AuthResponse wraps the signed-in user.
type AuthResponse struct {
	User *domain.User `json:"user"`
}

// Me godoc
// @ID          me
// @Summary     Current identity
// @Description Returns the signed-in user, or null. loading is true until the provider has reported once.
// @Tags        Auth
// @Produce     json
// @Success     200  {object}  domain.Identity
// @Router      /auth/me [get]
func (h *Handlers) Me(c *gin.Context) {
	ok(c, http.StatusOK, h.identity.Current())
}

// SignIn godoc
// @ID          signIn
// @Summary     Sign in with email and password
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CredentialsRequest  true  "Credentials"
// @Success     200  {object}  handlers.AuthResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Sign in failed"
// @Router      /auth/sign-in [post]
func (h *Handlers) SignIn(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	u, err := h.identity.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, http.StatusUnauthorized, ErrCodeSignInFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, AuthResponse{User: u})
}

// SignUp godoc
// @ID          signUp
// @Summary     Create an account
// @Description Creates the account and signs it in. Requires a valid email and a password of at least 6 characters.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CredentialsRequest  true  "Credentials"
// @Success     201  {object}  handlers.AuthResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Account creation failed"
// @Router      /auth/sign-up [post]
func (h *Handlers) SignUp(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	u, err := h.identity.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeSignUpFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, AuthResponse{User: u})
}

// SignOut godoc
// @ID          signOut
// @Summary     Sign out
// @Tags        Auth
// @Success     204  {string}  string  "No Content"
// @Failure     500  {object}  handlers.ErrorResponse  "Sign out failed"
// @Router      /auth/sign-out [post]
func (h *Handlers) SignOut(c *gin.Context) {
	if err := h.identity.SignOut(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeSignOutFailed, err.Error())
		return
	}
	noContent(c)
}
