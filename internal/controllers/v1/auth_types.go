package v1

import (
	"time"

	"github.com/finance-tracker/backend/internal/models"
)

type SignupRequest struct {
	Email           string `json:"email" binding:"required,email" example:"jane@example.com"` // Email address, used to log in
	Name            string `json:"name" example:"Jane Doe"`                                   // Display name
	Password        string `json:"password" binding:"required" example:"Sup3rSecret"`         // Password, at least 8 characters with upper and lower case letters and a digit
	ConfirmPassword string `json:"confirmPassword" binding:"required" example:"Sup3rSecret"`  // Must be equal to password
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"` // Email address
	Password string `json:"password" binding:"required" example:"Sup3rSecret"`   // Password
}

// User is the API representation of a User.
type User struct {
	models.DefaultModel
	Email string `json:"email" example:"jane@example.com"` // Email address
	Name  string `json:"name" example:"Jane Doe"`          // Display name
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		Email:        model.Email,
		Name:         model.Name,
	}
}

// Session is an issued access token.
type Session struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // Bearer token for the Authorization header
	ExpiresAt time.Time `json:"expiresAt" example:"2024-04-14T09:12:44Z"`                // Time the token expires
	User      User      `json:"user"`                                                    // The user the token was issued for
}

type SessionResponse struct {
	Data         *Session `json:"data"`                                                           // The session
	Error        *string  `json:"error" example:"the email address or password is incorrect"`     // The error, if any occurred
	Requirements []string `json:"requirements,omitempty" example:"at least one uppercase letter"` // Unmet password requirements
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                             // The authenticated user
	Error *string `json:"error" example:"you need to be logged in to access this resource"` // The error, if any occurred
}
