package handler

import "github.com/leadflow/lead-distribution/internal/core/domain"

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Mobile   string `json:"mobile"   validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

// createUserRequest is shared by agent creation (admin) and admin creation
// (superadmin). Format rules live in the service layer so every creation
// path rejects with identical messages.
type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Mobile   string `json:"mobile"   validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Name   string `json:"name"   validate:"required"`
	Email  string `json:"email"  validate:"required"`
	Mobile string `json:"mobile" validate:"required"`
}

// --- Response types ---

// publicUser is the profile shape returned by auth and user management
// endpoints. It never carries the password hash.
type publicUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile,omitempty"`
	Role      string `json:"role"`
	CreatedBy string `json:"created_by,omitempty"`
}

func toPublicUser(u *domain.User) *publicUser {
	if u == nil {
		return nil
	}
	return &publicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Mobile:    u.Mobile,
		Role:      u.Role,
		CreatedBy: u.CreatedBy,
	}
}

func toPublicUsers(users []*domain.User) []*publicUser {
	out := make([]*publicUser, len(users))
	for i, u := range users {
		out[i] = toPublicUser(u)
	}
	return out
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *publicUser `json:"user"`
}

type userResponse struct {
	Message string      `json:"message"`
	User    *publicUser `json:"user,omitempty"`
}

type agentResponse struct {
	Message string      `json:"message,omitempty"`
	Agent   *publicUser `json:"agent,omitempty"`
}

type agentListResponse struct {
	Agents []*publicUser `json:"agents"`
}

type adminResponse struct {
	Message string      `json:"message"`
	Admin   *publicUser `json:"admin"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse documents the error envelope produced by the central HTTP
// error handler, for the generated API docs.
type errorResponse struct {
	Message string `json:"message"`
}
