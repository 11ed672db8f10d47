package stub

import (
	"net/http"
	"strings"

	"afisha/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

func (s *Server) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid payload", err.Error())
	}

	s.state.mu.Lock()
	acc := s.state.accounts[strings.ToLower(req.Email)]
	s.state.mu.Unlock()

	if acc == nil || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password", "")
	}

	token, err := s.tokens.issue(acc.user.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SERVER_ERROR", "failed to issue token", err.Error())
	}

	return ok(c, sessionResponse{Token: token, User: acc.user})
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid payload", err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 6 || strings.TrimSpace(req.Name) == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid registration payload", "")
	}

	role := entity.Role(req.Role)
	if req.Role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RoleBusiness {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "unsupported role", req.Role)
	}

	s.state.mu.Lock()
	if _, taken := s.state.accounts[email]; taken {
		s.state.mu.Unlock()

		return fail(c, http.StatusConflict, "EMAIL_TAKEN", "email already registered", email)
	}

	user := &entity.User{
		ID:    newID("user"),
		Email: email,
		Name:  strings.TrimSpace(req.Name),
		Role:  role,
	}
	s.state.addAccount(user, hashPassword(req.Password))
	if role == entity.RoleBusiness {
		business := &entity.Business{
			ID:       newID("biz"),
			OwnerID:  user.ID,
			Name:     user.Name,
			Tier:     entity.TierFree,
			CitySlug: "almaty",
		}
		s.state.businesses = append(s.state.businesses, business)
		s.state.ownedBusiness[user.ID] = business.ID
	}
	s.state.mu.Unlock()

	token, err := s.tokens.issue(user.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SERVER_ERROR", "failed to issue token", err.Error())
	}

	return created(c, sessionResponse{Token: token, User: user})
}
