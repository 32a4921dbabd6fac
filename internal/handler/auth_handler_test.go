package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transio/internal/model"
	"transio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type stubUserService struct {
	registerResp *service.UserResponse
	registerErr  error
}

func (s *stubUserService) CreateUser(ctx context.Context, req service.CreateUserRequest) (*service.UserResponse, error) {
	return nil, nil
}

func (s *stubUserService) Register(ctx context.Context, req service.RegisterRequest) (*service.UserResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubUserService) Login(ctx context.Context, req service.LoginUserRequest) (*service.TokenResponse, error) {
	return nil, nil
}

func (s *stubUserService) GetUserByID(ctx context.Context, id string) (*service.UserResponse, error) {
	return &service.UserResponse{ID: uuid.New(), Username: "patron", Role: model.RoleAdmin}, nil
}

func (s *stubUserService) ListUsers(ctx context.Context, page, limit int) ([]service.UserResponse, int64, error) {
	return nil, 0, nil
}

func (s *stubUserService) UpdateUser(ctx context.Context, id string, req service.UpdateUserRequest) (*service.UserResponse, error) {
	return nil, nil
}

func (s *stubUserService) DeleteUser(ctx context.Context, id string) error { return nil }

func (s *stubUserService) ChangePassword(ctx context.Context, id string, req service.ChangePasswordRequest) error {
	return nil
}

func newAuthTestRouter(svc service.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAuthHandler(svc).RegisterRoutes(r.Group(""))
	return r
}

func TestRegisterEndpointCreatesAccount(t *testing.T) {
	svc := &stubUserService{registerResp: &service.UserResponse{
		ID:       uuid.New(),
		Username: "patron",
		Role:     model.RoleAdmin,
	}}
	r := newAuthTestRouter(svc)

	body := `{"username":"patron","email":"patron@transio.ro","password":"parola123"}`
	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d want %d, body %s", w.Code, http.StatusCreated, w.Body.String())
	}
}

func TestRegisterEndpointForbiddenWhenDisabled(t *testing.T) {
	svc := &stubUserService{registerErr: service.ErrRegistrationDisabled}
	r := newAuthTestRouter(svc)

	body := `{"username":"patron","email":"patron@transio.ro","password":"parola123"}`
	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusForbidden)
	}
}

func TestRegisterEndpointRejectsMissingFields(t *testing.T) {
	r := newAuthTestRouter(&stubUserService{})

	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(`{"username":"patron"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusBadRequest)
	}
}

func TestProfileRouteRequiresAuth(t *testing.T) {
	r := newAuthTestRouter(&stubUserService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/auth/profile", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusUnauthorized)
	}
}
