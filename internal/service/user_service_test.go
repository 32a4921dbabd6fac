package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"transio/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errUserNotFound = errors.New("record not found")

type stubUserRepo struct {
	created *model.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = uuid.New()
	s.created = user
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.created != nil && s.created.ID.String() == id {
		return s.created, nil
	}
	return nil, errUserNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.created != nil && s.created.Email == email {
		return s.created, nil
	}
	return nil, errUserNotFound
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if s.created != nil && s.created.Username == username {
		return s.created, nil
	}
	return nil, errUserNotFound
}

func (s *stubUserRepo) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	if s.created == nil {
		return nil, 0, nil
	}
	return []model.User{*s.created}, 1, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *model.User) error {
	s.created = user
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id string) error { return nil }

func TestRegisterForcesAdminRole(t *testing.T) {
	t.Setenv("ALLOW_REGISTER", "true")
	repo := &stubUserRepo{}
	svc := NewUserService(repo)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "patron",
		Email:    "patron@transio.ro",
		Password: "parola123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Fatalf("role: got %q want %q", user.Role, model.RoleAdmin)
	}
	if repo.created == nil || repo.created.Password == "parola123" {
		t.Fatal("password must be stored hashed")
	}
}

func TestRegisterDisabledByDefault(t *testing.T) {
	t.Setenv("ALLOW_REGISTER", "")
	svc := NewUserService(&stubUserRepo{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "patron",
		Email:    "patron@transio.ro",
		Password: "parola123",
	})
	if !errors.Is(err, ErrRegistrationDisabled) {
		t.Fatalf("err: got %v want ErrRegistrationDisabled", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Setenv("ALLOW_REGISTER", "true")
	repo := &stubUserRepo{created: &model.User{
		ID:       uuid.New(),
		Username: "existent",
		Email:    "patron@transio.ro",
	}}
	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "patron",
		Email:    "patron@transio.ro",
		Password: "parola123",
	})
	if err == nil {
		t.Fatal("expected duplicate email error")
	}
}

func TestSignTokenLifetime(t *testing.T) {
	user := &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	tokenString, err := SignToken(user)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret()), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	exp := time.Unix(int64(claims["exp"].(float64)), 0)

	want := time.Now().Add(TokenTTL)
	if exp.Before(want.Add(-time.Minute)) || exp.After(want.Add(time.Minute)) {
		t.Fatalf("exp: got %v want about %v", exp, want)
	}
}
