package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/medville/medjobs/internal/apperrors"
	"github.com/medville/medjobs/internal/auth"
	"github.com/medville/medjobs/internal/dtos"
	"github.com/medville/medjobs/internal/models"
	"github.com/medville/medjobs/internal/store"
)

type AuthService struct {
	Users  store.UserStore
	Cities store.CityStore
	Tokens *auth.TokenManager
}

func NewAuthService(users store.UserStore, cities store.CityStore, tokens *auth.TokenManager) *AuthService {
	return &AuthService{Users: users, Cities: cities, Tokens: tokens}
}

type LoginResult struct {
	UserID    uint   `json:"userId"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Token     string `json:"token"`
}

func (s *AuthService) Signup(ctx context.Context, req *dtos.SignupRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Error creating user", err)
	}

	user := &models.User{
		Mail:       req.Mail,
		Password:   string(hash),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		PostalCode: req.PostalCode,
	}
	// The home city is optional; an unknown name is simply not linked,
	// which is what the original behavior was.
	if req.City != "" {
		if city, err := s.Cities.FindCityByName(ctx, req.City); err == nil {
			user.CityID = &city.ID
		}
	}

	if err := s.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.Conflict("A user with this mail already exists")
		}
		return nil, apperrors.Internal("Error creating user", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req *dtos.LoginRequest) (*LoginResult, error) {
	user, err := s.Users.FindUserByMail(ctx, req.Mail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.Unauthorized("User not found")
		}
		return nil, apperrors.Internal("Error logging in", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("Incorrect password")
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, apperrors.Internal("Error issuing token", err)
	}
	return &LoginResult{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Token:     token,
	}, nil
}
