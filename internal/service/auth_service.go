package service

import (
	"supervision_backend/internal/config"
	"supervision_backend/internal/model"
	"supervision_backend/internal/repository"
	"supervision_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{UserRepo: userRepo, Cfg: cfg}
}

type RegisterRequest struct {
	Name     string         `json:"name" binding:"required,max=100"`
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=8"`
	Role     model.UserRole `json:"role" binding:"required"`
	Area     *model.Area    `json:"area"`
}

func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	switch req.Role {
	case model.Supervisor:
		// the senior role is facility-wide, no area binding
	case model.AreaSupervisor, model.Operator:
		if req.Area == nil || !req.Area.Valid() {
			return nil, util.Invalid("area", "area roles require a valid area")
		}
	default:
		return nil, util.Invalid("role", "must be supervisor, area_supervisor or operator")
	}

	_, err := s.UserRepo.FindByEmail(req.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, &util.UpstreamError{Op: "user lookup", Err: err}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
		Area:     req.Area,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, &util.UpstreamError{Op: "user create", Err: err}
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}
	if user.Disabled {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	// best effort; login proceeds even when the timestamp write fails
	_ = s.UserRepo.UpdateLastLogin(user.ID)

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, &util.NotFoundError{Entity: "user", ID: "self"}
	}
	if err != nil {
		return nil, &util.UpstreamError{Op: "user lookup", Err: err}
	}
	return user, nil
}
