package services

import (
	"linkfolio/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

type PasswordService struct {
	cost int
	log  logger.Logger
}

func NewPasswordService(cost int) *PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordService{
		cost: cost,
		log:  logger.New("PasswordService"),
	}
}

func (s *PasswordService) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", s.log.Function("Hash").Err("failed to hash password", err)
	}
	return string(hash), nil
}

// Verify reports a generic error regardless of cause so callers cannot
// distinguish a wrong password from a malformed hash.
func (s *PasswordService) Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return s.log.Function("Verify").ErrMsg("password verification failed")
	}
	return nil
}
