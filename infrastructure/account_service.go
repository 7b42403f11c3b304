package infrastructure

import (
	"context"

	"scorebet/domain/entities"
)

// StaticAccountService is an account/authority boundary backed by a fixed
// account list, for replay tooling and tests. A real node consults the
// account and committee state of the surrounding chain instead.
type StaticAccountService struct {
	accounts   map[string]struct{}
	moderators map[string]struct{}
}

// NewStaticAccountService creates the boundary from known accounts and the
// subset holding the betting moderator role
func NewStaticAccountService(accounts []string, moderators []string) *StaticAccountService {
	s := &StaticAccountService{
		accounts:   make(map[string]struct{}, len(accounts)),
		moderators: make(map[string]struct{}, len(moderators)),
	}
	for _, name := range accounts {
		s.accounts[name] = struct{}{}
	}
	for _, name := range moderators {
		s.accounts[name] = struct{}{}
		s.moderators[name] = struct{}{}
	}
	return s
}

// CheckAccountExistence returns a PreconditionError for unknown accounts
func (s *StaticAccountService) CheckAccountExistence(ctx context.Context, name string) error {
	if _, ok := s.accounts[name]; !ok {
		return entities.NewPreconditionErrorf("account '%s' does not exist", name)
	}
	return nil
}

// IsBettingModerator reports whether the account holds the moderator role
func (s *StaticAccountService) IsBettingModerator(ctx context.Context, name string) (bool, error) {
	_, ok := s.moderators[name]
	return ok, nil
}
