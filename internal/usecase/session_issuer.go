package usecase

import (
	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/token"
)

const tokenTypeBearer = "Bearer"

type sessionIssuer struct {
	tokens *token.Issuer
}

// NewSessionIssuer adapts the JWT issuer to the domain's session contract.
func NewSessionIssuer(tokens *token.Issuer) domain.SessionIssuer {
	return &sessionIssuer{tokens: tokens}
}

func (s *sessionIssuer) Issue(account *domain.Account) (*domain.Session, error) {
	pair, err := s.tokens.Issue(account.ID, account.Role.String())
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		AccountID:        account.ID,
		Role:             account.Role,
		TokenType:        tokenTypeBearer,
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}, nil
}

func (s *sessionIssuer) ParseAccess(tokenString string) (*domain.SessionClaims, error) {
	return s.parse(tokenString, token.TypeAccess)
}

func (s *sessionIssuer) ParseRefresh(tokenString string) (*domain.SessionClaims, error) {
	return s.parse(tokenString, token.TypeRefresh)
}

func (s *sessionIssuer) parse(tokenString, typ string) (*domain.SessionClaims, error) {
	claims, err := s.tokens.Parse(tokenString, typ)
	if err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, token.ErrInvalid
	}
	return &domain.SessionClaims{AccountID: claims.UserID, Role: role}, nil
}
