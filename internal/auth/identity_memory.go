package auth

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// InMemoryIdentityProvider backs tests. It records sign-outs so tests can
// assert no session persists after a revoked login.
type InMemoryIdentityProvider struct {
	mu       sync.Mutex
	secrets  map[string]string // email -> bcrypt hash
	SignedIn map[string]bool
}

func NewInMemoryIdentityProvider() *InMemoryIdentityProvider {
	return &InMemoryIdentityProvider{
		secrets:  make(map[string]string),
		SignedIn: make(map[string]bool),
	}
}

func (p *InMemoryIdentityProvider) Create(ctx context.Context, email, secret string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.secrets[email]; ok {
		return ErrEmailInUse
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	if err != nil {
		return err
	}
	p.secrets[email] = string(hash)
	return nil
}

func (p *InMemoryIdentityProvider) SignIn(ctx context.Context, email, secret string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	hash, ok := p.secrets[email]
	if !ok {
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) != nil {
		return ErrInvalidCredentials
	}
	p.SignedIn[email] = true
	return nil
}

func (p *InMemoryIdentityProvider) SignOut(ctx context.Context, email string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.SignedIn, email)
	return nil
}
