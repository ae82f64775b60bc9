package session_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	session "github.com/tillworks/go-session"
)

// MockIdentityProvider implements session.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) GetCurrentUser(ctx context.Context, credential string) (*session.User, error) {
	args := m.Called(ctx, credential)
	var user *session.User
	if v := args.Get(0); v != nil {
		user = v.(*session.User)
	}
	return user, args.Error(1)
}

func (m *MockIdentityProvider) GetBusinessProfile(ctx context.Context, credential string) (*session.Business, error) {
	args := m.Called(ctx, credential)
	var business *session.Business
	if v := args.Get(0); v != nil {
		business = v.(*session.Business)
	}
	return business, args.Error(1)
}

func (m *MockIdentityProvider) Login(ctx context.Context, req session.LoginRequest) (*session.LoginResult, error) {
	args := m.Called(ctx, req)
	var result *session.LoginResult
	if v := args.Get(0); v != nil {
		result = v.(*session.LoginResult)
	}
	return result, args.Error(1)
}

// failingStorage simulates credential slot IO failures.
type failingStorage struct {
	credential string
	readErr    error
	writeErr   error
	clearErr   error
}

func (f *failingStorage) Read(context.Context) (string, error) {
	if f.readErr != nil {
		return "", f.readErr
	}
	return f.credential, nil
}

func (f *failingStorage) Write(_ context.Context, credential string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.credential = credential
	return nil
}

func (f *failingStorage) Clear(context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.credential = ""
	return nil
}

func newCashier() *session.User {
	businessID := uuid.New()
	return &session.User{
		ID:         uuid.New(),
		Email:      "cashier@acme.example",
		FullName:   "Casey Drawer",
		Role:       session.RoleCashier,
		BusinessID: &businessID,
	}
}

func newBusinessAdmin() *session.User {
	businessID := uuid.New()
	return &session.User{
		ID:         uuid.New(),
		Email:      "admin@acme.example",
		FullName:   "Alex Ledger",
		Role:       session.RoleBusinessAdmin,
		BusinessID: &businessID,
	}
}

func newSuperAdmin() *session.User {
	return &session.User{
		ID:       uuid.New(),
		Email:    "root@pos.example",
		FullName: "Page Platform",
		Role:     session.RoleSuperAdmin,
	}
}

func newAcme() *session.Business {
	return &session.Business{
		ID:        uuid.New(),
		Name:      "Acme",
		Subdomain: "acme",
		Status:    session.BusinessStatusActive,
	}
}
