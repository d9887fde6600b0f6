package web_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/idpkit"
	"github.com/dmitrymomot/idpkit/normalize"
)

// MockProvider is a mock implementation of idpkit.Provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProvider) Config() idpkit.Config {
	args := m.Called()
	return args.Get(0).(idpkit.Config)
}

func (m *MockProvider) BuildAuthURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) Exchange(ctx context.Context, cb idpkit.Callback) (idpkit.Token, error) {
	args := m.Called(ctx, cb)
	return args.Get(0).(idpkit.Token), args.Error(1)
}

func (m *MockProvider) FetchProfile(ctx context.Context, token idpkit.Token) (normalize.Payload, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(normalize.Payload), args.Error(1)
}

func (m *MockProvider) Normalize(payload normalize.Payload, token idpkit.Token) (normalize.Profile, error) {
	args := m.Called(payload, token)
	return args.Get(0).(normalize.Profile), args.Error(1)
}

func newMockProvider(name string) *MockProvider {
	p := &MockProvider{}
	p.On("Name").Return(name).Maybe()
	p.On("Config").Return(idpkit.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "https://app.example.com/auth/" + name + "/callback",
	}).Maybe()
	return p
}

var _ idpkit.Provider = (*MockProvider)(nil)
