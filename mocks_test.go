package idpkit

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/idpkit/normalize"
)

// MockProvider is a mock implementation of Provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProvider) Config() Config {
	args := m.Called()
	return args.Get(0).(Config)
}

func (m *MockProvider) BuildAuthURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) Exchange(ctx context.Context, cb Callback) (Token, error) {
	args := m.Called(ctx, cb)
	return args.Get(0).(Token), args.Error(1)
}

func (m *MockProvider) FetchProfile(ctx context.Context, token Token) (normalize.Payload, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(normalize.Payload), args.Error(1)
}

func (m *MockProvider) Normalize(payload normalize.Payload, token Token) (normalize.Profile, error) {
	args := m.Called(payload, token)
	return args.Get(0).(normalize.Profile), args.Error(1)
}

// newMockProvider returns a provider mock with sane credential and naming
// defaults so tests only declare the calls they care about.
func newMockProvider() *MockProvider {
	p := &MockProvider{}
	p.On("Name").Return("acme").Maybe()
	p.On("Config").Return(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "https://app.example.com/auth/acme/callback",
	}).Maybe()
	return p
}

// MockSocialProvider is a provider mock that additionally implements every
// optional capability interface.
type MockSocialProvider struct {
	MockProvider
}

func (m *MockSocialProvider) Contacts(ctx context.Context, token Token) ([]Contact, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Contact), args.Error(1)
}

func (m *MockSocialProvider) SetStatus(ctx context.Context, token Token, status, pageID string) (Status, error) {
	args := m.Called(ctx, token, status, pageID)
	return args.Get(0).(Status), args.Error(1)
}

func (m *MockSocialProvider) Status(ctx context.Context, token Token, postID string) (Status, error) {
	args := m.Called(ctx, token, postID)
	return args.Get(0).(Status), args.Error(1)
}

func (m *MockSocialProvider) Pages(ctx context.Context, token Token, writableOnly bool) ([]Page, error) {
	args := m.Called(ctx, token, writableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Page), args.Error(1)
}

func (m *MockSocialProvider) Activity(ctx context.Context, token Token, stream ActivityStream) ([]Activity, error) {
	args := m.Called(ctx, token, stream)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Activity), args.Error(1)
}

func newMockSocialProvider() *MockSocialProvider {
	p := &MockSocialProvider{}
	p.On("Name").Return("social").Maybe()
	p.On("Config").Return(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "https://app.example.com/auth/social/callback",
	}).Maybe()
	return p
}

var (
	_ Provider         = (*MockProvider)(nil)
	_ ContactsProvider = (*MockSocialProvider)(nil)
	_ StatusWriter     = (*MockSocialProvider)(nil)
	_ StatusReader     = (*MockSocialProvider)(nil)
	_ PagesProvider    = (*MockSocialProvider)(nil)
	_ ActivityProvider = (*MockSocialProvider)(nil)
)
