package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/codewords/internal/dependencies/mocks"
	"github.com/mcoot/codewords/internal/storage/memory"
	"github.com/mcoot/codewords/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

// CreateGuest tests

func (s *ServiceSuite) TestCreateGuestSucceeds() {
	session, err := s.service.CreateGuest(s.ctx, "Alice")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.NotEmpty(session.PlayerID())
	s.Equal("Alice", session.Player.DisplayName)
	s.True(session.Player.IsGuest)
	s.Equal(s.clock.Now().Add(24*time.Hour), session.ExpiresAt)
}

func (s *ServiceSuite) TestCreateGuestPersistsPlayer() {
	session, _ := s.service.CreateGuest(s.ctx, "Alice")

	player, err := s.storage.GetPlayer(s.ctx, session.PlayerID())
	s.Require().NoError(err)
	s.Equal("Alice", player.DisplayName)
}

func (s *ServiceSuite) TestGuestsGetDistinctIdentities() {
	a, _ := s.service.CreateGuest(s.ctx, "Alice")
	b, _ := s.service.CreateGuest(s.ctx, "Alice")

	s.NotEqual(a.PlayerID(), b.PlayerID())
	s.NotEqual(a.Token, b.Token)
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	session, err := s.service.Register(s.ctx, "alice", "password123", "Alice")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("Alice", session.Player.DisplayName)
	s.False(session.Player.IsGuest)
}

func (s *ServiceSuite) TestRegisterHashesPassword() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "Alice")

	rp, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", rp.Username)
	s.NotEmpty(rp.PasswordHash)
	s.NotEqual("password123", rp.PasswordHash)
}

func (s *ServiceSuite) TestRegisterFailsIfUsernameExists() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "Alice")

	_, err := s.service.Register(s.ctx, " ALICE ", "different", "Alice2")
	s.ErrorIs(err, ErrUsernameExists)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	registered, _ := s.service.Register(s.ctx, "alice", "password123", "Alice")

	session, err := s.service.Login(s.ctx, "Alice", "password123")
	s.Require().NoError(err)

	s.NotEqual(registered.Token, session.Token)
	s.Equal(registered.PlayerID(), session.PlayerID())
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "Alice")

	_, err := s.service.Login(s.ctx, "alice", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Authenticate tests

func (s *ServiceSuite) TestAuthenticateSucceeds() {
	session, _ := s.service.CreateGuest(s.ctx, "Alice")

	got, err := s.service.Authenticate(session.Token)
	s.Require().NoError(err)
	s.Equal(session.PlayerID(), got.PlayerID())
}

func (s *ServiceSuite) TestAuthenticateFailsWithUnknownToken() {
	_, err := s.service.Authenticate("invalid_token")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestAuthenticateFailsWhenExpired() {
	session, _ := s.service.CreateGuest(s.ctx, "Alice")

	s.clock.Advance(25 * time.Hour)

	_, err := s.service.Authenticate(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

// Logout tests

func (s *ServiceSuite) TestLogoutEndsSession() {
	session, _ := s.service.CreateGuest(s.ctx, "Alice")

	s.service.Logout(session.Token)

	_, err := s.service.Authenticate(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestLogoutUnknownTokenIsNoop() {
	s.service.Logout("unknown_token")
}

// Expiry tests

func (s *ServiceSuite) TestPurgeExpired() {
	old, _ := s.service.CreateGuest(s.ctx, "Alice")
	s.clock.Advance(25 * time.Hour)
	current, _ := s.service.CreateGuest(s.ctx, "Bob")

	s.Equal(1, s.service.PurgeExpired())

	_, err := s.service.Authenticate(old.Token)
	s.ErrorIs(err, ErrInvalidSession)
	_, err = s.service.Authenticate(current.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestRunCleanupStopsOnCancel() {
	_, _ = s.service.CreateGuest(s.ctx, "Alice")
	s.clock.Advance(25 * time.Hour)

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})
	go func() {
		s.service.RunCleanup(ctx, 5*time.Millisecond)
		close(done)
	}()

	s.Eventually(func() bool {
		return s.service.PurgeExpired() == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
