// internal/services/auth_service_test.go
package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/shopline/shopline-backend/internal/clients"
	"github.com/shopline/shopline-backend/internal/store"
)

type AuthServiceTestSuite struct {
	suite.Suite
	server   *httptest.Server
	sessions *store.MemorySessionStore
	auth     *AuthService
	ctx      context.Context

	rejectLogin bool
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.rejectLogin = false
	suite.ctx = context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]clients.RemoteUser{
			{ID: 1, Email: "john@gmail.com", Username: "johnd", Password: "m38rmF$"},
			{ID: 2, Email: "morrison@gmail.com", Username: "mor_2314", Password: "83r5^_"},
		})
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if suite.rejectLogin {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		assert.Equal(suite.T(), "johnd", creds.Username)
		json.NewEncoder(w).Encode(map[string]string{"token": "remote-token"})
	})
	suite.server = httptest.NewServer(mux)

	suite.sessions = store.NewMemorySessionStore()
	authClient := clients.NewAuthClient(suite.server.URL, 5*time.Second)
	suite.auth = NewAuthService(authClient, suite.sessions)
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.server.Close()
	suite.sessions.Close()
}

func (suite *AuthServiceTestSuite) TestLoginSuccessPersistsToken() {
	token, err := suite.auth.Login(suite.ctx, &LoginRequest{
		Email:    "john@gmail.com",
		Password: "m38rmF$",
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "remote-token", token)

	stored, exists, err := suite.sessions.Token(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), exists)
	assert.Equal(suite.T(), "remote-token", stored)
}

func (suite *AuthServiceTestSuite) TestLoginUnknownEmail() {
	_, err := suite.auth.Login(suite.ctx, &LoginRequest{
		Email:    "nobody@gmail.com",
		Password: "whatever",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)

	_, exists, _ := suite.sessions.Token(suite.ctx)
	assert.False(suite.T(), exists)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	_, err := suite.auth.Login(suite.ctx, &LoginRequest{
		Email:    "john@gmail.com",
		Password: "wrong",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginRemoteRejection() {
	suite.rejectLogin = true

	_, err := suite.auth.Login(suite.ctx, &LoginRequest{
		Email:    "john@gmail.com",
		Password: "m38rmF$",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)

	_, exists, _ := suite.sessions.Token(suite.ctx)
	assert.False(suite.T(), exists)
}

func (suite *AuthServiceTestSuite) TestLoginValidatesRequest() {
	_, err := suite.auth.Login(suite.ctx, &LoginRequest{Email: "not-an-email", Password: "x"})
	assert.Error(suite.T(), err)

	_, err = suite.auth.Login(suite.ctx, &LoginRequest{Email: "john@gmail.com"})
	assert.Error(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestLogoutAndStatus() {
	status, err := suite.auth.Status(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), status.LoggedIn)

	_, err = suite.auth.Login(suite.ctx, &LoginRequest{
		Email:    "john@gmail.com",
		Password: "m38rmF$",
	})
	assert.NoError(suite.T(), err)

	status, err = suite.auth.Status(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), status.LoggedIn)

	assert.NoError(suite.T(), suite.auth.Logout(suite.ctx))

	status, err = suite.auth.Status(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), status.LoggedIn)

	// Logout without a session is still fine.
	assert.NoError(suite.T(), suite.auth.Logout(suite.ctx))
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
