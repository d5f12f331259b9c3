package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devfinds/devfinds/internal/database"
	"github.com/devfinds/devfinds/internal/email"
	"github.com/devfinds/devfinds/internal/models"
	"github.com/devfinds/devfinds/internal/queue"
	"github.com/devfinds/devfinds/internal/repository"
	"github.com/devfinds/devfinds/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// AuthServiceTestSuite contains auth service tests
type AuthServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	mail        *queue.MemoryQueue
	authService *Service
	ctx         context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), database.Migrate(db))

	suite.db = db
	suite.ctx = context.Background()
	suite.mail = queue.NewMemoryQueue(10)
	suite.authService = NewService(
		repository.NewUserRepository(db),
		[]byte("test_jwt_secret_key"),
		time.Hour,
		email.NewNotifier(suite.mail, "no-reply@devfinds.test"),
	)
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	if sqlDB, err := suite.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (suite *AuthServiceTestSuite) register(name, mail string) *AuthResponse {
	resp, err := suite.authService.Register(suite.ctx, RegisterRequest{
		Name:                name,
		Email:               mail,
		Password:            "password123",
		LearnedTechnologies: []string{"Go", "go", " React "},
	})
	require.NoError(suite.T(), err)
	return resp
}

func (suite *AuthServiceTestSuite) TestRegister() {
	resp := suite.register("Ada", "Ada@Example.com")

	assert.NotEmpty(suite.T(), resp.Token)
	assert.Equal(suite.T(), "ada@example.com", resp.User.Email)
	assert.Equal(suite.T(), []string{"Go", "React"}, resp.User.LearnedTechnologies)
	assert.NotEqual(suite.T(), "password123", resp.User.PasswordHash)

	// welcome mail is queued
	job, err := suite.mail.Dequeue(suite.ctx, time.Second)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), job)
	assert.Equal(suite.T(), "ada@example.com", job.To)
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	suite.register("Ada", "ada@example.com")

	_, err := suite.authService.Register(suite.ctx, RegisterRequest{
		Name:     "Other",
		Email:    "ADA@example.com",
		Password: "password123",
	})
	assert.ErrorIs(suite.T(), err, ErrUserExists)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	suite.register("Ada", "ada@example.com")

	resp, err := suite.authService.Login(suite.ctx, LoginRequest{Email: "ada@example.com", Password: "password123"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusOnline, resp.User.Status)

	_, err = suite.authService.Login(suite.ctx, LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)

	_, err = suite.authService.Login(suite.ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogout() {
	resp := suite.register("Ada", "ada@example.com")

	user, err := suite.authService.Logout(suite.ctx, resp.User.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusOffline, user.Status)
}

func (suite *AuthServiceTestSuite) TestValidateToken() {
	resp := suite.register("Ada", "ada@example.com")

	user, err := suite.authService.ValidateToken(suite.ctx, resp.Token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), resp.User.ID, user.ID)

	_, err = suite.authService.ValidateToken(suite.ctx, "not-a-jwt")
	assert.ErrorIs(suite.T(), err, ErrInvalidToken)

	other := NewService(repository.NewUserRepository(suite.db), []byte("another-secret"), time.Hour, nil)
	_, err = other.ValidateToken(suite.ctx, resp.Token)
	assert.ErrorIs(suite.T(), err, ErrInvalidToken)
}

func (suite *AuthServiceTestSuite) TestExpiredToken() {
	resp := suite.register("Ada", "ada@example.com")

	token, _, err := signToken([]byte("test_jwt_secret_key"), resp.User.ID, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(suite.T(), err)

	_, err = suite.authService.ValidateToken(suite.ctx, token)
	assert.ErrorIs(suite.T(), err, ErrInvalidToken)
}

func (suite *AuthServiceTestSuite) TestTokenForDeletedUser() {
	token, _, err := signToken([]byte("test_jwt_secret_key"), "missing-user", time.Hour, time.Now())
	require.NoError(suite.T(), err)

	_, err = suite.authService.ValidateToken(suite.ctx, token)
	assert.ErrorIs(suite.T(), err, ErrInvalidToken)
}

func (suite *AuthServiceTestSuite) TestRequireAuth() {
	resp := suite.register("Ada", "ada@example.com")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", RequireAuth(suite.authService), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(util.UserIDKey))
	})

	cases := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+resp.Token) }, http.StatusOK},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: resp.Token}) }, http.StatusOK},
		{"missing", func(r *http.Request) {}, http.StatusUnauthorized},
		{"bad scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }, http.StatusUnauthorized},
		{"bad token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		tc.setup(req)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(suite.T(), tc.status, w.Code, tc.name)
		if tc.status == http.StatusOK {
			assert.Equal(suite.T(), resp.User.ID, w.Body.String(), tc.name)
		}
	}
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
