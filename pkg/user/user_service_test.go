package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pantryfit-backend/domain"
	"pantryfit-backend/entities"
	"pantryfit-backend/internal/config"
	"pantryfit-backend/pkg/jwt"
)

type memoryUserRepository struct {
	users map[string]*entities.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*entities.User)}
}

func (r *memoryUserRepository) CreateUser(_ context.Context, u *entities.User) error {
	r.users[u.ID.String()] = u
	return nil
}

func (r *memoryUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *memoryUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepository) UpdateUser(_ context.Context, u *entities.User) error {
	r.users[u.ID.String()] = u
	return nil
}

type recordingMailer struct {
	to      []string
	body    []string
	sendErr error
}

func (m *recordingMailer) SendMail(toEmail, _ string, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.to = append(m.to, toEmail)
	m.body = append(m.body, body)
	return nil
}

func newUserTestService() (UserService, *memoryUserRepository, *recordingMailer, jwt.JWTService) {
	repo := newMemoryUserRepository()
	mailer := &recordingMailer{}
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret"})
	service := NewUserService(repo, jwtService, mailer, "http://localhost:8080", zap.NewNop())
	return service, repo, mailer, jwtService
}

func TestRegisterAndLogin(t *testing.T) {
	service, repo, mailer, _ := newUserTestService()

	res, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "jdoe@example.com",
		Password: "hunter22",
		Height:   180,
	})
	require.NoError(t, err)
	assert.Equal(t, "jdoe@example.com", res.Email)
	assert.False(t, res.IsVerified)
	require.Len(t, repo.users, 1)

	for _, u := range repo.users {
		assert.NotEqual(t, "hunter22", u.Password, "password must be stored hashed")
	}

	require.Len(t, mailer.to, 1, "registration sends a verification mail")
	assert.Contains(t, mailer.body[0], "verify?token=")

	login, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "jdoe@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "bearer", login.TokenType)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _, _, _ := newUserTestService()
	req := domain.RegisterRequest{Email: "jdoe@example.com", Password: "hunter22"}

	_, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	service, repo, mailer, _ := newUserTestService()
	mailer.sendErr = errors.New("smtp unreachable")

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "jdoe@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err, "a mail failure must not fail registration")
	assert.Len(t, repo.users, 1)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service, _, _, _ := newUserTestService()
	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "jdoe@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email:    "jdoe@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "unknown email reads the same as a bad password")
}

func TestVerifyEmailFlow(t *testing.T) {
	service, repo, mailer, _ := newUserTestService()

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "jdoe@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	// Pull the token out of the mail body.
	body := mailer.body[0]
	start := strings.Index(body, "token=")
	require.Positive(t, start)
	token := body[start+len("token="):]
	token = token[:strings.IndexAny(token, "\"")]

	require.NoError(t, service.VerifyEmail(context.Background(), token))

	u, err := repo.GetUserByEmail(context.Background(), "jdoe@example.com")
	require.NoError(t, err)
	assert.True(t, u.IsVerified)
}

func TestVerifyEmailRejectsBadToken(t *testing.T) {
	service, _, _, _ := newUserTestService()
	err := service.VerifyEmail(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestMe(t *testing.T) {
	service, repo, _, _ := newUserTestService()
	userID := uuid.New()
	require.NoError(t, repo.CreateUser(context.Background(), &entities.User{
		ID:    userID,
		Email: "jdoe@example.com",
	}))

	res, err := service.Me(context.Background(), userID.String())
	require.NoError(t, err)
	assert.Equal(t, "jdoe@example.com", res.Email)

	_, err = service.Me(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateUserPartial(t *testing.T) {
	service, repo, _, _ := newUserTestService()
	userID := uuid.New()
	require.NoError(t, repo.CreateUser(context.Background(), &entities.User{
		ID:     userID,
		Email:  "jdoe@example.com",
		Height: 180,
		Weight: 75,
	}))

	require.NoError(t, service.UpdateUser(context.Background(), domain.UpdateUserRequest{
		Weight:      70,
		FitnessGoal: "lose",
	}, userID.String()))

	u := repo.users[userID.String()]
	assert.Equal(t, 70.0, u.Weight)
	assert.Equal(t, 180.0, u.Height, "unset fields keep their value")
	assert.Equal(t, "lose", u.FitnessGoal)
}
