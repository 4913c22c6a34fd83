package domain

import (
	"context"
	"testing"
	"time"

	"github.com/jhmfreitas/usermanager-challenge/internal/entities"
	"github.com/jhmfreitas/usermanager-challenge/internal/repository"
	"github.com/jhmfreitas/usermanager-challenge/internal/security"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type repoMock struct{ mock.Mock }

var _ repository.Repository = (*repoMock)(nil)

func (m *repoMock) OnStart(_ context.Context) error { return nil }
func (m *repoMock) OnStop(_ context.Context) error  { return nil }

func (m *repoMock) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) Users(ctx context.Context) ([]entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *repoMock) UserByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) UpdateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *repoMock) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *repoMock) CreateProject(ctx context.Context, link entities.ProjectLink) (*entities.ProjectLink, error) {
	args := m.Called(ctx, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProjectLink), args.Error(1)
}

func (m *repoMock) ProjectsByUser(ctx context.Context, userID int64) ([]entities.ProjectLink, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ProjectLink), args.Error(1)
}

func (m *repoMock) ProjectByKey(ctx context.Context, key entities.ProjectKey) (*entities.ProjectLink, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProjectLink), args.Error(1)
}

func newTestUsecase(repo *repoMock) (*Usecase, security.PasswordHasher) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	return New(zap.NewNop().Sugar(), context.Background(), repo, hasher, time.Second), hasher
}

func strPtr(s string) *string { return &s }

func TestUsecase_CreateUserValidation(t *testing.T) {
	repo := &repoMock{}
	uc, _ := newTestUsecase(repo)

	_, err := uc.CreateUser(context.Background(), "", "password123", nil)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)

	repo.On("EmailExists", mock.Anything, "a@x.com").Return(false, nil)
	_, err = uc.CreateUser(context.Background(), "a@x.com", "", nil)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestUsecase_CreateUserDuplicateEmail(t *testing.T) {
	repo := &repoMock{}
	uc, _ := newTestUsecase(repo)

	repo.On("EmailExists", mock.Anything, "a@x.com").Return(true, nil)

	_, err := uc.CreateUser(context.Background(), "a@x.com", "password123", nil)
	require.ErrorIs(t, err, entities.ErrEmailExists)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestUsecase_CreateUserHashesPassword(t *testing.T) {
	repo := &repoMock{}
	uc, hasher := newTestUsecase(repo)

	repo.On("EmailExists", mock.Anything, "a@x.com").Return(false, nil)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u entities.User) bool {
		return u.Email == "a@x.com" &&
			u.PasswordHash != "password123" &&
			hasher.Verify("password123", u.PasswordHash)
	})).Return(&entities.User{ID: 1, Email: "a@x.com"}, nil)

	created, err := uc.CreateUser(context.Background(), "a@x.com", "password123", strPtr("John Doe"))
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	repo.AssertExpectations(t)
}

func TestUsecase_UpdateUserSameEmailSkipsDuplicateCheck(t *testing.T) {
	repo := &repoMock{}
	uc, _ := newTestUsecase(repo)

	current := &entities.User{ID: 1, Email: "a@x.com", PasswordHash: "hashed", Name: strPtr("John")}
	repo.On("UserByID", mock.Anything, int64(1)).Return(current, nil)
	repo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u entities.User) bool {
		return u.ID == 1 && u.Email == "a@x.com" && u.Name == nil
	})).Return(&entities.User{ID: 1, Email: "a@x.com"}, nil)

	_, err := uc.UpdateUser(context.Background(), 1, "a@x.com", "", nil)
	require.NoError(t, err)
	repo.AssertNotCalled(t, "EmailExists", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestUsecase_UpdateUserEmailInUse(t *testing.T) {
	repo := &repoMock{}
	uc, _ := newTestUsecase(repo)

	current := &entities.User{ID: 1, Email: "a@x.com", PasswordHash: "hashed"}
	repo.On("UserByID", mock.Anything, int64(1)).Return(current, nil)
	repo.On("EmailExists", mock.Anything, "b@x.com").Return(true, nil)

	_, err := uc.UpdateUser(context.Background(), 1, "b@x.com", "", nil)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestUsecase_UpdateUserNotFound(t *testing.T) {
	repo := &repoMock{}
	uc, _ := newTestUsecase(repo)

	repo.On("UserByID", mock.Anything, int64(99)).Return(nil, entities.ErrUserNotFound)

	_, err := uc.UpdateUser(context.Background(), 99, "a@x.com", "", nil)
	require.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestUsecase_UpdateUserRehashesPassword(t *testing.T) {
	repo := &repoMock{}
	uc, hasher := newTestUsecase(repo)

	current := &entities.User{ID: 1, Email: "a@x.com", PasswordHash: "oldhash"}
	repo.On("UserByID", mock.Anything, int64(1)).Return(current, nil)
	repo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u entities.User) bool {
		return u.PasswordHash != "oldhash" && hasher.Verify("newpassword", u.PasswordHash)
	})).Return(&entities.User{ID: 1, Email: "a@x.com"}, nil)

	_, err := uc.UpdateUser(context.Background(), 1, "", "newpassword", nil)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUsecase_AddProjectValidation(t *testing.T) {
	repo := &repoMock{}
	uc, _ := newTestUsecase(repo)

	_, err := uc.AddProject(context.Background(), 1, "", "Alpha")
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = uc.AddProject(context.Background(), 1, "P1", "")
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	repo.AssertNotCalled(t, "CreateProject", mock.Anything, mock.Anything)
}

func TestUsecase_AddProjectUserNotFound(t *testing.T) {
	repo := &repoMock{}
	uc, _ := newTestUsecase(repo)

	repo.On("UserByID", mock.Anything, int64(999)).Return(nil, entities.ErrUserNotFound)

	_, err := uc.AddProject(context.Background(), 999, "P1", "Alpha")
	require.ErrorIs(t, err, entities.ErrUserNotFound)
	repo.AssertNotCalled(t, "CreateProject", mock.Anything, mock.Anything)
}

func TestUsecase_AddProjectDuplicateLink(t *testing.T) {
	repo := &repoMock{}
	uc, _ := newTestUsecase(repo)

	owner := &entities.User{ID: 1, Email: "a@x.com", PasswordHash: "hashed"}
	repo.On("UserByID", mock.Anything, int64(1)).Return(owner, nil)
	repo.On("ProjectsByUser", mock.Anything, int64(1)).Return([]entities.ProjectLink{
		{Key: entities.ProjectKey{ProjectID: "P1", UserID: 1}, Name: "Alpha"},
	}, nil)

	_, err := uc.AddProject(context.Background(), 1, "P1", "Beta")
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "CreateProject", mock.Anything, mock.Anything)
}

func TestUsecase_AddProjectAttachesLinkToOwner(t *testing.T) {
	repo := &repoMock{}
	uc, _ := newTestUsecase(repo)

	owner := &entities.User{ID: 1, Email: "a@x.com", PasswordHash: "hashed"}
	repo.On("UserByID", mock.Anything, int64(1)).Return(owner, nil)
	repo.On("ProjectsByUser", mock.Anything, int64(1)).Return([]entities.ProjectLink{}, nil)
	repo.On("CreateProject", mock.Anything, mock.MatchedBy(func(l entities.ProjectLink) bool {
		return l.Key == entities.ProjectKey{ProjectID: "P1", UserID: 1} && l.Name == "Alpha" && l.Owner == owner
	})).Return(&entities.ProjectLink{
		Key:   entities.ProjectKey{ProjectID: "P1", UserID: 1},
		Name:  "Alpha",
		Owner: owner,
	}, nil)

	link, err := uc.AddProject(context.Background(), 1, "P1", "Alpha")
	require.NoError(t, err)
	require.Equal(t, "P1", link.ID())
	require.Same(t, owner, link.Owner)
	require.Len(t, owner.Projects, 1)
	repo.AssertExpectations(t)
}

func TestUsecase_ProjectValidation(t *testing.T) {
	repo := &repoMock{}
	uc, _ := newTestUsecase(repo)

	_, err := uc.Project(context.Background(), 1, "")
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestUsecase_ProjectRoundTrip(t *testing.T) {
	repo := &repoMock{}
	uc, _ := newTestUsecase(repo)

	owner := &entities.User{ID: 1, Email: "a@x.com", PasswordHash: "hashed"}
	repo.On("UserByID", mock.Anything, int64(1)).Return(owner, nil)
	repo.On("ProjectByKey", mock.Anything, entities.ProjectKey{ProjectID: "P1", UserID: 1}).
		Return(&entities.ProjectLink{Key: entities.ProjectKey{ProjectID: "P1", UserID: 1}, Name: "Alpha"}, nil)

	link, err := uc.Project(context.Background(), 1, "P1")
	require.NoError(t, err)
	require.Equal(t, "P1", link.ID())
	require.Equal(t, "Alpha", link.Name)
	require.Same(t, owner, link.Owner)
}

func TestUsecase_ProjectsSetsOwner(t *testing.T) {
	repo := &repoMock{}
	uc, _ := newTestUsecase(repo)

	owner := &entities.User{ID: 1, Email: "a@x.com", PasswordHash: "hashed"}
	repo.On("UserByID", mock.Anything, int64(1)).Return(owner, nil)
	repo.On("ProjectsByUser", mock.Anything, int64(1)).Return([]entities.ProjectLink{
		{Key: entities.ProjectKey{ProjectID: "P1", UserID: 1}, Name: "Alpha"},
		{Key: entities.ProjectKey{ProjectID: "P2", UserID: 1}, Name: "Beta"},
	}, nil)

	links, err := uc.Projects(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, links, 2)
	for _, l := range links {
		require.Same(t, owner, l.Owner)
	}
}

func TestUsecase_DeleteUserDelegates(t *testing.T) {
	repo := &repoMock{}
	uc, _ := newTestUsecase(repo)

	repo.On("DeleteUser", mock.Anything, int64(1)).Return(nil).Once()
	require.NoError(t, uc.DeleteUser(context.Background(), 1))

	repo.On("DeleteUser", mock.Anything, int64(2)).Return(entities.ErrUserNotFound)
	require.ErrorIs(t, uc.DeleteUser(context.Background(), 2), entities.ErrUserNotFound)
}
