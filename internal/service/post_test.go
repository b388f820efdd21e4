package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/mocks"
	"github.com/fanhub/fanhub-server/internal/model"
)

func newTestPost(posts *mocks.PostStore, perms *mocks.PermissionStore) *Post {
	log := logger.New(0)
	return NewPost(posts, NewPermission(perms, log), log)
}

func TestPost_Create_BannedAtBlog(t *testing.T) {
	ctx := context.Background()
	posts := &mocks.PostStore{}
	perms := &mocks.PermissionStore{}
	perms.On("IsBlogBanned", mock.Anything, int64(7), int64(3)).Return(true, nil)

	p := newTestPost(posts, perms)

	blog := model.Blog{ID: 3, FandomID: 2, Owner: 99}
	_, err := p.Create(ctx, 7, blog, "Title", "Body")
	requireAPICode(t, err, "Forbidden")
	posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPost_Create_Success(t *testing.T) {
	ctx := context.Background()
	posts := &mocks.PostStore{}
	perms := &mocks.PermissionStore{}
	perms.On("IsBlogBanned", mock.Anything, int64(7), int64(3)).Return(false, nil)
	perms.On("IsFandomBanned", mock.Anything, int64(7), int64(2)).Return(false, nil)
	posts.On("Create", mock.Anything, int64(7), int64(3), int64(2), "Title", "Body").Return(int64(5), nil)

	p := newTestPost(posts, perms)

	blog := model.Blog{ID: 3, FandomID: 2, Owner: 99}
	id, err := p.Create(ctx, 7, blog, "Title", "Body")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestPost_Update_EditCascade(t *testing.T) {
	post := model.Post{ID: 5, BlogID: 3, FandomID: 2, Owner: 7}

	tests := []struct {
		name      string
		principal int64
		setup     func(perms *mocks.PermissionStore)
		allowed   bool
	}{
		{
			name:      "post owner",
			principal: 7,
			setup:     func(perms *mocks.PermissionStore) {},
			allowed:   true,
		},
		{
			name:      "fandom moder with edit_p",
			principal: 8,
			setup: func(perms *mocks.PermissionStore) {
				perms.On("IsAdmin", mock.Anything, int64(8)).Return(false, nil)
				perms.On("IsBlogModer", mock.Anything, int64(8), int64(3), model.FlagEditPost).Return(false, nil)
				perms.On("IsFandomModer", mock.Anything, int64(8), int64(2), model.FlagEditPost).Return(true, nil)
			},
			allowed: true,
		},
		{
			name:      "blog owner without grant",
			principal: 9,
			setup: func(perms *mocks.PermissionStore) {
				perms.On("IsAdmin", mock.Anything, int64(9)).Return(false, nil)
				perms.On("IsBlogModer", mock.Anything, int64(9), int64(3), model.FlagEditPost).Return(false, nil)
				perms.On("IsFandomModer", mock.Anything, int64(9), int64(2), model.FlagEditPost).Return(false, nil)
				perms.On("IsBlogOwner", mock.Anything, int64(9), int64(3)).Return(true, nil)
			},
			allowed: true,
		},
		{
			name:      "stranger",
			principal: 10,
			setup: func(perms *mocks.PermissionStore) {
				perms.On("IsAdmin", mock.Anything, int64(10)).Return(false, nil)
				perms.On("IsBlogModer", mock.Anything, int64(10), int64(3), model.FlagEditPost).Return(false, nil)
				perms.On("IsFandomModer", mock.Anything, int64(10), int64(2), model.FlagEditPost).Return(false, nil)
				perms.On("IsBlogOwner", mock.Anything, int64(10), int64(3)).Return(false, nil)
			},
			allowed: false,
		},
		{
			name:      "anonymous",
			principal: model.Anonymous,
			setup:     func(perms *mocks.PermissionStore) {},
			allowed:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := &mocks.PostStore{}
			perms := &mocks.PermissionStore{}
			tt.setup(perms)
			if tt.allowed {
				posts.On("Update", mock.Anything, tt.principal, int64(5), "Title", "Body").Return(nil)
			}

			p := newTestPost(posts, perms)

			err := p.Update(context.Background(), tt.principal, post, "Title", "Body")
			if tt.allowed {
				require.NoError(t, err)
				posts.AssertExpectations(t)
			} else {
				requireAPICode(t, err, "Forbidden")
			}
		})
	}
}

func TestPost_Votes_Scoping(t *testing.T) {
	ctx := context.Background()
	post := model.Post{ID: 5, BlogID: 3, FandomID: 2}
	votes := []model.Vote{
		{UserID: 7, Up: true},
		{UserID: 8, Up: false},
		{UserID: 9, Up: true},
	}

	t.Run("admin sees all", func(t *testing.T) {
		posts := &mocks.PostStore{}
		perms := &mocks.PermissionStore{}
		posts.On("ListVotes", mock.Anything, int64(5)).Return(votes, nil)
		perms.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)

		p := newTestPost(posts, perms)

		got, err := p.Votes(ctx, 1, post)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("user sees own only", func(t *testing.T) {
		posts := &mocks.PostStore{}
		perms := &mocks.PermissionStore{}
		posts.On("ListVotes", mock.Anything, int64(5)).Return(votes, nil)
		perms.On("IsAdmin", mock.Anything, int64(8)).Return(false, nil)

		p := newTestPost(posts, perms)

		got, err := p.Votes(ctx, 8, post)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(8), got[0].UserID)
	})

	t.Run("anonymous sees none", func(t *testing.T) {
		posts := &mocks.PostStore{}
		posts.On("ListVotes", mock.Anything, int64(5)).Return(votes, nil)

		p := newTestPost(posts, &mocks.PermissionStore{})

		got, err := p.Votes(ctx, model.Anonymous, post)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestPost_Vote(t *testing.T) {
	ctx := context.Background()
	posts := &mocks.PostStore{}
	perms := &mocks.PermissionStore{}
	perms.On("IsBlogBanned", mock.Anything, int64(7), int64(3)).Return(false, nil)
	perms.On("IsFandomBanned", mock.Anything, int64(7), int64(2)).Return(false, nil)
	posts.On("SetVote", mock.Anything, int64(5), int64(7), true).Return(nil)

	p := newTestPost(posts, perms)

	post := model.Post{ID: 5, BlogID: 3, FandomID: 2}
	require.NoError(t, p.Vote(ctx, 7, post, true))
	posts.AssertExpectations(t)
}
