package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fanhub/fanhub-server/internal/model"
)

type FandomStore struct {
	mock.Mock
}

func (_m *FandomStore) GetByID(ctx context.Context, id int64) (model.Fandom, error) {
	args := _m.Called(ctx, id)
	return args.Get(0).(model.Fandom), args.Error(1)
}

func (_m *FandomStore) GetByURL(ctx context.Context, url string) (model.Fandom, error) {
	args := _m.Called(ctx, url)
	return args.Get(0).(model.Fandom), args.Error(1)
}

func (_m *FandomStore) List(ctx context.Context) ([]model.Fandom, error) {
	args := _m.Called(ctx)
	var fandoms []model.Fandom
	if v := args.Get(0); v != nil {
		fandoms = v.([]model.Fandom)
	}
	return fandoms, args.Error(1)
}

func (_m *FandomStore) Create(ctx context.Context, createdBy int64, url, title, description, avatar string) (int64, error) {
	args := _m.Called(ctx, createdBy, url, title, description, avatar)
	return args.Get(0).(int64), args.Error(1)
}

func (_m *FandomStore) Update(ctx context.Context, editedBy, id int64, title, description, avatar string) error {
	args := _m.Called(ctx, editedBy, id, title, description, avatar)
	return args.Error(0)
}

type BlogStore struct {
	mock.Mock
}

func (_m *BlogStore) GetByID(ctx context.Context, id int64) (model.Blog, error) {
	args := _m.Called(ctx, id)
	return args.Get(0).(model.Blog), args.Error(1)
}

func (_m *BlogStore) GetByURL(ctx context.Context, fandomID int64, url string) (model.Blog, error) {
	args := _m.Called(ctx, fandomID, url)
	return args.Get(0).(model.Blog), args.Error(1)
}

func (_m *BlogStore) List(ctx context.Context) ([]model.Blog, error) {
	args := _m.Called(ctx)
	var blogs []model.Blog
	if v := args.Get(0); v != nil {
		blogs = v.([]model.Blog)
	}
	return blogs, args.Error(1)
}

func (_m *BlogStore) ListByFandom(ctx context.Context, fandomID int64) ([]model.Blog, error) {
	args := _m.Called(ctx, fandomID)
	var blogs []model.Blog
	if v := args.Get(0); v != nil {
		blogs = v.([]model.Blog)
	}
	return blogs, args.Error(1)
}

func (_m *BlogStore) ListByOwner(ctx context.Context, ownerID int64) ([]model.Blog, error) {
	args := _m.Called(ctx, ownerID)
	var blogs []model.Blog
	if v := args.Get(0); v != nil {
		blogs = v.([]model.Blog)
	}
	return blogs, args.Error(1)
}

func (_m *BlogStore) Create(ctx context.Context, owner, fandomID int64, url, title, description, avatar string) (int64, error) {
	args := _m.Called(ctx, owner, fandomID, url, title, description, avatar)
	return args.Get(0).(int64), args.Error(1)
}

func (_m *BlogStore) Update(ctx context.Context, editedBy, id int64, title, description, avatar string) error {
	args := _m.Called(ctx, editedBy, id, title, description, avatar)
	return args.Error(0)
}

type PostStore struct {
	mock.Mock
}

func (_m *PostStore) GetByID(ctx context.Context, id int64) (model.Post, error) {
	args := _m.Called(ctx, id)
	return args.Get(0).(model.Post), args.Error(1)
}

func (_m *PostStore) List(ctx context.Context) ([]model.Post, error) {
	args := _m.Called(ctx)
	var posts []model.Post
	if v := args.Get(0); v != nil {
		posts = v.([]model.Post)
	}
	return posts, args.Error(1)
}

func (_m *PostStore) ListByBlog(ctx context.Context, blogID int64) ([]model.Post, error) {
	args := _m.Called(ctx, blogID)
	var posts []model.Post
	if v := args.Get(0); v != nil {
		posts = v.([]model.Post)
	}
	return posts, args.Error(1)
}

func (_m *PostStore) ListByFandom(ctx context.Context, fandomID int64) ([]model.Post, error) {
	args := _m.Called(ctx, fandomID)
	var posts []model.Post
	if v := args.Get(0); v != nil {
		posts = v.([]model.Post)
	}
	return posts, args.Error(1)
}

func (_m *PostStore) ListByOwner(ctx context.Context, ownerID int64) ([]model.Post, error) {
	args := _m.Called(ctx, ownerID)
	var posts []model.Post
	if v := args.Get(0); v != nil {
		posts = v.([]model.Post)
	}
	return posts, args.Error(1)
}

func (_m *PostStore) Create(ctx context.Context, owner, blogID, fandomID int64, title, content string) (int64, error) {
	args := _m.Called(ctx, owner, blogID, fandomID, title, content)
	return args.Get(0).(int64), args.Error(1)
}

func (_m *PostStore) Update(ctx context.Context, editedBy, id int64, title, content string) error {
	args := _m.Called(ctx, editedBy, id, title, content)
	return args.Error(0)
}

func (_m *PostStore) ListVotes(ctx context.Context, postID int64) ([]model.Vote, error) {
	args := _m.Called(ctx, postID)
	var votes []model.Vote
	if v := args.Get(0); v != nil {
		votes = v.([]model.Vote)
	}
	return votes, args.Error(1)
}

func (_m *PostStore) SetVote(ctx context.Context, postID, userID int64, up bool) error {
	args := _m.Called(ctx, postID, userID, up)
	return args.Error(0)
}

type CommentStore struct {
	mock.Mock
}

func (_m *CommentStore) GetByID(ctx context.Context, id int64) (model.Comment, error) {
	args := _m.Called(ctx, id)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (_m *CommentStore) List(ctx context.Context, postID, blogID, fandomID int64) ([]model.Comment, error) {
	args := _m.Called(ctx, postID, blogID, fandomID)
	var comments []model.Comment
	if v := args.Get(0); v != nil {
		comments = v.([]model.Comment)
	}
	return comments, args.Error(1)
}

func (_m *CommentStore) ListByOwner(ctx context.Context, ownerID int64) ([]model.Comment, error) {
	args := _m.Called(ctx, ownerID)
	var comments []model.Comment
	if v := args.Get(0); v != nil {
		comments = v.([]model.Comment)
	}
	return comments, args.Error(1)
}

func (_m *CommentStore) ListAnswers(ctx context.Context, parentID int64) ([]model.Comment, error) {
	args := _m.Called(ctx, parentID)
	var comments []model.Comment
	if v := args.Get(0); v != nil {
		comments = v.([]model.Comment)
	}
	return comments, args.Error(1)
}

func (_m *CommentStore) Create(ctx context.Context, owner, postID, blogID, fandomID, parentID int64, content string) (int64, error) {
	args := _m.Called(ctx, owner, postID, blogID, fandomID, parentID, content)
	return args.Get(0).(int64), args.Error(1)
}

func (_m *CommentStore) Update(ctx context.Context, editedBy, id int64, content string) error {
	args := _m.Called(ctx, editedBy, id, content)
	return args.Error(0)
}

func (_m *CommentStore) ListVotes(ctx context.Context, commentID int64) ([]model.Vote, error) {
	args := _m.Called(ctx, commentID)
	var votes []model.Vote
	if v := args.Get(0); v != nil {
		votes = v.([]model.Vote)
	}
	return votes, args.Error(1)
}

func (_m *CommentStore) SetVote(ctx context.Context, commentID, userID int64, up bool) error {
	args := _m.Called(ctx, commentID, userID, up)
	return args.Error(0)
}
