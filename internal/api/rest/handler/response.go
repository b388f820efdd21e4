package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fanhub/fanhub-server/internal/apierr"
	"github.com/fanhub/fanhub-server/internal/model"
)

// envelope is the uniform response body: "success" with the payload, or
// "fail"/"error" with a code and description.
type envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

const statusSuccess = "success"

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// WriteData writes a success envelope with the given HTTP status.
func WriteData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Status: statusSuccess, Data: data})
}

// decodeJSON parses the request body into dst, mapping malformed JSON to
// the typed error.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierr.NewInvalidJSON()
	}
	return nil
}

// pathRef extracts a resource reference from the matched route. Each
// ref-bearing route is registered twice: once with "{name}" for ids and
// "current", once with "u/{nameSlug}" for url references.
func pathRef(r *http.Request, name string) (model.Ref, bool) {
	if slug := r.PathValue(name + "Slug"); slug != "" {
		return model.Ref{Kind: model.RefSlug, Slug: slug}, true
	}
	return model.ParseRef(r.PathValue(name))
}

// pathID extracts a plain numeric id path segment.
func pathID(r *http.Request, name string) (int64, bool) {
	ref, ok := model.ParseRef(r.PathValue(name))
	if !ok || ref.Kind != model.RefID {
		return 0, false
	}
	return ref.ID, true
}

type idResponse struct {
	ID int64 `json:"id"`
}

type accountResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Description string     `json:"description"`
	Avatar      string     `json:"avatar"`
	CreatedAt   time.Time  `json:"created_at"`
	EditedAt    *time.Time `json:"edited_at"`
	EditedBy    *int64     `json:"edited_by"`
}

func newAccountResponse(a model.Account) accountResponse {
	return accountResponse{
		ID:          a.ID,
		Username:    a.Username,
		Description: a.Description,
		Avatar:      a.Avatar,
		CreatedAt:   a.CreatedAt,
		EditedAt:    a.EditedAt,
		EditedBy:    a.EditedBy,
	}
}

func newAccountListResponse(accounts []model.Account) []accountResponse {
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, newAccountResponse(a))
	}
	return out
}

type fandomResponse struct {
	ID          int64      `json:"id"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Avatar      string     `json:"avatar"`
	CreatedAt   time.Time  `json:"created_at"`
	EditedAt    *time.Time `json:"edited_at"`
	EditedBy    *int64     `json:"edited_by"`
}

func newFandomResponse(f model.Fandom) fandomResponse {
	return fandomResponse{
		ID:          f.ID,
		URL:         f.URL,
		Title:       f.Title,
		Description: f.Description,
		Avatar:      f.Avatar,
		CreatedAt:   f.CreatedAt,
		EditedAt:    f.EditedAt,
		EditedBy:    f.EditedBy,
	}
}

func newFandomListResponse(fandoms []model.Fandom) []fandomResponse {
	out := make([]fandomResponse, 0, len(fandoms))
	for _, f := range fandoms {
		out = append(out, newFandomResponse(f))
	}
	return out
}

type blogResponse struct {
	ID          int64      `json:"id"`
	FandomID    int64      `json:"fandom_id"`
	Owner       int64      `json:"owner"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Avatar      string     `json:"avatar"`
	CreatedAt   time.Time  `json:"created_at"`
	EditedAt    *time.Time `json:"edited_at"`
	EditedBy    *int64     `json:"edited_by"`
}

func newBlogResponse(b model.Blog) blogResponse {
	return blogResponse{
		ID:          b.ID,
		FandomID:    b.FandomID,
		Owner:       b.Owner,
		URL:         b.URL,
		Title:       b.Title,
		Description: b.Description,
		Avatar:      b.Avatar,
		CreatedAt:   b.CreatedAt,
		EditedAt:    b.EditedAt,
		EditedBy:    b.EditedBy,
	}
}

func newBlogListResponse(blogs []model.Blog) []blogResponse {
	out := make([]blogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, newBlogResponse(b))
	}
	return out
}

type postResponse struct {
	ID        int64      `json:"id"`
	BlogID    int64      `json:"blog_id"`
	FandomID  int64      `json:"fandom_id"`
	Owner     int64      `json:"owner"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at"`
	EditedBy  *int64     `json:"edited_by"`
}

func newPostResponse(p model.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		BlogID:    p.BlogID,
		FandomID:  p.FandomID,
		Owner:     p.Owner,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		EditedAt:  p.EditedAt,
		EditedBy:  p.EditedBy,
	}
}

func newPostListResponse(posts []model.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostResponse(p))
	}
	return out
}

type commentResponse struct {
	ID        int64      `json:"id"`
	PostID    int64      `json:"post_id"`
	BlogID    int64      `json:"blog_id"`
	FandomID  int64      `json:"fandom_id"`
	Owner     int64      `json:"owner"`
	ParentID  int64      `json:"parent_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at"`
	EditedBy  *int64     `json:"edited_by"`
}

func newCommentResponse(c model.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		BlogID:    c.BlogID,
		FandomID:  c.FandomID,
		Owner:     c.Owner,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		EditedAt:  c.EditedAt,
		EditedBy:  c.EditedBy,
	}
}

func newCommentListResponse(comments []model.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, newCommentResponse(c))
	}
	return out
}

type voteResponse struct {
	UserID int64     `json:"user_id"`
	Up     bool      `json:"up"`
	SetAt  time.Time `json:"set_at"`
}

func newVoteListResponse(votes []model.Vote) []voteResponse {
	out := make([]voteResponse, 0, len(votes))
	for _, v := range votes {
		out = append(out, voteResponse{UserID: v.UserID, Up: v.Up, SetAt: v.SetAt})
	}
	return out
}
