package router

import (
	"net/http"
	"strings"

	"github.com/fanhub/fanhub-server/internal/api/rest/handler"
	"github.com/fanhub/fanhub-server/internal/api/rest/middleware"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// Router assembles the route table and the middleware chain around it.
type Router struct {
	auth     *handler.Auth
	users    *handler.User
	fandoms  *handler.Fandom
	blogs    *handler.Blog
	posts    *handler.Post
	comments *handler.Comment
	tokens   model.TokenManager
	logger   *logger.Logger
}

// New creates a new Router over the handlers.
func New(
	auth *handler.Auth,
	users *handler.User,
	fandoms *handler.Fandom,
	blogs *handler.Blog,
	posts *handler.Post,
	comments *handler.Comment,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		auth:     auth,
		users:    users,
		fandoms:  fandoms,
		blogs:    blogs,
		posts:    posts,
		comments: comments,
		tokens:   tokens,
		logger:   logger,
	}
}

// refPatterns expands a route pattern into its reference variants. For each
// named ref the pattern is doubled: "{name}" matches ids and "current",
// "u/{nameSlug}" matches url references.
func refPatterns(pattern string, names ...string) []string {
	patterns := []string{pattern}
	for _, name := range names {
		wildcard := "{" + name + "}"
		var expanded []string
		for _, p := range patterns {
			expanded = append(expanded, p,
				strings.Replace(p, wildcard, "u/{"+name+"Slug}", 1))
		}
		patterns = expanded
	}
	return patterns
}

func handle(mux *http.ServeMux, h http.HandlerFunc, pattern string, refs ...string) {
	for _, p := range refPatterns(pattern, refs...) {
		mux.HandleFunc(p, h)
	}
}

// Handler builds the route table wrapped in authentication and request
// logging.
func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", rt.auth.Register)
	mux.HandleFunc("POST /auth/login", rt.auth.Login)
	mux.HandleFunc("POST /auth/refresh", rt.auth.Refresh)
	mux.HandleFunc("POST /auth/invalidate", rt.auth.Invalidate)
	mux.HandleFunc("POST /auth/change", rt.auth.ChangePassword)

	mux.HandleFunc("GET /users", rt.users.List)
	handle(mux, rt.users.Get, "GET /users/{user}", "user")
	handle(mux, rt.users.Update, "PUT /users/{user}", "user")
	handle(mux, rt.users.UploadAvatar, "PUT /users/{user}/avatar", "user")
	handle(mux, rt.users.DownloadAvatar, "GET /users/{user}/avatar", "user")
	handle(mux, rt.users.Blogs, "GET /users/{user}/blogs", "user")
	handle(mux, rt.users.Posts, "GET /users/{user}/posts", "user")
	handle(mux, rt.users.Comments, "GET /users/{user}/comments", "user")

	mux.HandleFunc("GET /fandoms", rt.fandoms.List)
	mux.HandleFunc("POST /fandoms", rt.fandoms.Create)
	handle(mux, rt.fandoms.Get, "GET /fandoms/{fandom}", "fandom")
	handle(mux, rt.fandoms.Update, "PUT /fandoms/{fandom}", "fandom")
	handle(mux, rt.fandoms.ListModers, "GET /fandoms/{fandom}/moders", "fandom")
	handle(mux, rt.fandoms.GrantModer, "POST /fandoms/{fandom}/moders", "fandom")
	handle(mux, rt.fandoms.GetModer, "GET /fandoms/{fandom}/moders/{user}", "fandom")
	handle(mux, rt.fandoms.UpdateModer, "PUT /fandoms/{fandom}/moders/{user}", "fandom")
	handle(mux, rt.fandoms.RevokeModer, "DELETE /fandoms/{fandom}/moders/{user}", "fandom")
	handle(mux, rt.fandoms.ListBans, "GET /fandoms/{fandom}/bans", "fandom")
	handle(mux, rt.fandoms.Ban, "POST /fandoms/{fandom}/bans", "fandom")
	handle(mux, rt.fandoms.GetBan, "GET /fandoms/{fandom}/bans/{user}", "fandom")
	handle(mux, rt.fandoms.Unban, "DELETE /fandoms/{fandom}/bans/{user}", "fandom")
	handle(mux, rt.fandoms.ListBlogs, "GET /fandoms/{fandom}/blogs", "fandom")
	handle(mux, rt.fandoms.CreateBlog, "POST /fandoms/{fandom}/blogs", "fandom")
	handle(mux, rt.fandoms.GetBlog, "GET /fandoms/{fandom}/blogs/{blog}", "fandom", "blog")
	handle(mux, rt.fandoms.ListPosts, "GET /fandoms/{fandom}/posts", "fandom")

	mux.HandleFunc("GET /blogs", rt.blogs.List)
	mux.HandleFunc("GET /blogs/{blog}", rt.blogs.Get)
	mux.HandleFunc("PUT /blogs/{blog}", rt.blogs.Update)
	mux.HandleFunc("GET /blogs/{blog}/moders", rt.blogs.ListModers)
	mux.HandleFunc("POST /blogs/{blog}/moders", rt.blogs.GrantModer)
	mux.HandleFunc("GET /blogs/{blog}/moders/{user}", rt.blogs.GetModer)
	mux.HandleFunc("PUT /blogs/{blog}/moders/{user}", rt.blogs.UpdateModer)
	mux.HandleFunc("DELETE /blogs/{blog}/moders/{user}", rt.blogs.RevokeModer)
	mux.HandleFunc("GET /blogs/{blog}/bans", rt.blogs.ListBans)
	mux.HandleFunc("POST /blogs/{blog}/bans", rt.blogs.Ban)
	mux.HandleFunc("GET /blogs/{blog}/bans/{user}", rt.blogs.GetBan)
	mux.HandleFunc("DELETE /blogs/{blog}/bans/{user}", rt.blogs.Unban)
	mux.HandleFunc("GET /blogs/{blog}/posts", rt.blogs.ListPosts)
	mux.HandleFunc("POST /blogs/{blog}/posts", rt.blogs.CreatePost)

	mux.HandleFunc("GET /posts", rt.posts.List)
	mux.HandleFunc("GET /posts/{post}", rt.posts.Get)
	mux.HandleFunc("PUT /posts/{post}", rt.posts.Update)
	mux.HandleFunc("GET /posts/{post}/comments", rt.posts.ListComments)
	mux.HandleFunc("POST /posts/{post}/comments", rt.posts.CreateComment)
	mux.HandleFunc("GET /posts/{post}/votes", rt.posts.ListVotes)
	mux.HandleFunc("PUT /posts/{post}/votes", rt.posts.Vote)

	mux.HandleFunc("GET /comments", rt.comments.List)
	mux.HandleFunc("GET /comments/{comment}", rt.comments.Get)
	mux.HandleFunc("PUT /comments/{comment}", rt.comments.Update)
	mux.HandleFunc("GET /comments/{comment}/answers", rt.comments.ListAnswers)
	mux.HandleFunc("POST /comments/{comment}/answers", rt.comments.CreateAnswer)
	mux.HandleFunc("GET /comments/{comment}/votes", rt.comments.ListVotes)
	mux.HandleFunc("PUT /comments/{comment}/votes", rt.comments.Vote)

	authenticate := middleware.NewAuthenticate(rt.tokens, rt.logger)
	logging := middleware.NewLogging(rt.logger)

	return logging.Wrap(authenticate.Wrap(mux))
}
