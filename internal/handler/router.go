package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/SARVESHVARADKAR123/picshare/internal/middleware"
	"github.com/SARVESHVARADKAR123/picshare/internal/observability"
)

// Deps collects what NewRouter needs to mount every route.
type Deps struct {
	Auth     Auth
	Users    Users
	Graph    Graph
	Posts    Posts
	Comments Comments
	Images   Images
	DB       observability.Pinger

	ServiceName    string
	RequestTimeout time.Duration
	MaxUploadBytes int64
	PresignTTL     time.Duration
}

// NewRouter builds the HTTP router with all API routes.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(observability.MetricsMiddleware(d.ServiceName))
	r.Use(middleware.Recovery())
	r.Use(middleware.Timeout(d.RequestTimeout))

	auth := middleware.Auth(d.Auth)
	optional := middleware.OptionalAuth(d.Auth)

	ah := NewAuthHandler(d.Auth)
	uh := NewUserHandler(d.Users, d.Graph, d.Images, d.MaxUploadBytes)
	ph := NewPostHandler(d.Posts, d.Images, d.MaxUploadBytes)
	ch := NewCommentHandler(d.Comments)
	mh := NewMediaHandler(d.Images, d.PresignTTL)

	r.Get("/health/live", observability.HealthLiveHandler)
	r.Get("/health/ready", observability.HealthReadyHandler(d.DB))
	r.Get("/media/*", mh.Get)

	r.Route("/api/v1", func(api chi.Router) {
		authPath := "/auth"
		api.Post(authPath+"/register", ah.Register)
		api.Post(authPath+"/login", ah.Login)
		api.Post(authPath+"/logout", ah.Logout)

		// User routes
		userPath := "/users"
		api.With(auth).Get(userPath+"/me", uh.Me)
		api.With(auth).Put(userPath+"/me", uh.UpdateMe)
		api.With(auth).Delete(userPath+"/me", uh.DeleteMe)
		api.With(auth).Put(userPath+"/me/password", uh.ChangePassword)
		api.With(optional).Get(userPath+"/by-username/{username}", uh.ByUsername)
		api.With(optional).Get(userPath+"/{userID}", uh.Get)
		api.With(optional).Get(userPath+"/{userID}/followers", uh.Followers)
		api.With(optional).Get(userPath+"/{userID}/following", uh.Following)
		api.With(auth).Post(userPath+"/{userID}/follow", uh.Follow)
		api.With(auth).Delete(userPath+"/{userID}/follow", uh.Unfollow)

		api.Group(func(p chi.Router) {
			p.Use(auth)

			// Post routes
			postPath := "/posts"
			p.Get(postPath, ph.List)
			p.Post(postPath, ph.Create)
			p.Get(postPath+"/feed", ph.Feed)
			p.Get(postPath+"/{postID}", ph.Get)
			p.Put(postPath+"/{postID}", ph.Update)
			p.Delete(postPath+"/{postID}", ph.Delete)
			p.Post(postPath+"/{postID}/like", ph.Like)
			p.Delete(postPath+"/{postID}/like", ph.Unlike)
			p.Get(postPath+"/{postID}/like", ph.Likers)

			// Comment routes
			commentPath := postPath + "/{postID}/comments"
			p.Get(commentPath, ch.List)
			p.Post(commentPath, ch.Create)
			p.Put(commentPath+"/{commentID}", ch.Update)
			p.Delete(commentPath+"/{commentID}", ch.Delete)
			p.Post(commentPath+"/{commentID}/like", ch.Like)
			p.Delete(commentPath+"/{commentID}/like", ch.Unlike)
			p.Get(commentPath+"/{commentID}/like", ch.Likers)
		})
	})

	return otelhttp.NewHandler(r, d.ServiceName)
}
