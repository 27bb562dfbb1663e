package httpserver

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/bookmarker/internal/logging"
	"github.com/dmitrijs2005/bookmarker/internal/server/auth"
	"github.com/dmitrijs2005/bookmarker/internal/server/metrics"
	"github.com/dmitrijs2005/bookmarker/internal/server/models"
	"github.com/dmitrijs2005/bookmarker/internal/server/services"
	"github.com/dmitrijs2005/bookmarker/internal/shared"
	"github.com/gin-gonic/gin"
)

type CredentialService interface {
	Register(ctx context.Context, email, password string) (*models.PublicAccount, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
}

type UserService interface {
	Me(ctx context.Context, userID string) (*models.PublicAccount, error)
	Edit(ctx context.Context, userID string, in services.EditUserInput) (*models.PublicAccount, error)
}

type BookmarkService interface {
	List(ctx context.Context, userID string) ([]*models.Bookmark, error)
	Get(ctx context.Context, userID, id string) (*models.Bookmark, error)
	Create(ctx context.Context, userID string, in services.CreateBookmarkInput) (*models.Bookmark, error)
	Edit(ctx context.Context, userID, id string, in services.EditBookmarkInput) (*models.Bookmark, error)
	Delete(ctx context.Context, userID, id string) error
}

// TokenParser validates session tokens; auth.JWTSigner implements it.
type TokenParser interface {
	Parse(token string, secret []byte) (*auth.Claims, error)
}

// Deps are the collaborators the router dispatches to. Metrics may be nil.
type Deps struct {
	Credentials        CredentialService
	Users              UserService
	Bookmarks          BookmarkService
	Tokens             TokenParser
	Secrets            services.SecretSource
	Metrics            *metrics.Metrics
	Logger             logging.Logger
	CORSAllowedOrigins []string
}

type handlers struct {
	credentials CredentialService
	users       UserService
	bookmarks   BookmarkService
	tokens      TokenParser
	secrets     services.SecretSource
	logger      logging.Logger
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = logging.Nop{}
	}
	h := &handlers{
		credentials: d.Credentials,
		users:       d.Users,
		bookmarks:   d.Bookmarks,
		tokens:      d.Tokens,
		secrets:     d.Secrets,
		logger:      logger.With("module", "http"),
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(requestID(), h.accessLog(), h.recovery(), corsMiddleware(d.CORSAllowedOrigins))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, shared.ErrorResponse{Code: "NOT_FOUND", Message: "Cannot " + c.Request.Method + " " + c.Request.URL.Path})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, shared.ErrorResponse{Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed"})
	})

	r.GET("/health", handleHealth)

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/signup", h.signUp)
		authRoutes.POST("/signin", h.signIn)
	}

	users := r.Group("/users", h.requireBearer())
	{
		users.GET("/me", h.me)
		users.GET("/info", h.me)
		users.PATCH("", h.editMe)
	}

	bookmarks := r.Group("/bookmarks", h.requireBearer())
	{
		bookmarks.GET("", h.listBookmarks)
		bookmarks.POST("", h.createBookmark)
		bookmarks.GET("/:id", h.getBookmark)
		bookmarks.PATCH("/:id", h.editBookmark)
		bookmarks.DELETE("/:id", h.deleteBookmark)
	}

	return r
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
