package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/OBATA-VTU/oGig/internal/auth"
	"github.com/OBATA-VTU/oGig/internal/domain/faults"
	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/OBATA-VTU/oGig/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type profileReader interface {
	GetByUID(ctx context.Context, uid string) (*models.UserProfile, error)
}

type profileWriter interface {
	AppendPortfolioItem(ctx context.Context, uid string, item models.PortfolioItem) (string, error)
	Follow(ctx context.Context, followerUID, followedUID string) error
	Unfollow(ctx context.Context, followerUID, followedUID string) error
	UpdateDetails(ctx context.Context, uid string, bio, institution string, skills []string) error
}

type profileCacheInvalidator interface {
	Invalidate(uid string)
}

type Server struct {
	board          *services.JobBoard
	submissions    *services.Submissions
	formatter      *services.Formatter
	logos          *services.LogoGenerator
	authenticator  auth.Authenticator
	profiles       profileReader
	profileUpdates profileWriter
	profileCache   profileCacheInvalidator

	engine *gin.Engine
	server *http.Server
}

type Dependencies struct {
	Board          *services.JobBoard
	Submissions    *services.Submissions
	Formatter      *services.Formatter
	Logos          *services.LogoGenerator
	Authenticator  auth.Authenticator
	Profiles       profileReader
	ProfileUpdates profileWriter
	ProfileCache   profileCacheInvalidator
}

func NewServer(deps Dependencies, allowedOrigins []string) (*Server, error) {
	if deps.Board == nil || deps.Submissions == nil || deps.Formatter == nil ||
		deps.Logos == nil || deps.Authenticator == nil || deps.Profiles == nil ||
		deps.ProfileUpdates == nil || deps.ProfileCache == nil {
		return nil, errors.New("missing server dependency")
	}

	s := &Server{
		board:          deps.Board,
		submissions:    deps.Submissions,
		formatter:      deps.Formatter,
		logos:          deps.Logos,
		authenticator:  deps.Authenticator,
		profiles:       deps.Profiles,
		profileUpdates: deps.ProfileUpdates,
		profileCache:   deps.ProfileCache,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	s.registerRoutes(engine)
	s.engine = engine
	return s, nil
}

func (s *Server) registerRoutes(engine *gin.Engine) {

	api := engine.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", s.signUp)
			authGroup.POST("/signin", s.signIn)
			authGroup.POST("/signout", s.signOut)
			authGroup.POST("/reset", s.resetPassword)
		}

		api.GET("/jobs", s.listJobs)
		api.GET("/jobs/stream", s.streamJobs)
		api.GET("/views/resolve", s.resolveView)

		authed := api.Group("", s.requireIdentity())
		{
			authed.POST("/jobs", s.createJob)
			authed.DELETE("/jobs/:id", s.deleteJob)

			authed.GET("/profiles/me", s.myProfile)
			authed.GET("/profiles/me/jobs", s.myJobs)
			authed.PATCH("/profiles/me", s.updateProfile)
			authed.POST("/profiles/me/portfolio", s.appendPortfolioItem)
			authed.POST("/profiles/:uid/follow", s.followProfile)
			authed.DELETE("/profiles/:uid/follow", s.unfollowProfile)
		}

		admin := api.Group("/admin", s.requireIdentity(), s.requireAdmin())
		{
			admin.POST("/jobs/process", s.processRawPosting)
			admin.POST("/logo", s.generateLogo)
		}
	}
}

func (s *Server) Run(port int) error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.engine,
	}
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

const identityKey = "identity"

func (s *Server) requireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.UserMessage(auth.CodeInvalidSession)})
			return
		}

		identity, err := s.authenticator.IdentityFromToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.UserMessage(faults.CodeOf(err))})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := identityFrom(c)

		profile, err := s.profiles.GetByUID(c.Request.Context(), identity.UID)
		if err != nil {
			s.writeError(c, err)
			c.Abort()
			return
		}

		if profile == nil || profile.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrative clearance required"})
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) *auth.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	return value.(*auth.Identity)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return ""
	}
	return header[len(prefix):]
}

// writeError maps classified faults to responses; nothing unclassified
// leaks a raw error to the client.
func (s *Server) writeError(c *gin.Context, err error) {
	switch faults.KindOf(err) {
	case faults.Validation:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please correct the highlighted fields and try again.", "detail": err.Error()})
	case faults.Authentication:
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.UserMessage(faults.CodeOf(err))})
	case faults.Permission:
		c.JSON(http.StatusForbidden, gin.H{"error": "Security lockout. Please contact the operator.", "code": "security_lockout"})
	case faults.Transient:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Check your network and try again.", "retryable": true})
	case faults.AIFormatting:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Processing failed. Nothing was saved."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred."})
	}
}
