// Package httpapi exposes the booking service over HTTP: JSON endpoints,
// cookie-based sessions, and the ownership-guarded routes for listings and
// reservations.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rentlyapp/rently/internal/logging"
	"github.com/rentlyapp/rently/internal/server/auth"
	"github.com/rentlyapp/rently/internal/server/config"
	"github.com/rentlyapp/rently/internal/server/models"
	"github.com/rentlyapp/rently/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// AuthService is the slice of the auth service the transport needs.
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*services.PublicProfile, error)
	Login(ctx context.Context, email, password string) (*auth.Identity, string, error)
	Logout() string
	VerifyToken(token string) (*auth.Identity, error)
	Profile(ctx context.Context, userID string) (*services.PublicProfile, error)
}

type AccommodationService interface {
	Create(ctx context.Context, identity *auth.Identity, in services.AccommodationInput) (*models.Accommodation, error)
	ListAll(ctx context.Context) ([]*models.Accommodation, error)
	ListOwn(ctx context.Context, identity *auth.Identity) ([]*models.Accommodation, error)
	GetByID(ctx context.Context, id string) (*models.Accommodation, error)
	Update(ctx context.Context, identity *auth.Identity, id string, in services.AccommodationInput) (*models.Accommodation, error)
}

type BookingService interface {
	Book(ctx context.Context, identity *auth.Identity, in services.BookingInput) (*models.Booking, error)
	List(ctx context.Context, identity *auth.Identity) ([]*models.Booking, error)
	Cancel(ctx context.Context, identity *auth.Identity, id string) error
}

type PhotoService interface {
	Store(ctx context.Context, r io.Reader, filename string) (string, error)
	StoreFromLink(ctx context.Context, link string) (string, error)
	PresignedGetURL(ctx context.Context, key string) (string, error)
}

// Server wires the services into a gin engine and owns the http.Server
// lifecycle.
type Server struct {
	config *config.Config
	logger logging.Logger

	auth           AuthService
	accommodations AccommodationService
	bookings       BookingService
	photos         PhotoService

	engine *gin.Engine
}

func NewServer(cfg *config.Config, l logging.Logger,
	authSvc AuthService, accommodationSvc AccommodationService,
	bookingSvc BookingService, photoSvc PhotoService) *Server {

	s := &Server{
		config:         cfg,
		logger:         l.With("module", "httpapi"),
		auth:           authSvc,
		accommodations: accommodationSvc,
		bookings:       bookingSvc,
		photos:         photoSvc,
	}
	s.engine = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(s.config.CORSOrigin))

	r.POST("/register", s.handleRegister)
	r.POST("/login", s.handleLogin)
	r.POST("/logout", s.handleLogout)

	r.GET("/places", s.handleListAccommodations)
	r.GET("/places/:id", s.handleGetAccommodation)
	r.GET("/photos/*key", s.handleGetPhoto)

	authed := r.Group("/", s.requireAuth())
	authed.GET("/profile", s.handleProfile)
	authed.POST("/places", s.handleCreateAccommodation)
	authed.PUT("/places", s.handleUpdateAccommodation)
	authed.GET("/user-places", s.handleListOwnAccommodations)
	authed.POST("/upload", s.handleUpload)
	authed.POST("/upload-by-link", s.handleUploadByLink)
	authed.POST("/account/bookings", s.handleCreateBooking)
	authed.GET("/account/bookings", s.handleListBookings)
	authed.DELETE("/account/bookings/:id", s.handleCancelBooking)

	return r
}

// Handler exposes the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.EndpointAddr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server starting", "addr", s.config.EndpointAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info(ctx, "http server stopped")
	return <-errCh
}
