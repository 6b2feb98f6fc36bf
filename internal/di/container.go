// Package di wires the service's dependency graph in one place.
package di

import (
	"github.com/commu-board/auth-service/internal/email"
	"github.com/commu-board/auth-service/internal/handler"
	"github.com/commu-board/auth-service/internal/repository"
	"github.com/commu-board/auth-service/internal/security"
	"github.com/commu-board/auth-service/internal/service"
	"github.com/commu-board/auth-service/internal/token"
	"github.com/commu-board/auth-service/pkg/database"
	pkgredis "github.com/commu-board/auth-service/pkg/redis"
)

// Container holds all dependencies for the auth service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *pkgredis.Client

	// Repositories
	UserStore repository.UserStore

	// Collaborators
	Hasher *security.PasswordHasher
	Issuer *token.Issuer
	Sender email.Sender

	// Services
	AuthService service.AuthService
	UserService service.UserService

	// Handlers
	HealthHandler *handler.HealthHandler
	AuthHandler   *handler.AuthHandler
	UserHandler   *handler.UserHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB      *database.PostgresDB
	Redis   *pkgredis.Client
	Hasher  *security.PasswordHasher
	Issuer  *token.Issuer
	Sender  email.Sender
	Version string
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:     cfg.DB,
		Redis:  cfg.Redis,
		Hasher: cfg.Hasher,
		Issuer: cfg.Issuer,
		Sender: cfg.Sender,
	}

	// Repositories
	c.UserStore = repository.NewPostgresUserStore(cfg.DB.Pool())

	// Services
	c.AuthService = service.NewAuthService(c.UserStore, c.Sender, c.Hasher, c.Issuer)
	c.UserService = service.NewUserService(c.UserStore, c.Hasher)

	// Handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis, cfg.Version)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.UserHandler = handler.NewUserHandler(c.UserService)

	return c
}
