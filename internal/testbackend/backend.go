// Package testbackend is an in-process stand-in for the recipes backend. Tests point
// the client at it to exercise the real HTTP contract.
package testbackend

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Backend serves the recipes REST contract from an in-memory database
type Backend struct {
	router    *gin.Engine
	db        *gorm.DB
	log       zerolog.Logger
	validator *validator.Validate
	secret    []byte
	now       func() time.Time

	requests atomic.Int64
	mu       sync.Mutex
	seen     []string
}

// New creates a backend with an empty database
func New(log zerolog.Logger) (*Backend, error) {
	// Each backend gets its own named in-memory database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", newID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps the shared in-memory database free of lock contention
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
	}

	b := &Backend{
		db:        db,
		log:       log,
		validator: validator.New(),
		secret:    secret,
		now:       time.Now,
	}
	b.setupRouter()

	return b, nil
}

func newID() string {
	return ulid.Make().String()
}

func (b *Backend) setupRouter() {
	gin.SetMode(gin.TestMode)

	b.router = gin.New()
	b.router.Use(gin.Recovery())
	b.router.Use(b.recordingMiddleware())

	// The web pages are served from another origin
	b.router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	b.router.POST("/register", b.register)

	authed := b.router.Group("")
	authed.Use(b.authMiddleware())
	{
		authed.POST("/logout", b.logout)
		authed.GET("/recipes", b.listRecipes)
		authed.POST("/recipes", b.createRecipe)
		authed.PUT("/recipes/:id", b.updateRecipe)
		authed.DELETE("/recipes/:id", b.deleteRecipe)
	}
}

// recordingMiddleware counts requests and logs them with zerolog
func (b *Backend) recordingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		b.requests.Add(1)
		b.mu.Lock()
		b.seen = append(b.seen, c.Request.Method+" "+c.Request.URL.Path)
		b.mu.Unlock()

		c.Next()

		b.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	}
}

// Handler returns the HTTP handler, e.g. for httptest.NewServer
func (b *Backend) Handler() http.Handler {
	return b.router
}

// Requests returns how many requests reached the backend
func (b *Backend) Requests() int64 {
	return b.requests.Load()
}

// Seen returns "METHOD /path" for every request in arrival order
func (b *Backend) Seen() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.seen))
	copy(out, b.seen)
	return out
}

// CreateUser adds an account directly, bypassing /register
func (b *Backend) CreateUser(username, email, password string, isAdmin bool) (*User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{Username: username, Email: email, PasswordHash: hash, IsAdmin: isAdmin}
	if err := b.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// AddRecipe stores a recipe for user directly
func (b *Backend) AddRecipe(user *User, name, instructions string) (*Recipe, error) {
	recipe := &Recipe{UserID: user.ID, Name: name, Instructions: instructions}
	if err := b.db.Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return recipe, nil
}

// RecipesOf returns the stored recipes of user in id order
func (b *Backend) RecipesOf(user *User) ([]Recipe, error) {
	var recipes []Recipe
	if err := b.db.Where("user_id = ?", user.ID).Order("id").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Close releases the database
func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
