package testbackend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createRecipeRequest struct {
	Name         string `json:"name" validate:"required"`
	Instructions string `json:"instructions" validate:"required"`
}

type updateRecipeRequest struct {
	Instructions string `json:"instructions" validate:"required"`
}

func (b *Backend) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := b.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing int64
	if err := b.db.Model(&User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&existing).Error; err != nil {
		b.log.Error().Err(err).Msg("Failed to check existing users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}

	user, err := b.CreateUser(req.Username, req.Email, req.Password, false)
	if err != nil {
		b.log.Error().Err(err).Msg("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	b.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User registered")
	c.JSON(http.StatusCreated, user)
}

func (b *Backend) logout(c *gin.Context) {
	token := c.GetString("token")
	if err := b.db.Create(&RevokedToken{Token: token}).Error; err != nil {
		b.log.Error().Err(err).Msg("Failed to revoke token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (b *Backend) listRecipes(c *gin.Context) {
	var recipes []Recipe
	if err := b.db.Where("user_id = ?", c.GetString("user_id")).Order("id").Find(&recipes).Error; err != nil {
		b.log.Error().Err(err).Msg("Failed to list recipes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recipes"})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (b *Backend) createRecipe(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := b.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	var existing int64
	if err := b.db.Model(&Recipe{}).
		Where("user_id = ? AND name = ?", userID, req.Name).
		Count(&existing).Error; err != nil {
		b.log.Error().Err(err).Msg("Failed to check existing recipes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Recipe already exists"})
		return
	}

	recipe := Recipe{UserID: userID, Name: req.Name, Instructions: req.Instructions}
	if err := b.db.Create(&recipe).Error; err != nil {
		b.log.Error().Err(err).Msg("Failed to create recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// ownedRecipe loads the recipe named by the :id param if the caller owns it. On
// failure the response has been written.
func (b *Backend) ownedRecipe(c *gin.Context) (*Recipe, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id"})
		return nil, false
	}

	var recipe Recipe
	err = b.db.Where("id = ? AND user_id = ?", id, c.GetString("user_id")).First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return nil, false
	}
	if err != nil {
		b.log.Error().Err(err).Msg("Failed to load recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipe"})
		return nil, false
	}
	return &recipe, true
}

func (b *Backend) updateRecipe(c *gin.Context) {
	recipe, ok := b.ownedRecipe(c)
	if !ok {
		return
	}

	var req updateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := b.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe.Instructions = req.Instructions
	if err := b.db.Save(recipe).Error; err != nil {
		b.log.Error().Err(err).Msg("Failed to update recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (b *Backend) deleteRecipe(c *gin.Context) {
	recipe, ok := b.ownedRecipe(c)
	if !ok {
		return
	}

	if err := b.db.Delete(recipe).Error; err != nil {
		b.log.Error().Err(err).Msg("Failed to delete recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	c.Status(http.StatusNoContent)
}
