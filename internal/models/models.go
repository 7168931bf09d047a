package models

// Recipe is a recipe as exchanged with the backend. The backend assigns ID; Name is
// the key users type to pick a recipe.
type Recipe struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}

// CreateRecipeRequest is the body of POST /recipes
type CreateRecipeRequest struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}

// UpdateRecipeRequest is the body of PUT /recipes/{id}. Names cannot be changed.
type UpdateRecipeRequest struct {
	Instructions string `json:"instructions"`
}

// RegisterRequest is the body of POST /register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
