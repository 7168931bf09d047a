package view

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recipebook/recipes/internal/models"
)

func TestListRenderer_KeepsOrder(t *testing.T) {
	var out bytes.Buffer
	r := NewListRenderer(&out, false)

	r.Render([]models.Recipe{
		{ID: 2, Name: "Salad", Instructions: "Toss"},
		{ID: 1, Name: "Soup", Instructions: "Boil"},
	})

	assert.Equal(t, "• Salad: Toss\n• Soup: Boil\n", out.String())
}

func TestListRenderer_Bold(t *testing.T) {
	var out bytes.Buffer
	NewListRenderer(&out, true).Render([]models.Recipe{{ID: 1, Name: "Soup", Instructions: "Boil"}})

	assert.Contains(t, out.String(), "\x1b[1mSoup\x1b[0m")
	assert.Contains(t, out.String(), ": Boil")
}

func TestListRenderer_Empty(t *testing.T) {
	var out bytes.Buffer
	NewListRenderer(&out, false).Render(nil)

	assert.Equal(t, "No recipes found.\n", out.String())
}

func TestAlerter(t *testing.T) {
	var out bytes.Buffer
	NewAlerter(&out).Alert("Passwords do not match")

	assert.Equal(t, "⚠ Passwords do not match\n", out.String())
}

func TestNavigator_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		frontend string
		want     string
	}{
		{name: "no frontend", frontend: "", want: "../login/login-page.html"},
		{name: "frontend root", frontend: "http://localhost:8080/frontend", want: "http://localhost:8080/frontend/login/login-page.html"},
		{name: "trailing slash", frontend: "http://localhost:8080/frontend/", want: "http://localhost:8080/frontend/login/login-page.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNavigator(&bytes.Buffer{}, tt.frontend, false)
			assert.Equal(t, tt.want, n.Resolve("../login/login-page.html"))
		})
	}
}

func TestNavigator_Open(t *testing.T) {
	var out bytes.Buffer
	var opened []string
	n := NewNavigator(&out, "http://localhost:8080/frontend", true)
	n.opener = func(u string) error {
		opened = append(opened, u)
		return errors.New("no display")
	}

	n.Navigate("../login/login-page.html")

	assert.Equal(t, []string{"http://localhost:8080/frontend/login/login-page.html"}, opened)
	assert.Contains(t, out.String(), "→ http://localhost:8080/frontend/login/login-page.html")
	assert.Contains(t, out.String(), "no display")
}

func TestNavigator_NoOpenWithoutFrontend(t *testing.T) {
	n := NewNavigator(&bytes.Buffer{}, "", true)
	n.opener = func(string) error {
		t.Fatal("browser must not open for a relative target")
		return nil
	}

	n.Navigate("../login/login-page.html")
}
