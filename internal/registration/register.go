package registration

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/recipebook/recipes/internal/models"
)

// LoginPage is where a successful registration leads
const LoginPage = "../login/login-page.html"

// Alert texts shown to the user
const (
	MsgMissingFields    = "Please fill in all fields."
	MsgPasswordMismatch = "Passwords do not match"
	MsgUserExists       = "Username or email already exists."
	MsgRegisterError    = "An error occurred during registration."
	MsgRegisterFailed   = "Failed to register. Please try again later."
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUserExists         = errors.New("username or email already exists")
	ErrRegistrationFailed = errors.New("registration failed")
)

// Registrar sends a registration request and returns the response status code
type Registrar interface {
	Register(ctx context.Context, body models.RegisterRequest) (int, error)
}

// Alerter shows a message the user has to see
type Alerter interface {
	Alert(message string)
}

// Navigator moves the user to another page
type Navigator interface {
	Navigate(target string)
}

// Form holds the registration inputs as typed by the user
type Form struct {
	Username       string `validate:"required"`
	Email          string `validate:"required"`
	Password       string `validate:"required"`
	RepeatPassword string `validate:"required"`
}

// passwordCheck is validated only once every field is present
type passwordCheck struct {
	Password       string
	RepeatPassword string `validate:"eqfield=Password"`
}

func (f Form) trimmed() Form {
	return Form{
		Username:       strings.TrimSpace(f.Username),
		Email:          strings.TrimSpace(f.Email),
		Password:       strings.TrimSpace(f.Password),
		RepeatPassword: strings.TrimSpace(f.RepeatPassword),
	}
}

// Controller drives the registration page
type Controller struct {
	api      Registrar
	alert    Alerter
	nav      Navigator
	log      zerolog.Logger
	validate *validator.Validate
}

// NewController creates a registration controller
func NewController(api Registrar, alert Alerter, nav Navigator, log zerolog.Logger) *Controller {
	return &Controller{
		api:      api,
		alert:    alert,
		nav:      nav,
		log:      log,
		validate: validator.New(),
	}
}

// Register validates the form, submits it and reacts to the status code. Only a 201
// leaves the registration page; every other outcome alerts the user.
func (c *Controller) Register(ctx context.Context, form Form) error {
	form = form.trimmed()

	if err := c.validate.Struct(form); err != nil {
		c.alert.Alert(MsgMissingFields)
		return ErrMissingFields
	}

	check := passwordCheck{Password: form.Password, RepeatPassword: form.RepeatPassword}
	if err := c.validate.Struct(check); err != nil {
		c.alert.Alert(MsgPasswordMismatch)
		return ErrPasswordMismatch
	}

	body := models.RegisterRequest{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	}

	status, err := c.api.Register(ctx, body)
	if err != nil {
		c.log.Error().Err(err).Msg("Error during registration")
		c.alert.Alert(MsgRegisterFailed)
		return errors.Join(ErrRegistrationFailed, err)
	}

	switch status {
	case http.StatusCreated:
		c.log.Info().Str("username", form.Username).Msg("User registered")
		c.nav.Navigate(LoginPage)
		return nil
	case http.StatusConflict:
		c.alert.Alert(MsgUserExists)
		return ErrUserExists
	default:
		c.log.Warn().Int("status", status).Msg("Registration rejected")
		c.alert.Alert(MsgRegisterError)
		return ErrRegistrationFailed
	}
}
