package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log"
	"maps"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"golang.org/x/oauth2"

	"kwbrand/internal/config"
	"kwbrand/internal/middleware"
	"kwbrand/internal/models"
)

// AuthHandler handles OIDC authentication flows.
type AuthHandler struct {
	provider     *oidc.Provider
	oauth2Config oauth2.Config
	verifier     *oidc.IDTokenVerifier
	cfg          *config.Config
	onLogout     func(c fiber.Ctx)
}

// NewAuthHandler creates a new auth handler with OIDC configuration.
// onLogout runs before the session is destroyed.
func NewAuthHandler(ctx context.Context, cfg *config.Config, onLogout func(c fiber.Ctx)) (*AuthHandler, error) {
	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		return nil, err
	}

	oauth2Config := oauth2.Config{
		ClientID:     cfg.OIDCClientID,
		ClientSecret: cfg.OIDCClientSecret,
		RedirectURL:  cfg.OIDCRedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID})

	return &AuthHandler{
		provider:     provider,
		oauth2Config: oauth2Config,
		verifier:     verifier,
		cfg:          cfg,
		onLogout:     onLogout,
	}, nil
}

// LoginPage renders the sign-in page.
func LoginPage(cfg *config.Config) fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.Render("login", page(c, cfg, "login", fiber.Map{"Title": "Sign in"}))
	}
}

// Login initiates the OIDC login flow.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	state := generateState()

	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}
	sess.Set("oauth_state", state)

	url := h.oauth2Config.AuthCodeURL(state)
	return c.Redirect().To(url)
}

// Callback handles the OIDC callback after authentication.
func (h *AuthHandler) Callback(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}

	// Verify state
	savedState, _ := sess.Get("oauth_state").(string)
	if savedState == "" || savedState != c.Query("state") {
		return fiber.NewError(fiber.StatusBadRequest, "invalid state")
	}
	sess.Delete("oauth_state")

	oauth2Token, err := h.oauth2Config.Exchange(c.Context(), c.Query("code"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to exchange code")
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "missing id_token")
	}

	idToken, err := h.verifier.Verify(c.Context(), rawIDToken)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id_token")
	}

	claims := make(map[string]any)
	if err := idToken.Claims(&claims); err != nil {
		return err
	}

	// Some providers only put minimal claims in the ID token.
	userInfo, err := h.provider.UserInfo(c.Context(), oauth2.StaticTokenSource(oauth2Token))
	if err == nil {
		var extra map[string]any
		if err := userInfo.Claims(&extra); err == nil {
			maps.Copy(claims, extra)
		}
	} else {
		log.Printf("Warning: Failed to fetch userinfo: %v", err)
	}

	user, err := userFromClaims(claims)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	middleware.SignIn(sess, user)
	log.Printf("Signed in %s", user.DisplayName())

	redirectURL := "/"
	if saved, ok := sess.Get(middleware.SessionRedirectAfter).(string); ok && saved != "" {
		redirectURL = saved
		sess.Delete(middleware.SessionRedirectAfter)
	}

	return c.Redirect().To(redirectURL)
}

// Logout clears the user session and its workspace.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if h.onLogout != nil {
		h.onLogout(c)
	}
	if sess := session.FromContext(c); sess != nil {
		sess.Destroy()
	}
	return c.Redirect().To("/")
}

// userFromClaims builds the signed-in user from merged ID token and
// userinfo claims.
func userFromClaims(claims map[string]any) (models.User, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return models.User{}, errors.New("id_token has no subject")
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if name == "" {
		name, _ = claims["preferred_username"].(string)
	}
	return models.User{Sub: sub, Email: email, Name: name}, nil
}

func generateState() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
