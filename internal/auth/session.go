package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-report-service/internal/domain"
)

// TokenCookieName is the cookie that carries the session JWT.
const TokenCookieName = "token"

const sessionKey = "auth_session"

// Session is the identity decoded from a verified session token.
type Session struct {
	UserID    string
	Role      domain.UserRole
	PetugasID string
}

// SessionResolver turns the token cookie into a Session. Verification is
// stateless against the shared secret; an absent, malformed, or expired
// token resolves to "no session", never to an error.
type SessionResolver struct {
	tokens *TokenManager
}

// NewSessionResolver constructs the resolver.
func NewSessionResolver(tokens *TokenManager) *SessionResolver {
	return &SessionResolver{tokens: tokens}
}

// Resolve returns the session for the request, or nil when there is none.
func (r *SessionResolver) Resolve(c *fiber.Ctx) *Session {
	token := c.Cookies(TokenCookieName)
	if token == "" {
		return nil
	}
	claims, err := r.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	return &Session{
		UserID:    claims.UserID,
		Role:      claims.Role,
		PetugasID: claims.PetugasID,
	}
}

// Handle resolves the session once per request and stores it for handlers.
// Requests without a valid session continue anonymously; the route guard
// decides whether they may proceed.
func (r *SessionResolver) Handle(c *fiber.Ctx) error {
	if session := r.Resolve(c); session != nil {
		c.Locals(sessionKey, session)
	}
	return c.Next()
}

// SessionFromContext retrieves the authenticated session, if any.
func SessionFromContext(c *fiber.Ctx) (*Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*Session)
	return session, ok
}
