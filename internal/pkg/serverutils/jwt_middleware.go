package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const userIdLocal = "user_id"

// JwtMiddleware accepts HS256 bearer tokens signed with secret and stores
// the user_id claim (or sub) in Locals.
func JwtMiddleware(secret string) fiber.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return fiber.ErrUnauthorized
		}
		tokenStr := authHeader[7:]

		token, err := parser.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return fiber.ErrUnauthorized
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.ErrUnauthorized
		}

		subject, _ := claims["user_id"].(string)
		if subject == "" {
			subject, _ = claims["sub"].(string)
		}
		if _, err := uuid.Parse(subject); err != nil {
			return fiber.ErrUnauthorized
		}

		ctx.Locals(userIdLocal, subject)
		return ctx.Next()
	}
}

// UserID returns the authenticated user. Only valid behind JwtMiddleware.
func UserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	subject, ok := ctx.Locals(userIdLocal).(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	id, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return id, nil
}

// SignToken issues a token JwtMiddleware accepts. Used by the simulation
// client and tests.
func SignToken(secret string, userId uuid.UUID, claims jwt.MapClaims) (string, error) {
	all := jwt.MapClaims{"user_id": userId.String()}
	for k, v := range claims {
		all[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, all).SignedString([]byte(secret))
}
