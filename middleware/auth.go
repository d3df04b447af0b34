package middleware

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/scheduling"
)

const actorKey = "actor"

func jwtSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return secret
}

// Protected verifies the bearer token and resolves the claims into a typed
// scheduling.Actor once per request. Controllers never read raw claims; they
// read the actor from Locals. For secretaries the managed-doctor set is
// loaded here so scope filtering needs no further I/O.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(jwtSecret()),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			userToken := c.Locals("user")
			if userToken == nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"message": "No authentication token",
				})
			}
			token, ok := userToken.(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"message": "Invalid token",
				})
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"message": "Invalid token claims",
				})
			}

			userID, err := extractUint(claims, "id")
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"message": "Invalid user ID in token",
				})
			}
			role, err := extractRole(claims)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"message": "Invalid role in token",
				})
			}
			profileID, _ := extractUint(claims, "profile_id")

			var user models.User
			if err := db.DB.First(&user, userID).Error; err != nil || !user.IsActive {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"message": "User not found or suspended",
				})
			}

			actor := scheduling.Actor{
				UserID:    userID,
				Role:      role,
				ProfileID: profileID,
			}
			if role == models.RoleSecretary {
				actor.ManagedDoctorIDs = managedDoctorIDs(profileID)
			}

			c.Locals("userID", userID)
			c.Locals("role", role)
			c.Locals(actorKey, actor)
			return c.Next()
		},
	})
}

// GetActor returns the actor resolved by Protected.
func GetActor(c *fiber.Ctx) scheduling.Actor {
	actor, _ := c.Locals(actorKey).(scheduling.Actor)
	return actor
}

func managedDoctorIDs(secretaryID uint) []uint {
	var secretary models.Secretary
	if err := db.DB.Preload("ManagedDoctors").First(&secretary, secretaryID).Error; err != nil {
		return nil
	}
	ids := make([]uint, 0, len(secretary.ManagedDoctors))
	for _, doctor := range secretary.ManagedDoctors {
		ids = append(ids, doctor.ID)
	}
	return ids
}

// extractUint handles multiple potential formats of numeric claims
func extractUint(claims jwt.MapClaims, key string) (uint, error) {
	val := claims[key]
	if val == nil {
		return 0, fmt.Errorf("no %s found in claims", key)
	}

	switch v := val.(type) {
	case float64:
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse %s string: %v", key, err)
		}
		return uint(parsed), nil
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported %s type: %T", key, v)
	}
}

// extractRole handles multiple potential formats of role in token
func extractRole(claims jwt.MapClaims) (string, error) {
	roleVal := claims["role"]
	if roleVal == nil {
		return "", fmt.Errorf("no role found in claims")
	}

	switch v := roleVal.(type) {
	case string:
		return v, nil
	case map[string]interface{}:
		if roleName, ok := v["name"].(string); ok {
			return roleName, nil
		}
		return "", fmt.Errorf("could not extract role name")
	default:
		return "", fmt.Errorf("unsupported role type: %T", v)
	}
}

// jwtError handles JWT errors
func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Invalid or expired token",
	})
}
