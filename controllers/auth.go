package controllers

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/redis"
	"github.com/clinicore/clinic-backend/utils"
)

const (
	codeVerifyEmail   = "verify"
	codeResetPassword = "reset"
	codeTTL           = 15 * time.Minute
)

func jwtSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return secret
}

// profileIDFor resolves the role-specific profile record for a user. Role
// names form a closed set; there is no lookup-by-string model registry.
func profileIDFor(tx *gorm.DB, roleName string, userID uint) (uint, error) {
	switch roleName {
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := tx.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
			return 0, err
		}
		return doctor.ID, nil
	case models.RolePatient:
		var patient models.Patient
		if err := tx.Where("user_id = ?", userID).First(&patient).Error; err != nil {
			return 0, err
		}
		return patient.ID, nil
	case models.RoleNurse:
		var nurse models.Nurse
		if err := tx.Where("user_id = ?", userID).First(&nurse).Error; err != nil {
			return 0, err
		}
		return nurse.ID, nil
	case models.RoleSecretary:
		var secretary models.Secretary
		if err := tx.Where("user_id = ?", userID).First(&secretary).Error; err != nil {
			return 0, err
		}
		return secretary.ID, nil
	}
	// Admins have no profile record.
	return 0, nil
}

// createProfileFor creates the empty role-specific profile alongside a new
// user account.
func createProfileFor(tx *gorm.DB, roleName string, userID uint) error {
	switch roleName {
	case models.RoleDoctor:
		return tx.Create(&models.Doctor{UserID: userID}).Error
	case models.RolePatient:
		return tx.Create(&models.Patient{UserID: userID}).Error
	case models.RoleNurse:
		return tx.Create(&models.Nurse{UserID: userID}).Error
	case models.RoleSecretary:
		return tx.Create(&models.Secretary{UserID: userID}).Error
	}
	return nil
}

// Register handles user registration
func Register(c *fiber.Ctx) error {
	type RegisterInput struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Phone     string `json:"phone"`
		Address   string `json:"address"`
		Role      string `json:"role"`
	}

	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Missing required fields")
	}

	roleName := input.Role
	if roleName == "" {
		roleName = models.RolePatient
	}
	if roleName == models.RoleAdmin {
		// Admin accounts are provisioned out of band.
		return utils.FailResponse(c, fiber.StatusForbidden, "Cannot self-register as admin")
	}

	var existing models.User
	if db.DB.Where("email = ?", input.Email).First(&existing).RowsAffected > 0 {
		return utils.FailResponse(c, fiber.StatusConflict, "User with this email already exists")
	}

	var role models.Role
	if err := db.DB.Where("name = ?", roleName).First(&role).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Unknown role")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  string(hashed),
		Phone:     input.Phone,
		Address:   input.Address,
		IsActive:  true,
		RoleID:    role.ID,
		Role:      role,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return createProfileFor(tx, roleName, user.ID)
	})
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	// Issue the email verification code; delivery is fire-and-forget.
	code := utils.GenerateCode()
	if err := redis.SetCode(codeVerifyEmail, user.ID, code, codeTTL); err != nil {
		log.Printf("Failed to store verification code: %v", err)
	} else {
		go sendVerificationEmail(user, code)
	}

	user.Password = ""
	return utils.SuccessResponse(c, fiber.StatusCreated, "User registered", user)
}

func sendVerificationEmail(user models.User, code string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your email verification code is <strong>%s</strong>.</p>
		<p>The code expires in 15 minutes.</p>
	`, user.FullName(), code)
	if err := utils.SendEmail(user.Email, "Verify your email", body); err != nil {
		log.Printf("Failed to send verification email to %s: %v", user.Email, err)
	}
}

// Login handles user authentication
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var user models.User
	if db.DB.Preload("Role").Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return utils.FailResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.FailResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.IsActive {
		return utils.FailResponse(c, fiber.StatusUnauthorized, "Account is deactivated")
	}

	profileID, err := profileIDFor(db.DB, user.Role.Name, user.ID)
	if err != nil {
		log.Printf("Missing %s profile for user %d: %v", user.Role.Name, user.ID, err)
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Profile not found")
	}

	claims := jwt.MapClaims{
		"id":         user.ID,
		"email":      user.Email,
		"role":       user.Role.Name,
		"profile_id": profileID,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(jwtSecret()))
	if err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	refreshID := utils.GenerateTokenID()
	refreshClaims := jwt.MapClaims{
		"id":  user.ID,
		"jti": refreshID,
		"exp": time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(jwtSecret()))
	if err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to generate refresh token")
	}
	// Refresh tokens are tracked in Redis so logout can revoke them.
	if err := redis.Client.Set(redis.Ctx, "refresh:"+refreshID, user.ID, 7*24*time.Hour).Err(); err != nil {
		log.Printf("Failed to store refresh token: %v", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Logged in", fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"user": fiber.Map{
			"id":         user.ID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"role":       user.Role.Name,
			"profile_id": profileID,
		},
	})
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	req := new(RefreshRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret()), nil
	})
	if err != nil || !token.Valid {
		return utils.FailResponse(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	claims := token.Claims.(jwt.MapClaims)
	jti, _ := claims["jti"].(string)
	if jti == "" || redis.Client.Exists(redis.Ctx, "refresh:"+jti).Val() == 0 {
		return utils.FailResponse(c, fiber.StatusUnauthorized, "Refresh token revoked")
	}

	userID := uint(claims["id"].(float64))
	var user models.User
	if err := db.DB.Preload("Role").First(&user, userID).Error; err != nil || !user.IsActive {
		return utils.FailResponse(c, fiber.StatusUnauthorized, "User not found or suspended")
	}
	profileID, err := profileIDFor(db.DB, user.Role.Name, user.ID)
	if err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Profile not found")
	}

	newClaims := jwt.MapClaims{
		"id":         user.ID,
		"email":      user.Email,
		"role":       user.Role.Name,
		"profile_id": profileID,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	}
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims)
	tokenString, err := newToken.SignedString([]byte(jwtSecret()))
	if err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Token refreshed", fiber.Map{
		"token": tokenString,
	})
}

// Logout revokes the refresh token; access tokens simply expire.
func Logout(c *fiber.Ctx) error {
	type LogoutRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	req := new(LogoutRequest)
	if err := c.BodyParser(req); err == nil && req.RefreshToken != "" {
		if token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret()), nil
		}); err == nil {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if jti, _ := claims["jti"].(string); jti != "" {
					redis.Client.Del(redis.Ctx, "refresh:"+jti)
				}
			}
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Successfully logged out", nil)
}

// GetUserProfile returns the current user's profile
func GetUserProfile(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)

	var user models.User
	if err := db.DB.Preload("Role").First(&user, actor.UserID).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusNotFound, "User not found")
	}
	user.Password = ""
	return utils.SuccessResponse(c, fiber.StatusOK, "Profile retrieved", fiber.Map{
		"user":       user,
		"profile_id": actor.ProfileID,
	})
}

// VerifyEmail confirms the code sent at registration.
func VerifyEmail(c *fiber.Ctx) error {
	type VerifyInput struct {
		Code string `json:"code"`
	}

	actor := middleware.GetActor(c)
	input := new(VerifyInput)
	if err := c.BodyParser(input); err != nil || input.Code == "" {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Verification code is required")
	}

	stored := redis.GetCode(codeVerifyEmail, actor.UserID)
	if stored == "" || stored != input.Code {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Invalid or expired verification code")
	}
	redis.DeleteCode(codeVerifyEmail, actor.UserID)

	if err := db.DB.Model(&models.User{}).Where("id = ?", actor.UserID).
		Update("is_verified", true).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to verify email")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Email verified", nil)
}

// ForgotPassword issues a password reset code to the account email.
func ForgotPassword(c *fiber.Ctx) error {
	type ForgotInput struct {
		Email string `json:"email"`
	}

	input := new(ForgotInput)
	if err := c.BodyParser(input); err != nil || input.Email == "" {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Email is required")
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected > 0 {
		code := utils.GenerateCode()
		if err := redis.SetCode(codeResetPassword, user.ID, code, codeTTL); err == nil {
			go func() {
				body := fmt.Sprintf(`
					<p>Dear %s,</p>
					<p>Your password reset code is <strong>%s</strong>.</p>
					<p>The code expires in 15 minutes. If you did not request this, ignore this email.</p>
				`, user.FullName(), code)
				if err := utils.SendEmail(user.Email, "Password reset", body); err != nil {
					log.Printf("Failed to send reset email to %s: %v", user.Email, err)
				}
			}()
		}
	}
	// Same response whether or not the account exists.
	return utils.SuccessResponse(c, fiber.StatusOK, "If the account exists, a reset code was sent", nil)
}

// ResetPassword consumes the reset code and sets the new password.
func ResetPassword(c *fiber.Ctx) error {
	type ResetInput struct {
		Email    string `json:"email"`
		Code     string `json:"code"`
		Password string `json:"password"`
	}

	input := new(ResetInput)
	if err := c.BodyParser(input); err != nil || input.Email == "" || input.Code == "" || input.Password == "" {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Email, code and new password are required")
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Invalid or expired reset code")
	}
	stored := redis.GetCode(codeResetPassword, user.ID)
	if stored == "" || stored != input.Code {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Invalid or expired reset code")
	}
	redis.DeleteCode(codeResetPassword, user.ID)

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := db.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to reset password")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Password reset", nil)
}

// UploadAvatar stores the user's avatar on Cloudinary and saves the URL.
func UploadAvatar(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "avatar file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Cannot read avatar file")
	}
	defer file.Close()

	url, err := utils.UploadAvatar(file, fmt.Sprintf("user-%d", actor.UserID))
	if err != nil {
		log.Printf("Avatar upload failed for user %d: %v", actor.UserID, err)
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to upload avatar")
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", actor.UserID).
		Update("avatar", url).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to save avatar")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Avatar updated", fiber.Map{"avatar": url})
}
