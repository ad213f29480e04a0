package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cropcareai/backend/internal/config"
	"github.com/cropcareai/backend/internal/dto"
	"github.com/cropcareai/backend/internal/models"
	"github.com/cropcareai/backend/internal/sms"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrPhoneTaken         = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrOTPExpired         = errors.New("OTP expired")
	ErrNoCountryCode      = errors.New("phone number must include country code or set DEFAULT_COUNTRY_CODE")
	ErrOTPDelivery        = errors.New("failed to send OTP")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	sender sms.Sender
}

func NewAuthService(db *gorm.DB, cfg *config.Config, sender sms.Sender) *AuthService {
	return &AuthService{db: db, cfg: cfg, sender: sender}
}

func (s *AuthService) SignupEmail(req *dto.SignupEmailRequest) (*dto.AuthResponse, error) {
	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     strings.Split(req.Email, "@")[0],
		Name:         req.Name,
		Email:        &req.Email,
		PasswordHash: string(hash),
		AuthProvider: "email",
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = &req.PhoneNumber
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) SignupPhone(req *dto.SignupPhoneRequest) (*dto.AuthResponse, error) {
	var existing models.User
	if err := s.db.Where("phone_number = ?", req.PhoneNumber).First(&existing).Error; err == nil {
		return nil, ErrPhoneTaken
	}

	// Phone-only accounts never log in by password; generate one when the
	// caller did not supply any.
	password := req.Password
	if password == "" {
		password = randomSecret()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     req.PhoneNumber,
		Name:         req.Name,
		PhoneNumber:  &req.PhoneNumber,
		PasswordHash: string(hash),
		AuthProvider: "phone",
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(&user)
}

// SendOTP stores a fresh code on the user (auto-registering unknown phone
// numbers) and dispatches it through the SMS collaborator. Exactly one
// delivery attempt is made.
func (s *AuthService) SendOTP(phoneNumber string) error {
	formatted, err := normalizePhone(phoneNumber, s.cfg.DefaultCountryCode)
	if err != nil {
		return err
	}

	var user models.User
	if err := s.db.Where("phone_number = ?", phoneNumber).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(randomSecret()), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user = models.User{
			Username:     phoneNumber,
			PhoneNumber:  &phoneNumber,
			PasswordHash: string(hash),
			AuthProvider: "phone",
		}
		if err := s.db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
	}

	code := generateOTP()
	expiresAt := time.Now().Add(s.cfg.OTPExpiry)
	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"otp_code":       code,
		"otp_expires_at": expiresAt,
	}).Error; err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := s.sender.Send(formatted, "Your OTP is "+code); err != nil {
		return fmt.Errorf("%w: %s", ErrOTPDelivery, err)
	}
	return nil
}

// VerifyOTP checks the stored code and expiry, clears the code on success
// and issues a token pair, consistent with the password login path.
func (s *AuthService) VerifyOTP(phoneNumber, code string) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("phone_number = ?", phoneNumber).First(&user).Error; err != nil {
		return nil, ErrInvalidOTP
	}

	if user.OTPCode == nil || *user.OTPCode != code {
		return nil, ErrInvalidOTP
	}
	if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return nil, ErrOTPExpired
	}

	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"otp_code":       nil,
		"otp_expires_at": nil,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to clear OTP: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:          user.ID,
			Username:    user.Username,
			Name:        user.Name,
			Email:       user.Email,
			PhoneNumber: user.PhoneNumber,
			IsActive:    user.IsActive,
			CreatedAt:   user.CreatedAt,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}
	if user.Email != nil {
		claims["email"] = *user.Email
	}
	if user.PhoneNumber != nil {
		claims["phone"] = *user.PhoneNumber
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawToken := randomSecret()
	record := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

// normalizePhone prefixes the default country code when the number lacks a
// leading international-format marker. Numbers already marked pass through
// unchanged.
func normalizePhone(phoneNumber, defaultCountryCode string) (string, error) {
	formatted := strings.TrimSpace(phoneNumber)
	if strings.HasPrefix(formatted, "+") {
		return formatted, nil
	}
	if defaultCountryCode == "" {
		return "", ErrNoCountryCode
	}
	return defaultCountryCode + formatted, nil
}

// generateOTP returns a 6-digit numeric code with a non-zero leading digit.
func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the process is in no state to serve.
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

func randomSecret() string {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		panic(err)
	}
	return base64.URLEncoding.EncodeToString(raw)
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
