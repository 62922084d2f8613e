package service

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"absensiku_backend/internals/configs"
	"absensiku_backend/internals/constants"
	authDTO "absensiku_backend/internals/features/users/auth/dto"
	companyModel "absensiku_backend/internals/features/users/company/model"
	userModel "absensiku_backend/internals/features/users/user/model"
	helper "absensiku_backend/internals/helpers"
)

/* ==========================
   Const & Types
========================== */

const accessTTLDefault = 7 * 24 * time.Hour // selaras dgn masa berlaku token versi lama

var validate = validator.New()

/* ==========================
   REGISTER
========================== */

// POST /api/auth/register
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// 🔹 Cek email sudah terpakai
	var count int64
	if err := db.Model(&userModel.UserModel{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		log.Println("[ERROR] Cek email:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email sudah terdaftar")
	}

	// 🔹 Hash password
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	// 🔹 Buat user + company dalam satu transaksi
	user := userModel.UserModel{
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   string(hashed),
		Role:       constants.RoleEmployee,
		Department: req.Department,
		Position:   req.Position,
		IsActive:   true,
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		company, err := findOrCreateCompany(tx, req.CompanyName)
		if err != nil {
			return err
		}
		user.CompanyID = company.ID
		return tx.Create(&user).Error
	}); err != nil {
		log.Println("[ERROR] Register:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat user")
	}

	token, err := issueAccessToken(&user)
	if err != nil {
		log.Println("[ERROR] issueAccessToken:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.JsonCreated(c, "Registrasi berhasil", authDTO.AuthResponse{
		Token: token,
		User:  authDTO.FromModel(&user),
	})
}

/* ==========================
   LOGIN
========================== */

// POST /api/auth/login
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user userModel.UserModel
	if err := db.First(&user, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// pesan sengaja generik: jangan bocorkan email mana yang terdaftar
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		log.Println("[ERROR] Login query:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	token, err := issueAccessToken(&user)
	if err != nil {
		log.Println("[ERROR] issueAccessToken:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.JsonOK(c, "Login berhasil", authDTO.AuthResponse{
		Token: token,
		User:  authDTO.FromModel(&user),
	})
}

/* ==========================
   Helpers
========================== */

func findOrCreateCompany(tx *gorm.DB, name string) (*companyModel.CompanyModel, error) {
	var company companyModel.CompanyModel
	err := tx.First(&company, "name = ?", name).Error
	if err == nil {
		return &company, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	company = companyModel.CompanyModel{Name: name}
	if err := tx.Create(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func issueAccessToken(u *userModel.UserModel) (string, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        u.ID.String(),
		"company_id": u.CompanyID.String(),
		"role":       u.Role,
		"iat":        now.Unix(),
		"exp":        now.Add(accessTTLDefault).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
