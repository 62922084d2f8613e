package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authDTO "absensiku_backend/internals/features/users/auth/dto"
	"absensiku_backend/internals/features/users/auth/service"
	userModel "absensiku_backend/internals/features/users/user/model"
	helper "absensiku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

// GET /api/auth/profile
func (ac *AuthController) Me(c *fiber.Ctx) error {
	user, err := ac.currentUser(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Profil berhasil diambil", authDTO.FromModel(user))
}

// PUT /api/auth/profile
func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	user, err := ac.currentUser(c)
	if err != nil {
		return err
	}

	var req authDTO.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()

	updates := map[string]any{}
	if req.FullName != nil && *req.FullName != "" {
		updates["full_name"] = *req.FullName
	}
	if req.Department != nil {
		updates["department"] = req.Department
	}
	if req.Position != nil {
		updates["position"] = req.Position
	}
	if len(updates) > 0 {
		if err := ac.DB.Model(user).Updates(updates).Error; err != nil {
			log.Println("[ERROR] UpdateProfile:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui profil")
		}
	}

	return helper.JsonUpdated(c, "Profil berhasil diperbarui", authDTO.FromModel(user))
}

func (ac *AuthController) currentUser(c *fiber.Ctx) (*userModel.UserModel, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	userUUID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid UUID format")
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
	return &user, nil
}
