package api

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/wizardsmarket/wizards/internal/storage"
)

const maxUploadBytes = 10 << 20

// UploadAvatar stores a profile photo and records its URL on the account.
func (handler *Handler) UploadAvatar(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	filename, content, err := formFileContent(c, "file")
	if err != nil {
		return uploadInputError(c, err)
	}

	handler.ensureDependencies()
	url, err := handler.uploads.Save(user.ID, filename, content)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyContent) {
			return apiError(c, fiber.StatusBadRequest, "file is empty")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to store file")
	}

	if err := handler.repositories.Profiles.UpsertAvatar(user.ID, url); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save photo")
	}
	if err := handler.repositories.Users.UpdateByID(user.ID, map[string]any{"avatar_url": url}); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save photo")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

// UploadCV stores a CV document and records its URL on the account.
func (handler *Handler) UploadCV(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	filename, content, err := formFileContent(c, "file")
	if err != nil {
		return uploadInputError(c, err)
	}

	handler.ensureDependencies()
	url, err := handler.uploads.Save(user.ID, filename, content)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyContent) {
			return apiError(c, fiber.StatusBadRequest, "file is empty")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to store file")
	}

	if err := handler.repositories.Profiles.UpsertCV(user.ID, "CV", url); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save cv")
	}
	if err := handler.repositories.Users.UpdateByID(user.ID, map[string]any{"cv_url": url}); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save cv")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

func formFileContent(c *fiber.Ctx, field string) (string, []byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", nil, err
	}
	if fileHeader.Size > maxUploadBytes {
		return "", nil, errUploadTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return "", nil, err
	}
	if len(content) > maxUploadBytes {
		return "", nil, errUploadTooLarge
	}
	return fileHeader.Filename, content, nil
}

var errUploadTooLarge = errors.New("upload exceeds size limit")

func uploadInputError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errUploadTooLarge) {
		return apiError(c, fiber.StatusRequestEntityTooLarge, "file is too large")
	}
	return apiError(c, fiber.StatusBadRequest, "a file upload is required")
}
