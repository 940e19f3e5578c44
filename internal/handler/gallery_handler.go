package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clubhub/internal/middleware"
	"clubhub/internal/service/gallery"
)

type GalleryHandler struct {
	galleryService gallery.Service
}

func NewGalleryHandler(galleryService gallery.Service) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

func (h *GalleryHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("Image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Unable to read uploaded file")
	}
	defer file.Close()

	input := gallery.UploadInput{
		Album:       c.FormValue("album", "general"),
		Title:       c.FormValue("title"),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	}

	item, err := h.galleryService.Upload(c.Context(), middleware.GetCurrentMember(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *GalleryHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return middleware.BadRequest("Invalid gallery item ID")
	}

	item, err := h.galleryService.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(item)
}

func (h *GalleryHandler) List(c *fiber.Ctx) error {
	result, err := h.galleryService.List(c.Context(), c.Query("album"), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *GalleryHandler) ListAlbums(c *fiber.Ctx) error {
	albums, err := h.galleryService.ListAlbums(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"albums": albums})
}

func (h *GalleryHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return middleware.BadRequest("Invalid gallery item ID")
	}

	if err := h.galleryService.Delete(c.Context(), id, middleware.GetCurrentMember(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
