package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/talentboard/moderation-backend/internal/dto"
	"github.com/talentboard/moderation-backend/internal/middleware"
	"github.com/talentboard/moderation-backend/internal/services"
)

type PostingHandler struct {
	postingService *services.PostingService
}

func NewPostingHandler(postingService *services.PostingService) *PostingHandler {
	return &PostingHandler{postingService: postingService}
}

func (h *PostingHandler) Create(c *fiber.Ctx) error {
	companyID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreatePostingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	posting, err := h.postingService.Create(companyID, &req)
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create posting",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(posting)
}

func (h *PostingHandler) Update(c *fiber.Ctx) error {
	companyID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	postingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid posting ID",
		})
	}

	var req dto.UpdatePostingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	posting, err := h.postingService.Update(postingID, companyID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostingNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrNotPostingOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update posting",
		})
	}

	return c.JSON(posting)
}

func (h *PostingHandler) Get(c *fiber.Ctx) error {
	postingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid posting ID",
		})
	}

	posting, err := h.postingService.Get(postingID)
	if err != nil {
		if errors.Is(err, services.ErrPostingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch posting",
		})
	}

	return c.JSON(posting)
}

func (h *PostingHandler) ListFlagged(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	if limit > 100 {
		limit = 100
	}

	postings, total, err := h.postingService.ListFlagged(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch flagged postings",
		})
	}

	return c.JSON(fiber.Map{
		"postings": postings,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}
