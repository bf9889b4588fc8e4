package controller

import (
	"docrag-be/internal/dto"
	"docrag-be/internal/pkg/serverutils"
	"docrag-be/internal/service"
	"docrag-be/pkg/filesearch"

	"github.com/gofiber/fiber/v2"
)

type IStoreController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
	Create(ctx *fiber.Ctx) error
	UploadFile(ctx *fiber.Ctx) error
	Query(ctx *fiber.Ctx) error
	ExampleQuestions(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type storeController struct {
	service service.IStoreService
}

func NewStoreController(service service.IStoreService) IStoreController {
	return &storeController{service: service}
}

func (c *storeController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	h := api.Group("/stores", jwtMiddleware)
	h.Post("", c.Create)
	h.Post(":id/files", c.UploadFile)
	h.Post(":id/query", c.Query)
	h.Get(":id/example-questions", c.ExampleQuestions)
	h.Delete(":id", c.Delete)
}

// Create provisions a new file search store
// @Summary Create store
// @Tags Stores
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} dto.CreateStoreResponse
// @Router /api/stores [post]
func (c *storeController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateStoreRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Store created", res))
}

// UploadFile blocks until the provider has indexed the file
// @Summary Upload file to store
// @Tags Stores
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document"
// @Success 200 {object} dto.UploadFileResponse
// @Router /api/stores/{id}/files [post]
func (c *storeController) UploadFile(ctx *fiber.Ctx) error {
	header, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing file")
	}

	file, err := header.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Unreadable file")
	}
	defer file.Close()

	res, err := c.service.UploadFile(ctx.UserContext(), serverutils.UserID(ctx), ctx.Params("id"), filesearch.FileUpload{
		Name:     header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Reader:   file,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("File indexed", res))
}

// @Summary Query store
// @Tags Stores
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} dto.QueryStoreResponse
// @Router /api/stores/{id}/query [post]
func (c *storeController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryStoreRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Query(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success query store", res))
}

func (c *storeController) ExampleQuestions(ctx *fiber.Ctx) error {
	res, err := c.service.ExampleQuestions(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get example questions", res))
}

func (c *storeController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.UserContext(), serverutils.UserID(ctx), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Store deleted", nil))
}
