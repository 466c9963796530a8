package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/app/services"
	"github.com/emres/learnhub/internal/middleware"
)

// BookController handles book publishing operations
type BookController struct {
	bookService services.BookService
}

// NewBookController creates a new BookController
func NewBookController(bookService services.BookService) *BookController {
	return &BookController{bookService: bookService}
}

// CreateBook publishes a book for one of the caller's courses
// @Summary Publish a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBookRequest true "Book data"
// @Success 201 {object} dto.APIResponse{data=dto.BookResponse} "Book published"
// @Failure 403 {object} dto.APIResponse "Not the course owner"
// @Router /books [post]
func (c *BookController) CreateBook(ctx *gin.Context) {
	var req dto.CreateBookRequest
	if !bindJSON(ctx, &req) {
		return
	}

	book, err := c.bookService.CreateBook(ctx, middleware.CurrentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(
		dto.ToBookResponse(book), "Book published successfully"))
}

// GetAllBooks lists every book
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.BookResponse} "Books"
// @Router /books [get]
func (c *BookController) GetAllBooks(ctx *gin.Context) {
	books, err := c.bookService.GetAllBooks(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toBookResponses(books), ""))
}

// GetBook retrieves one book
// @Summary Get book details
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse} "Book"
// @Failure 404 {object} dto.APIResponse "Book not found"
// @Router /books/{id} [get]
func (c *BookController) GetBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	book, err := c.bookService.GetBook(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToBookResponse(book), ""))
}

// ListBooksByCourse lists books attached to a course
// @Summary List books for a course
// @Tags books
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.BookResponse} "Books"
// @Router /courses/{id}/books [get]
func (c *BookController) ListBooksByCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	books, err := c.bookService.ListBooksByCourse(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toBookResponses(books), ""))
}

// ListMyBooks lists the caller's published books
// @Summary List own books
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.BookResponse} "Books"
// @Router /books/mine [get]
func (c *BookController) ListMyBooks(ctx *gin.Context) {
	books, err := c.bookService.ListMyBooks(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toBookResponses(books), ""))
}

// UpdateBook edits an owned book
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param request body dto.UpdateBookRequest true "Book changes"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse} "Updated book"
// @Failure 403 {object} dto.APIResponse "Not the book owner"
// @Router /books/{id} [put]
func (c *BookController) UpdateBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if !bindJSON(ctx, &req) {
		return
	}

	book, err := c.bookService.UpdateBook(ctx, middleware.CurrentUserID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.ToBookResponse(book), "Book updated successfully"))
}

// DeleteBook removes a book
// @Summary Delete a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} dto.APIResponse "Book deleted"
// @Router /books/{id} [delete]
func (c *BookController) DeleteBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	isAdmin := middleware.CurrentUserRole(ctx) == models.RoleAdmin
	if err := c.bookService.DeleteBook(ctx, middleware.CurrentUserID(ctx), id, isAdmin); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Book deleted successfully"))
}

// DownloadBook records a download
// @Summary Record a book download
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} dto.APIResponse "Download recorded"
// @Router /books/{id}/download [post]
func (c *BookController) DownloadBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.bookService.RecordDownload(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Download recorded"))
}

// PurchaseBook records a purchase
// @Summary Record a book purchase
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} dto.APIResponse "Purchase recorded"
// @Router /books/{id}/purchase [post]
func (c *BookController) PurchaseBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.bookService.RecordPurchase(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Purchase recorded"))
}

func toBookResponses(books []*models.Book) []dto.BookResponse {
	items := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		items = append(items, dto.ToBookResponse(b))
	}
	return items
}
