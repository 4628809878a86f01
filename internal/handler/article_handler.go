package handler

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"artfeeds/internal/auth"
	apperrors "artfeeds/internal/errors"
	"artfeeds/internal/service"
	"artfeeds/internal/storage"
)

// ArticleHandler handles article CRUD and interaction endpoints.
type ArticleHandler struct {
	articleService service.ArticleService
	uploader       storage.Uploader
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(articleService service.ArticleService, uploader storage.Uploader) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		uploader:       uploader,
	}
}

// List godoc
// @Summary List articles, newest first
// @Tags articles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Param category query string false "Single category filter"
// @Param categories query string false "Comma-separated category filter (OR)"
// @Param search query string false "Substring match over title and description"
// @Success 200 {object} service.ArticlePage
// @Router /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	params := service.ListParams{
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "pageSize", 10),
		Search:   c.QueryParam("search"),
	}

	if categories := c.QueryParam("categories"); categories != "" {
		params.Categories = splitTrimmed(categories)
	} else if category := c.QueryParam("category"); category != "" {
		params.Categories = []string{category}
	}

	page, err := h.articleService.List(c.Request().Context(), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       page.Data,
		"total":      page.Total,
		"page":       page.Page,
		"pageSize":   page.PageSize,
		"totalPages": page.TotalPages,
	})
}

// Get godoc
// @Summary Fetch a single article by id
// @Tags articles
// @Produce json
// @Param articleId path int true "Article ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles/{articleId} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	articleID, err := parseUintParam(c, "articleId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid article id")
	}

	article, err := h.articleService.GetByID(c.Request().Context(), articleID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"article": article,
	})
}

// Create godoc
// @Summary Create an article with an attached image
// @Tags articles
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param category formData string true "Category name"
// @Param tags formData string false "Tags as a JSON array string or comma-separated"
// @Param image formData file true "Attachment (pdf, jpeg, png, mp4, avi, mov; max 50MB)"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	image, err := h.saveUpload(c)
	if err != nil {
		return err
	}

	article, err := h.articleService.Create(c.Request().Context(), claims.UserID, service.ArticleInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		TagsRaw:     c.FormValue("tags"),
		Image:       image,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"article": article,
	})
}

// Update godoc
// @Summary Update an owned article
// @Tags articles
// @Accept multipart/form-data
// @Produce json
// @Param articleId path int true "Article ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param category formData string false "Category name"
// @Param tags formData string false "Tags as a JSON array string or comma-separated"
// @Param removeImages formData string false "Set to true to drop the image reference"
// @Param image formData file false "Replacement attachment"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles/{articleId} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	articleID, err := parseUintParam(c, "articleId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid article id")
	}

	upd := service.ArticleUpdate{
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		Category:     c.FormValue("category"),
		RemoveImages: c.FormValue("removeImages") == "true",
	}

	if form, err := c.FormParams(); err == nil {
		if _, ok := form["tags"]; ok {
			upd.TagsProvided = true
			upd.TagsRaw = c.FormValue("tags")
		}
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		stored, err := h.saveFile(c, fh)
		if err != nil {
			return err
		}
		upd.Image = stored
	}

	article, err := h.articleService.Update(c.Request().Context(), articleID, claims.UserID, upd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"article": article,
	})
}

// Delete godoc
// @Summary Delete an owned article
// @Tags articles
// @Produce json
// @Param articleId path int true "Article ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles/{articleId} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	articleID, err := parseUintParam(c, "articleId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid article id")
	}

	if err := h.articleService.Delete(c.Request().Context(), articleID, claims.UserID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// Like godoc
// @Summary Like an article (removes any dislike)
// @Tags articles
// @Produce json
// @Param articleId path int true "Article ID"
// @Success 200 {object} map[string]interface{}
// @Router /articles/{articleId}/like [post]
func (h *ArticleHandler) Like(c echo.Context) error {
	return h.interact(c, h.articleService.Like, "article liked")
}

// Dislike godoc
// @Summary Dislike an article (removes any like)
// @Tags articles
// @Produce json
// @Param articleId path int true "Article ID"
// @Success 200 {object} map[string]interface{}
// @Router /articles/{articleId}/dislike [post]
func (h *ArticleHandler) Dislike(c echo.Context) error {
	return h.interact(c, h.articleService.Dislike, "article disliked")
}

// Block godoc
// @Summary Hide an article from the caller's feed
// @Tags articles
// @Produce json
// @Param articleId path int true "Article ID"
// @Success 200 {object} map[string]interface{}
// @Router /articles/{articleId}/block [post]
func (h *ArticleHandler) Block(c echo.Context) error {
	return h.interact(c, h.articleService.Block, "article blocked")
}

func (h *ArticleHandler) interact(c echo.Context, fn func(ctx context.Context, articleID, userID uint) error, message string) error {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	articleID, err := parseUintParam(c, "articleId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid article id")
	}

	if err := fn(c.Request().Context(), articleID, claims.UserID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

// saveUpload stores the mandatory "image" part of a multipart request.
func (h *ArticleHandler) saveUpload(c echo.Context) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", apperrors.ErrImageRequired
	}
	return h.saveFile(c, fh)
}

func (h *ArticleHandler) saveFile(c echo.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size > storage.MaxUploadSize {
		return "", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file exceeds the 50MB limit")
	}

	src, err := fh.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
	}
	defer src.Close()

	return h.uploader.Save(c.Request().Context(), fh.Filename, fh.Header.Get("Content-Type"), src)
}

func intQuery(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func splitTrimmed(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
