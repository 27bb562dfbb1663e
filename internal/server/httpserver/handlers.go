package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/bookmarker/internal/server/models"
	"github.com/dmitrijs2005/bookmarker/internal/server/services"
	"github.com/dmitrijs2005/bookmarker/internal/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *handlers) signUp(c *gin.Context) {
	var req shared.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	account, err := h.credentials.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *handlers) signIn(c *gin.Context) {
	var req shared.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, err := h.credentials.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, shared.TokenResponse{AccessToken: token})
}

func (h *handlers) me(c *gin.Context) {
	account, err := h.users.Me(c.Request.Context(), accountID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *handlers) editMe(c *gin.Context) {
	var req shared.EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	account, err := h.users.Edit(c.Request.Context(), accountID(c), services.EditUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *handlers) listBookmarks(c *gin.Context) {
	list, err := h.bookmarks.List(c.Request.Context(), accountID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if list == nil {
		list = []*models.Bookmark{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) createBookmark(c *gin.Context) {
	var req shared.CreateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.bookmarks.Create(c.Request.Context(), accountID(c), services.CreateBookmarkInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *handlers) getBookmark(c *gin.Context) {
	id, ok := bookmarkID(c)
	if !ok {
		return
	}

	b, err := h.bookmarks.Get(c.Request.Context(), accountID(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handlers) editBookmark(c *gin.Context) {
	id, ok := bookmarkID(c)
	if !ok {
		return
	}

	var req shared.EditBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.bookmarks.Edit(c.Request.Context(), accountID(c), id, services.EditBookmarkInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handlers) deleteBookmark(c *gin.Context) {
	id, ok := bookmarkID(c)
	if !ok {
		return
	}

	if err := h.bookmarks.Delete(c.Request.Context(), accountID(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bookmarkID returns the canonical form of the :id path parameter, or
// writes a 400 when it is not a uuid.
func bookmarkID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "id must be a UUID")
		return "", false
	}
	return id.String(), true
}
