package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rentlyapp/rently/internal/common"
)

type uploadByLinkRequest struct {
	Link string `json:"link"`
}

// handleUpload stores every part of the "photos" multipart field and returns
// the storage keys in submission order.
func (s *Server) handleUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		s.writeError(c, common.ErrValidation)
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		s.writeError(c, common.ErrValidation)
		return
	}

	keys := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			s.writeError(c, common.ErrValidation)
			return
		}

		key, err := s.photos.Store(c.Request.Context(), f, fh.Filename)
		f.Close()
		if err != nil {
			s.writeError(c, err)
			return
		}
		keys = append(keys, key)
	}

	c.JSON(http.StatusOK, keys)
}

func (s *Server) handleUploadByLink(c *gin.Context) {
	var req uploadByLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, common.ErrValidation)
		return
	}

	key, err := s.photos.StoreFromLink(c.Request.Context(), req.Link)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, key)
}

// handleGetPhoto redirects to a short-lived presigned URL instead of proxying
// object bytes through the API.
func (s *Server) handleGetPhoto(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	url, err := s.photos.PresignedGetURL(c.Request.Context(), key)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, url)
}
