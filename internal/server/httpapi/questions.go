package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/doubtsolver/internal/common"
	"github.com/dmitrijs2005/doubtsolver/internal/server/doubts"
	"github.com/gin-gonic/gin"
)

const defaultListLimit = 50

type textQuestionRequest struct {
	Question string `json:"question" binding:"required"`
	Subject  string `json:"subject" binding:"required"`
}

func (s *Server) handleTextQuestion(c *gin.Context) {
	var req textQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	d, err := s.doubts.CreateText(c.Request.Context(), currentUser(c).ID, req.Question, req.Subject)
	if err != nil {
		s.doubtError(c, err, "Failed to create doubt")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleImageQuestion(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, common.MaxImageSize+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			abortDetail(c, http.StatusBadRequest, "File size must be less than 5MB")
			return
		}
		abortDetail(c, http.StatusBadRequest, "Image file is required")
		return
	}
	if fh.Size > common.MaxImageSize {
		abortDetail(c, http.StatusBadRequest, "File size must be less than 5MB")
		return
	}

	f, err := fh.Open()
	if err != nil {
		abortDetail(c, http.StatusBadRequest, "Image file is unreadable")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, common.MaxImageSize+1))
	if err != nil {
		abortDetail(c, http.StatusBadRequest, "Image file is unreadable")
		return
	}

	img := doubts.Image{ContentType: fh.Header.Get("Content-Type"), Data: data}
	d, err := s.doubts.CreateImage(c.Request.Context(), currentUser(c).ID, c.PostForm("question"), c.PostForm("subject"), img)
	if err != nil {
		s.doubtError(c, err, "Failed to process image question")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleUserQuestions(c *gin.Context) {
	u := currentUser(c)
	if c.Param("id") != u.ID {
		abortDetail(c, http.StatusForbidden, "Not allowed to view questions of another user")
		return
	}
	s.listDoubts(c, u.ID)
}

func (s *Server) handleListDoubts(c *gin.Context) {
	s.listDoubts(c, currentUser(c).ID)
}

func (s *Server) listDoubts(c *gin.Context, userID string) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		abortDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	limit, err := queryInt(c, "limit", defaultListLimit)
	if err != nil {
		abortDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	list, err := s.doubts.List(c.Request.Context(), userID, skip, limit)
	if err != nil {
		s.doubtError(c, err, "Failed to get doubts")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetDoubt(c *gin.Context) {
	d, err := s.doubts.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		s.doubtError(c, err, "Failed to get doubt")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleDeleteDoubt(c *gin.Context) {
	if err := s.doubts.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		s.doubtError(c, err, "Failed to delete doubt")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Doubt deleted successfully"})
}

func (s *Server) doubtError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, doubts.ErrInvalidInput):
		abortDetail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrNotFound):
		abortDetail(c, http.StatusNotFound, "Doubt not found")
	default:
		s.logger.Error(c.Request.Context(), fallback, "error", err)
		abortDetail(c, http.StatusInternalServerError, fallback)
	}
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return v, nil
}
