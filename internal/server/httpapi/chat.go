package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/doubtsolver/internal/server/chat"
	"github.com/gin-gonic/gin"
)

type chatSendRequest struct {
	Message string  `json:"message" binding:"required"`
	DoubtID *string `json:"doubt_id"`
}

func (s *Server) handleChatSend(c *gin.Context) {
	var req chatSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	msg, err := s.chat.Send(c.Request.Context(), currentUser(c).ID, req.Message, req.DoubtID)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error(c.Request.Context(), "chat send failed", "error", err)
		abortDetail(c, http.StatusInternalServerError, "Failed to send message")
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (s *Server) handleChatMessages(c *gin.Context) {
	limit, err := queryInt(c, "limit", defaultListLimit)
	if err != nil {
		abortDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	msgs, err := s.chat.Messages(c.Request.Context(), currentUser(c).ID, c.Query("doubt_id"), limit)
	if err != nil {
		s.logger.Error(c.Request.Context(), "chat messages failed", "error", err)
		abortDetail(c, http.StatusInternalServerError, "Failed to get messages")
		return
	}
	c.JSON(http.StatusOK, msgs)
}
