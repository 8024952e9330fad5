package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RecordMessage bumps the debate's message counter. The chat transport itself
// lives outside this service; it reports each delivered message here so the
// engagement bonus has something to count.
func RecordMessage(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	debateID, ok := debateIDParam(c)
	if !ok {
		return
	}

	if err := DebateService.RecordMessage(c.Request.Context(), debateID); err != nil {
		respondDebateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
