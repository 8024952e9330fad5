package routes

import (
	"debatematch/controllers"

	"github.com/gin-gonic/gin"
)

func CreateDebateRouteHandler(c *gin.Context) {
	controllers.CreateDebate(c)
}

func GetDebateRouteHandler(c *gin.Context) {
	controllers.GetDebate(c)
}

func RequestEndRouteHandler(c *gin.Context) {
	controllers.RequestEnd(c)
}

func ConcludePrivateRouteHandler(c *gin.Context) {
	controllers.ConcludePrivate(c)
}

func ConcludePublicRouteHandler(c *gin.Context) {
	controllers.ConcludePublic(c)
}

func CastVoteRouteHandler(c *gin.Context) {
	controllers.CastVote(c)
}

func RecordMessageRouteHandler(c *gin.Context) {
	controllers.RecordMessage(c)
}
