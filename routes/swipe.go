package routes

import (
	"debatematch/controllers"

	"github.com/gin-gonic/gin"
)

func RecordLikeRouteHandler(c *gin.Context) {
	controllers.RecordLike(c)
}

func RecordPassRouteHandler(c *gin.Context) {
	controllers.RecordPass(c)
}

func GetCandidatesRouteHandler(c *gin.Context) {
	controllers.GetCandidates(c)
}
