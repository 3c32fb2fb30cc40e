package router

import (
	"github.com/eco_rewards/handler"
	"github.com/gin-gonic/gin"
)

func SetupRouter(rewardsHandler *handler.RewardsHandler, tripHandler *handler.TripHandler) *gin.Engine {
	r := gin.Default()

	rewards := r.Group("/api/rewards")
	{
		rewards.POST("/wallet/bind", rewardsHandler.BindWallet)
		rewards.POST("/wallet/unbind", rewardsHandler.UnbindWallet)
		rewards.GET("/wallet/binding", rewardsHandler.GetBinding)
		rewards.POST("/settle", rewardsHandler.Settle)
		rewards.GET("/chain/transactions", rewardsHandler.ScanTransactions)
		rewards.GET("/view", rewardsHandler.View)
	}

	api := r.Group("/api")
	{
		api.POST("/users", tripHandler.CreateProfile)
		api.GET("/users/:id", tripHandler.GetProfile)
		api.POST("/trips", tripHandler.CreateTrip)
		api.GET("/trips/:id", tripHandler.GetTrip)
		api.POST("/trips/:id/itineraries", tripHandler.ProposeItinerary)
		api.GET("/trips/:id/itineraries", tripHandler.ListItineraries)
		api.POST("/itineraries/:id/accept", tripHandler.AcceptItinerary)
	}

	return r
}
