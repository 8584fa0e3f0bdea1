package routes

import (
	"wayfare/itinerary"
	"wayfare/ratelim"
	"wayfare/search"

	"github.com/julienschmidt/httprouter"
)

func AddItineraryRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *itinerary.Handler) {
	router.GET("/api/itineraries", rl.Limit(h.GetItineraries))           //Fetch all itineraries (status + q filters)
	router.POST("/api/itineraries", rl.Limit(h.CreateItinerary))         //Create a new itinerary
	router.GET("/api/itineraries/all/:id", rl.Limit(h.GetItinerary))     //Fetch a single itinerary
	router.PUT("/api/itineraries/:id", rl.Limit(h.UpdateItinerary))      //Update an itinerary
	router.DELETE("/api/itineraries/:id", rl.Limit(h.DeleteItinerary))   //Delete an itinerary
	router.GET("/api/itineraries/print/:id", rl.Limit(h.PrintItinerary)) //Download a PDF summary
	router.GET("/api/itineraries/qr/:id", rl.Limit(h.ItineraryQR))       //Share-link QR code
}

func AddSearchRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *search.Handler) {
	router.GET("/api/search", rl.Limit(h.Search))
	router.GET("/api/search/history", rl.Limit(h.GetHistory))
}
