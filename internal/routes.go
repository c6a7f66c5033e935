package internal

import (
	"net/http"
	"spotter/internal/controllers"
	"spotter/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/sightings", http.HandlerFunc(apiController.CreateSighting))
	routers.Get("/sightings", http.HandlerFunc(apiController.ListSightings))
	routers.Get("/stats", http.HandlerFunc(apiController.GetStats))
	routers.Post("/sync", http.HandlerFunc(apiController.Sync))
	routers.Get("/colors", http.HandlerFunc(apiController.GetColors))
	return routers
}
