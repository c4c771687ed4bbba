package main

import "pirlanta/internal/app"

// @title           Pirlanta API
// @version         1.0
// @description     Digital readiness assessment, threat feed and site content.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
func main() {
	app.Run()
}
