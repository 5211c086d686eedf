/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/scribeworks/scribe-api/cmd"

// @title           Scribe API
// @version         1.0.0
// @description     A transcription service with versioned transcripts, format conversion, and async job processing
// @termsOfService  http://swagger.io/terms/
// @contact.name    API Support
// @contact.url     https://github.com/scribeworks/scribe-api
// @contact.email   support@example.com
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT bearer token, sent as "Bearer <token>"
func main() {
	cmd.Execute()
}
