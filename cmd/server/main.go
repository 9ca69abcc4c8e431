package main

import (
	"os"

	"chatshell/internal/app"
)

// @title        chatshell API
// @version      1.0
// @description  State core of a chat assistant: conversations, turns and a live event stream.
// @host         localhost:8000
// @BasePath     /api
func main() {
	os.Exit(app.Run())
}
