package main

import (
	"planwise-api/core/logger"
	"planwise-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Fatal("run server error", err)
	}
}
