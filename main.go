package main

import (
	"github.com/tripmates/itinerary-backend/cmd/app"
)

func main() {
	app.Run()
}
