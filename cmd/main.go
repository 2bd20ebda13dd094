package main

import (
	"go-economy-bot/app"
)

func main() {
	app.Run()
}
