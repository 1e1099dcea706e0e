package main

import "github.com/Camping-RSO/camping-logs-ms/internal/app"

func main() {
	app.Run()
}
