package main

import "lysodata_backend/internal/app"

func main() {
	app.Run()
}
