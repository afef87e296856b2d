package main

import "github.com/Arbaj2004/Smart-Learn/internal/app"

func main() {
	app.Run()
}
