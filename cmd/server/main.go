package main

import "internhr/internal/app/server"

func main() {
	server.Run()
}
