package main

import "github.com/dbsmedya/goinertia/cmd/goinertia/cmd"

func main() {
	cmd.Execute()
}
