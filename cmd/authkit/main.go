package main

import "github.com/dmitrymomot/authkit/cmd/authkit/cmd"

func main() {
	cmd.Execute()
}
