package main

import "github.com/dbsmedya/gomissing/cmd/gomissing/cmd"

func main() {
	cmd.Execute()
}
