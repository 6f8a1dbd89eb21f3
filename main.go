package main

import "github.com/duramato/guessit/internal/cmd"

func main() {
	cmd.Execute()
}
