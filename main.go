package main

import "video-transcriber/cmd"

func main() {
	cmd.Execute()
}
