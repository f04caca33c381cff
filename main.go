package main

import "storage-kit/cmd"

func main() {
	cmd.Execute()
}
