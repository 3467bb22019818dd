package main

import "github.com/Alijeyrad/mindwell_backend/cmd"

func main() {
	cmd.Execute()
}
