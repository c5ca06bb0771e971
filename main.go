package main

import "github.com/mweissbach/gospring/cmd"

func main() {
	cmd.Execute()
}
