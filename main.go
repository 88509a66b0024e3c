package main

import "github.com/klytics/pivotkit/cmd"

func main() {
	cmd.Execute()
}
