package main

import "github.com/fieldprofiler/fieldprofiler/cmd"

func main() {
	cmd.Execute()
}
