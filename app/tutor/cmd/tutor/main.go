package main

import "github.com/iWorld-y/math_tutor/app/tutor/internal/cli"

func main() {
	cli.Execute()
}
