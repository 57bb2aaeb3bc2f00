package main

import "github.com/seo-boostpro/backend/cmd"

func main() {
	cmd.Execute()
}
