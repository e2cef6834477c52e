package main

import "airbnb-pricing/cli"

func main() {
	cli.Execute()
}
