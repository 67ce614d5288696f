package main

import "github.com/ariefcatur/go-salon-orders/internal/cli"

func main() {
	cli.Execute()
}
