// Command inventory tracks tools, their prices and stock, and their
// suppliers in a local SQLite store.
package main

import "github.com/mesh-intelligence/inventory/internal/cli"

func main() {
	cli.Execute()
}
