// Package main is the entry point for screenbadge.
package main

func main() {
	Execute()
}
