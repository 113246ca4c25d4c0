//go:build !tinygo

package main

// The firmware needs the TinyGo machine package. This stub lets the
// host-side tests in this package build.
func main() {
	println("rgbcycle is firmware; build it with tinygo, e.g. tinygo flash -target=pico ./rgbcycle")
}
