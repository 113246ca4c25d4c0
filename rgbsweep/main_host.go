//go:build !tinygo

package main

func main() {
	println("rgbsweep is firmware; build it with tinygo, e.g. tinygo flash -target=pico ./rgbsweep")
}
