// Command reveng is the CLI driver for the arbitrary-precision CRC engine
// and Williams-model reverse-engineering search.
package main

func main() {
	Execute()
}
