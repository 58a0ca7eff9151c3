// Command catalog runs the product catalog admin panel and its tools.
package main

func main() {
	Execute()
}
