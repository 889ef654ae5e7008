// Command truncdensity draws normal samples, truncates them at a threshold and
// renders the density histogram with the correctly renormalized truncated
// normal density on top.
package main

func main() {
	Execute()
}
