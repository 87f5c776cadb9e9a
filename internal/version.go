// Package internal holds metadata shared across wordbridge packages.
package internal

// Version is the current wordbridge version
const Version = "0.1.0"
