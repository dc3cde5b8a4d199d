//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"codeberg.org/snonux/sgs/internal"
)

const (
	binary  = "sgs"
	mainPkg = "./cmd/sgs"
)

var ldflags = "-s -w"

// Default target to run when none is specified
var Default = Build

// Build builds the sgs binary
func Build() error {
	fmt.Printf("Building %s v%s...\n", binary, internal.Version)
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binary, mainPkg)
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Install installs sgs into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "-ldflags", ldflags, mainPkg)
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning...")
	return sh.Rm(binary)
}
