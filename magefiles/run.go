//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed in a window. WOOD_CONFIG points to an optional config file.
func (Run) Game() error {
	fmt.Println("Run game...")
	if _, err := executeCmd("go", withArgs(runArgs()...), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the testbed without a window.
func (Run) Headless() error {
	fmt.Println("Run headless game...")
	if _, err := executeCmd("go", withArgs(append(runArgs(), "-headless")...), withStream()); err != nil {
		return err
	}
	return nil
}

func runArgs() []string {
	args := []string{"run", "."}
	if config := os.Getenv("WOOD_CONFIG"); config != "" {
		args = append(args, "-config", config)
	}
	return args
}

type Test mg.Namespace

// Runs every test of the module.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the tests with the race detector.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}
