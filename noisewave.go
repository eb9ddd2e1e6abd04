package main

import (
	"fmt"
	"os"
	"runtime"

	"radiantwavetech.com/noisewave/internal/application"
)

func init() {
	// SDL and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	fmt.Printf("Starting application\n")
	if err := application.Run(); err != nil {
		fmt.Printf("Application exited with a fatal error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Stopping application\n")
}
