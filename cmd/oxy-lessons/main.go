// Command oxy-lessons runs the 3D lessons.
package main

import (
	"log"
	"runtime"

	"github.com/Carmen-Shannon/oxy-lessons/config"
)

func init() {
	// GLFW must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCommand(runLesson).Execute(); err != nil {
		log.Fatalf("[Lessons] %v", err)
	}
}

func runLesson(cfg config.Config, name string) error {
	a, err := newApp(cfg, name)
	if err != nil {
		return err
	}
	return a.Run()
}
