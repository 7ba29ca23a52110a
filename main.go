// @title CourseGPT API
// @version 1.0
// @description Lesson generation, lesson editing and course building backend.

// @host localhost:5000
// @BasePath /

package main

import (
	"fmt"
	"os"

	"coursegpt_backend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
