package confkit

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenvOnce loads a .env file the first time it is called.
//
//   - NO_DOTENV=1 disables loading.
//   - ENV_FILE names a single file to load.
//   - otherwise .env files are loaded from the working directory up to the
//     project root (the first directory holding go.mod or .git).
//
// Variables already present in the environment win unless DOTENV_OVERLOAD=1.
func LoadDotenvOnce() {
	dotenvOnce.Do(loadDotenv)
}

func loadDotenv() {
	if os.Getenv("NO_DOTENV") == "1" {
		return
	}

	overload := os.Getenv("DOTENV_OVERLOAD") == "1"
	load := func(path string) {
		if !fileExists(path) {
			return
		}
		if overload {
			_ = godotenv.Overload(path)
		} else {
			_ = godotenv.Load(path)
		}
	}

	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		load(envFile)
		return
	}

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	walkUp(wd, func(dir string) bool {
		load(filepath.Join(dir, ".env"))
		return isProjectRoot(dir)
	})
}
