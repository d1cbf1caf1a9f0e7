package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/nainglynndw/securedenv/internal/container"
)

type UserSettings struct {
	// DataPath is the storage root for per-project containers.
	DataPath string

	// UserConfigsPath is the directory holding config.toml.
	UserConfigsPath string
}

var UserSecuredenvSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	// Storage locations are independent of which project you are in,
	// so it is ok to init here.
	UserSecuredenvSettings = &UserSettings{
		DataPath:        filepath.Join(dataDir, "securedenv"),
		UserConfigsPath: filepath.Join(configDir, "securedenv"),
	}
}

// ProjectStoragePath returns the local storage directory for a project,
// keyed by its name hash rather than the literal name.
func ProjectStoragePath(projectHash string) string {
	return filepath.Join(UserSecuredenvSettings.DataPath, projectHash)
}

// ContainerPath returns the full path of a project's local container.
func ContainerPath(projectHash string) string {
	return filepath.Join(ProjectStoragePath(projectHash), container.FileName)
}
