package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/nainglynndw/securedenv/internal/keyring"
)

const configFileName = "config.toml"

func configFilePath() string {
	return filepath.Join(UserSecuredenvSettings.UserConfigsPath, configFileName)
}

// The config file may hold a fallback token, so it is written 0600.
func writeConfigFile(path string, config *UserConfig) error {
	encoded, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0600)
}

func readConfigFile(path string, config *UserConfig) error {
	_, err := toml.DecodeFile(path, config)
	return err
}

type UserConfig struct {
	Install Install      `toml:"install"`
	Remote  RemoteConfig `toml:"remote"`
}

type Install struct {
	// UUID identifies this securedenv installation in audit entries and
	// remote commit messages.
	UUID string `toml:"install_uuid"`
}

// RemoteConfig describes the remote object store a project's container is
// pushed to and pulled from. The token field is only populated when the
// OS keyring is unavailable.
type RemoteConfig struct {
	// Repository is the "owner/name" path of the hosted git repository.
	Repository string `toml:"repository"`

	// Branch is the branch containers are written to. Empty means the
	// repository default.
	Branch string `toml:"branch,omitempty"`

	// Token is the plaintext fallback for the access token.
	Token string `toml:"token,omitempty"`
}

// LoadUserConfig loads the user configuration from the config file.
func LoadUserConfig() (*UserConfig, error) {
	configPath := configFilePath()

	config := &UserConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := readConfigFile(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	if err := writeConfigFile(configFilePath(), config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// GenerateInstallUUID generates a new UUID for this installation.
func GenerateInstallUUID() string {
	return uuid.New().String()
}

// EnsureUserConfig ensures the user configuration exists and has an
// install UUID.
func EnsureUserConfig() (*UserConfig, error) {
	config, err := LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if config.Install.UUID == "" {
		config.Install.UUID = GenerateInstallUUID()
		if err := SaveUserConfig(config); err != nil {
			return nil, fmt.Errorf("failed to save user config: %w", err)
		}
	}

	return config, nil
}

// ResolveRemoteToken returns the access token for the configured remote,
// preferring the OS keyring over the config-file fallback.
func ResolveRemoteToken(remote RemoteConfig) (string, error) {
	if remote.Repository == "" {
		return "", fmt.Errorf("no remote repository configured")
	}

	if token, err := keyring.GetToken(remote.Repository); err == nil && token != "" {
		return token, nil
	}

	if remote.Token != "" {
		return remote.Token, nil
	}

	return "", fmt.Errorf("no access token found for %s", remote.Repository)
}

// StoreRemoteToken stores the access token in the OS keyring, falling
// back to the config file when no keyring is available.
func StoreRemoteToken(config *UserConfig, token string) error {
	if err := keyring.SaveToken(config.Remote.Repository, token); err == nil {
		config.Remote.Token = ""
		return SaveUserConfig(config)
	}

	config.Remote.Token = token
	return SaveUserConfig(config)
}
