// Package keyring stores the remote access token in the OS keyring so it
// never has to live in a plaintext config file.
package keyring

import (
	"github.com/zalando/go-keyring"
)

const serviceName = "securedenv"

// SaveToken stores the access token for a remote repository in the OS keyring.
func SaveToken(repository string, token string) error {
	return keyring.Set(serviceName, repository, token)
}

// GetToken retrieves the access token for a remote repository from the OS keyring.
func GetToken(repository string) (string, error) {
	return keyring.Get(serviceName, repository)
}

// DeleteToken removes the access token for a remote repository from the OS keyring.
func DeleteToken(repository string) error {
	return keyring.Delete(serviceName, repository)
}

// HasToken checks if a token is stored for a remote repository.
func HasToken(repository string) bool {
	_, err := keyring.Get(serviceName, repository)
	return err == nil
}
