package library

import (
	"fmt"
	"os"
	"path/filepath"
)

// Library represents the managed storage layout for snapdoc: the documents
// directory (the flat PDF store), a staging cache for renderer output and
// import copies, and the config file location.
type Library struct {
	RootPath      string
	DocumentsPath string
	CachePath     string
	ConfigPath    string
}

// New creates a Library instance with XDG-compliant paths
func New() (*Library, error) {
	rootPath, rootErr := getLibraryRoot()
	configPath, configErr := getConfigPath()
	if rootErr != nil {
		return nil, fmt.Errorf("failed to determine library root: %w", rootErr)
	}
	if configErr != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", configErr)
	}

	return &Library{
		RootPath:      rootPath,
		DocumentsPath: filepath.Join(rootPath, "documents"),
		CachePath:     filepath.Join(rootPath, "cache"),
		ConfigPath:    configPath,
	}, nil
}

// getLibraryRoot returns the library root directory path
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func getLibraryRoot() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "snapdoc"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "snapdoc"), nil
	}

	return filepath.Join(homeDir, ".local", "share", "snapdoc"), nil
}

func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "snapdoc", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "snapdoc-config", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", "snapdoc", "config.yaml"), nil
}

// Initialize creates the library directory structure if it doesn't exist
func (l *Library) Initialize() error {
	directories := []string{
		l.RootPath,
		l.DocumentsPath,
		l.CachePath,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Exists checks if the library has been initialized
func (l *Library) Exists() bool {
	info, err := os.Stat(l.DocumentsPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// DocumentPath returns the full path for a document file
func (l *Library) DocumentPath(filename string) string {
	return filepath.Join(l.DocumentsPath, filename)
}

// StagingPath returns the full path for a staging file in the cache
func (l *Library) StagingPath(filename string) string {
	return filepath.Join(l.CachePath, filename)
}

// CleanCache removes all staging files from the cache directory and
// returns how many entries were removed
func (l *Library) CleanCache() (int, error) {
	entries, err := os.ReadDir(l.CachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		path := filepath.Join(l.CachePath, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed++
	}

	return removed, nil
}
