// Package plugin dispatches unknown subcommands to grsched-* executables on PATH.
package plugin

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Prefix is prepended to a subcommand name to form the plugin executable name
const Prefix = "grsched-"

// Plugin is an executable found on PATH
type Plugin struct {
	Name string
	Path string
}

// FindPlugin looks for a grsched-* plugin in the PATH
func FindPlugin(name string) (string, error) {
	if name == "" || strings.ContainsRune(name, os.PathSeparator) {
		return "", fmt.Errorf("invalid plugin name %q", name)
	}

	pluginName := Prefix + name
	path, err := exec.LookPath(pluginName)
	if err != nil {
		return "", fmt.Errorf("plugin '%s' not found in PATH", pluginName)
	}
	return path, nil
}

// ExecutePlugin runs a grsched-* plugin with the given arguments. env is
// appended to the current environment so plugins can find the active config.
func ExecutePlugin(ctx context.Context, name string, args []string, env ...string) error {
	pluginPath, err := FindPlugin(name)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, pluginPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Env = append(os.Environ(), env...)

	return cmd.Run()
}

// ListPlugins returns the grsched-* executables in PATH sorted by name.
// When a name appears in several directories the first one on PATH wins.
func ListPlugins() ([]Plugin, error) {
	pathEnv := os.Getenv("PATH")
	if pathEnv == "" {
		return nil, nil
	}

	seen := make(map[string]string)
	for _, dir := range filepath.SplitList(pathEnv) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasPrefix(name, Prefix) {
				continue
			}

			pluginName := strings.TrimPrefix(name, Prefix)
			if _, ok := seen[pluginName]; ok {
				continue
			}

			fullPath := filepath.Join(dir, name)
			info, err := os.Stat(fullPath)
			if err != nil || info.Mode()&0111 == 0 {
				continue
			}
			seen[pluginName] = fullPath
		}
	}

	result := make([]Plugin, 0, len(seen))
	for name, path := range seen {
		result = append(result, Plugin{Name: name, Path: path})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}
