// Package release builds the release payload that tells the platform how
// to start an application on the installed runtime.
package release

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Executable is the java launcher relative to the application root.
const Executable = ".java/bin/java"

// ManifestPath is the jar manifest location relative to the app root.
var ManifestPath = filepath.Join("META-INF", "MANIFEST.MF")

// ErrNoMainClass is returned when the manifest has no Main-Class header.
var ErrNoMainClass = errors.New("no Main-Class in manifest")

// Payload is the release document.
type Payload struct {
	Addons              []string          `yaml:"addons"`
	ConfigVars          map[string]string `yaml:"config_vars"`
	DefaultProcessTypes map[string]string `yaml:"default_process_types"`
}

// Command returns the process start command for mainClass, adding a
// thread stack size option when stackSize is set.
func Command(mainClass, stackSize string) string {
	cmd := fmt.Sprintf("%s -cp . %s", Executable, mainClass)
	if stackSize != "" {
		cmd += " -Xss" + stackSize
	}
	return cmd
}

// New returns the payload for a web process running mainClass.
func New(mainClass, stackSize string) Payload {
	return Payload{
		Addons:     []string{},
		ConfigVars: map[string]string{},
		DefaultProcessTypes: map[string]string{
			"web": Command(mainClass, stackSize),
		},
	}
}

// Marshal renders the payload as YAML.
func (p Payload) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// MainClass reads the Main-Class header from the app's jar manifest.
func MainClass(appDir string) (string, error) {
	path := filepath.Join(appDir, ManifestPath)
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("reading manifest: %w", err)
	}
	defer f.Close()

	headers, err := parseManifest(f)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	mainClass := headers["Main-Class"]
	if mainClass == "" {
		return "", fmt.Errorf("%s: %w", path, ErrNoMainClass)
	}
	return mainClass, nil
}

// parseManifest reads the main section of a jar manifest. Lines starting
// with a single space continue the previous header.
func parseManifest(r io.Reader) (map[string]string, error) {
	headers := make(map[string]string)
	scanner := bufio.NewScanner(r)

	var last string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			// End of the main section.
			break
		}
		if strings.HasPrefix(line, " ") {
			if last == "" {
				return nil, fmt.Errorf("continuation line without header")
			}
			headers[last] += line[1:]
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("malformed header line %q", line)
		}
		last = strings.TrimSpace(name)
		headers[last] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return headers, nil
}
