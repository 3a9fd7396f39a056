package jre

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables and system properties that select the runtime.
// Environment variables take precedence.
const (
	EnvVendor    = "JAVA_RUNTIME_VENDOR"
	EnvVersion   = "JAVA_RUNTIME_VERSION"
	EnvStackSize = "JAVA_RUNTIME_STACK_SIZE"

	PropVendor    = "java.runtime.vendor"
	PropVersion   = "java.runtime.version"
	PropStackSize = "java.runtime.stack.size"
)

// SystemPropertiesFile is read from the application root.
const SystemPropertiesFile = "system.properties"

// Candidates holds the user's runtime preferences. Empty fields are unset.
type Candidates struct {
	Vendor    string
	Version   string
	StackSize string
}

// CandidatesFromApp reads candidates from the environment, falling back to
// the application's system.properties. getenv is usually os.Getenv.
func CandidatesFromApp(appDir string, getenv func(string) string) (Candidates, error) {
	props, err := ReadSystemProperties(appDir)
	if err != nil {
		return Candidates{}, err
	}

	pick := func(env, prop string) string {
		if v := strings.TrimSpace(getenv(env)); v != "" {
			return v
		}
		return strings.TrimSpace(props[prop])
	}

	return Candidates{
		Vendor:    pick(EnvVendor, PropVendor),
		Version:   pick(EnvVersion, PropVersion),
		StackSize: pick(EnvStackSize, PropStackSize),
	}, nil
}

// ReadSystemProperties parses <appDir>/system.properties. A missing file
// yields no properties.
func ReadSystemProperties(appDir string) (map[string]string, error) {
	path := filepath.Join(appDir, SystemPropertiesFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	props, err := parseProperties(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return props, nil
}

// parseProperties handles the subset of the Java properties format used
// for runtime selection: key=value or key:value lines, # and ! comments,
// and backslash line continuations. Other escapes are kept verbatim.
func parseProperties(r io.Reader) (map[string]string, error) {
	props := make(map[string]string)
	scanner := bufio.NewScanner(r)

	var logical strings.Builder
	for scanner.Scan() {
		line := strings.TrimLeft(scanner.Text(), " \t\f")
		if logical.Len() == 0 && (line == "" || line[0] == '#' || line[0] == '!') {
			continue
		}

		if continues(line) {
			logical.WriteString(strings.TrimSuffix(line, `\`))
			continue
		}
		logical.WriteString(line)

		key, value := splitProperty(logical.String())
		logical.Reset()
		if key != "" {
			props[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if logical.Len() > 0 {
		key, value := splitProperty(logical.String())
		if key != "" {
			props[key] = value
		}
	}
	return props, nil
}

// continues reports whether line ends in an unescaped backslash, that is
// an odd number of trailing backslashes.
func continues(line string) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

func splitProperty(line string) (string, string) {
	i := strings.IndexAny(line, "=: \t")
	if i < 0 {
		return strings.TrimSpace(line), ""
	}
	key := line[:i]
	rest := strings.TrimLeft(line[i:], " \t")
	if rest != "" && (rest[0] == '=' || rest[0] == ':') {
		rest = rest[1:]
	}
	return key, strings.TrimSpace(rest)
}
