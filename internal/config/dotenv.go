package config

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

type envVar struct {
	key, value string
}

// LoadDotEnv exports the KEY=VALUE pairs from path. Variables already present in the
// environment win over the file. A missing file or empty path is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	vars, err := parseDotEnv(f)
	if err != nil {
		return eris.Wrapf(err, "read %s", path)
	}
	for _, v := range vars {
		if _, set := os.LookupEnv(v.key); set {
			continue
		}
		if err := os.Setenv(v.key, v.value); err != nil {
			return eris.Wrapf(err, "set %s", v.key)
		}
	}
	return nil
}

// parseDotEnv returns assignments in file order. Comments, blank lines and lines
// without '=' are dropped; an "export " prefix and matching outer quotes are stripped.
func parseDotEnv(r io.Reader) ([]envVar, error) {
	var vars []envVar
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		vars = append(vars, envVar{key: key, value: unquote(strings.TrimSpace(value))})
	}
	return vars, sc.Err()
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
		return s[1 : len(s)-1]
	}
	return s
}
