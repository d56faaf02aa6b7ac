package config

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrEmptyProject indicates a missing project file path
	ErrEmptyProject = errors.New("empty project path")

	// ErrInvalidProject indicates a project path that is absolute or leaves the top directory
	ErrInvalidProject = errors.New("invalid project path")

	// ErrEmptyLayout indicates the directory-to-filter table has no entries
	ErrEmptyLayout = errors.New("empty layout")

	// ErrInvalidMapping indicates a malformed directory-to-filter entry
	ErrInvalidMapping = errors.New("invalid layout mapping")

	// ErrInvalidExtension indicates a source extension without a leading dot
	ErrInvalidExtension = errors.New("invalid extension")

	// ErrInvalidExclude indicates an exclude pattern that does not compile
	ErrInvalidExclude = errors.New("invalid exclude pattern")

	// ErrInvalidDebounce indicates a negative watch debounce
	ErrInvalidDebounce = errors.New("invalid watch debounce")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.Project) == "" {
		errs = append(errs, fmt.Errorf("%w: project is required", ErrEmptyProject))
	} else if err := validateRelPath(cfg.Project); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidProject, err))
	}

	if err := validateLayout(cfg.Layout); err != nil {
		errs = append(errs, err)
	}

	if err := validateExtensions(cfg.Extensions); err != nil {
		errs = append(errs, err)
	}

	if err := validateExclude(cfg.Exclude); err != nil {
		errs = append(errs, err)
	}

	if cfg.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce cannot be negative, got %s", ErrInvalidDebounce, cfg.Watch.Debounce))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateLayout(layout []DirMapping) error {
	if len(layout) == 0 {
		return fmt.Errorf("%w: at least one directory mapping required", ErrEmptyLayout)
	}

	var errs []error
	for i, m := range layout {
		if strings.TrimSpace(m.Dir) == "" {
			errs = append(errs, fmt.Errorf("%w: entry %d has no dir", ErrInvalidMapping, i))
			continue
		}
		if err := validateRelPath(m.Dir); err != nil {
			errs = append(errs, fmt.Errorf("%w: entry %d dir %v", ErrInvalidMapping, i, err))
		}
		if len(m.Filter) == 0 {
			errs = append(errs, fmt.Errorf("%w: entry %d (%s) has no filter path", ErrInvalidMapping, i, m.Dir))
		}
		for _, name := range m.Filter {
			if strings.TrimSpace(name) == "" || strings.Contains(name, `"`) {
				errs = append(errs, fmt.Errorf("%w: entry %d (%s) has invalid filter name %q", ErrInvalidMapping, i, m.Dir, name))
			}
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateExtensions(exts []string) error {
	if len(exts) == 0 {
		return fmt.Errorf("%w: at least one extension required", ErrInvalidExtension)
	}

	var errs []error
	for _, ext := range exts {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("%w: %q must start with a dot", ErrInvalidExtension, ext))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateExclude(patterns []string) error {
	var errs []error
	for _, pattern := range patterns {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidExclude, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

// validateRelPath rejects absolute paths, backslashes and paths leaving the top directory.
func validateRelPath(p string) error {
	if strings.Contains(p, `\`) {
		return fmt.Errorf("%q must use forward slashes", p)
	}
	if path.IsAbs(p) {
		return fmt.Errorf("%q must be relative to the top directory", p)
	}
	if clean := path.Clean(p); clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%q escapes the top directory", p)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	// One %w per error keeps errors.Is working on the joined error.
	args := make([]any, len(errs))
	for i, err := range errs {
		args[i] = err
	}

	return fmt.Errorf("validation failed:"+strings.Repeat("\n  - %w", len(errs)), args...)
}
