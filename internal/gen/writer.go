package gen

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// rename is swapped in tests to simulate a failing commit.
var rename = os.Rename

// WriteFiles writes all generated files to the output directory, creating it
// if needed. Every file is first written to a temporary file in outputDir.
// Existing targets are moved aside and restored if any file cannot be put in
// place, so a failed run leaves the directory as it was.
func WriteFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", outputDir)
	}

	targets := make([]string, 0, len(files))

	for _, file := range files {
		if file.Filename == "" || filepath.Base(file.Filename) != file.Filename {
			return nil, errors.Newf("invalid output file name %q", file.Filename)
		}

		target := filepath.Join(outputDir, file.Filename)

		err := checkTarget(target)
		if err != nil {
			return nil, err
		}

		targets = append(targets, target)
	}

	temps := make([]string, 0, len(files))

	for _, file := range files {
		tmp, err := writeTemp(outputDir, file)
		if err != nil {
			removeAll(temps)
			return nil, err
		}

		temps = append(temps, tmp)
	}

	err = commit(temps, targets)
	if err != nil {
		removeAll(temps)
		return nil, err
	}

	return targets, nil
}

// checkTarget rejects a target that exists but cannot be replaced by a file.
func checkTarget(target string) error {
	info, err := os.Lstat(target)

	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return errors.Wrapf(err, "writing %s", target)
	case !info.Mode().IsRegular():
		return errors.WithHint(errors.Newf("writing %s: target exists and is not a regular file", target),
			"remove it or choose another output directory")
	default:
		return nil
	}
}

type placement struct {
	target string
	backup string
}

// commit renames every temporary onto its target. On failure every target
// already placed is removed and its previous content restored.
func commit(temps, targets []string) error {
	var done []placement

	rollback := func() {
		for i := len(done) - 1; i >= 0; i-- {
			p := done[i]
			_ = os.Remove(p.target)

			if p.backup != "" {
				_ = rename(p.backup, p.target)
			}
		}
	}

	for i, target := range targets {
		p := placement{target: target}

		if _, err := os.Lstat(target); err == nil {
			p.backup = temps[i] + ".orig"

			if err := rename(target, p.backup); err != nil {
				rollback()
				return errors.Wrapf(err, "writing %s", target)
			}
		}

		if err := rename(temps[i], target); err != nil {
			if p.backup != "" {
				_ = rename(p.backup, target)
			}

			rollback()

			return errors.Wrapf(err, "writing %s", target)
		}

		done = append(done, p)
	}

	for _, p := range done {
		if p.backup != "" {
			_ = os.Remove(p.backup)
		}
	}

	return nil
}

func writeTemp(dir string, file GeneratedFile) (string, error) {
	f, err := os.CreateTemp(dir, "."+file.Filename+".*.tmp")
	if err != nil {
		return "", errors.Wrapf(err, "writing %s", file.Filename)
	}

	name := f.Name()

	_, err = f.Write(file.Content)
	if err == nil {
		err = f.Chmod(filePerm)
	}

	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(name)
		return "", errors.Wrapf(err, "writing %s", file.Filename)
	}

	return name, nil
}

func removeAll(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}
