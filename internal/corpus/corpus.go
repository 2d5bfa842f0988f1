/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package corpus supplies a small embedded text sample and file
// discovery helpers for the CLI and the benchmark harness, generalizing
// the teacher's recursive file-list builder from arbitrary binary
// corpora to the alphabet-restricted text this module encodes.
package corpus

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Shakespeare is the same 485-character Hamlet soliloquy excerpt used
// as the worked example throughout this module's test suite, embedded
// here so the benchmark harness and a quick CLI smoke test don't need
// an external file.
const Shakespeare = `To be, or not to be, that is the question:
Whether 'tis nobler in the mind to suffer
The slings and arrows of outrageous fortune,
Or to take arms against a sea of troubles
And by opposing end them. To die, to sleep--
No more--and by a sleep to say we end
The heart-ache and the thousand natural shocks
That flesh is heir to--'tis a consummation
Devoutly to be wish'd. To die, to sleep;
To sleep, perchance to dream--ay, there's the rub:
For in that sleep of death what dreams may come.`

// Samples returns a small fixed set of named byte slices, all composed
// entirely of characters in this module's alphabet, suitable for
// quickly exercising every codec without touching the filesystem.
func Samples() map[string][]byte {
	return map[string][]byte{
		"empty":       {},
		"shakespeare": []byte(Shakespeare),
		"repeated":    []byte(strings.Repeat("a", 2000)),
		"alternating": []byte(strings.Repeat("AB", 500)),
	}
}

// File describes one discovered file's path and size, mirroring the
// teacher's FileData but trimmed to the two fields this module's
// discovery helper actually needs.
type File struct {
	FullPath string
	Name     string
	Size     int64
}

// DiscoverTextFiles walks root (recursively when recursive is true) and
// returns every regular file whose name carries one of the given
// extensions (e.g. ".txt"), sorted by full path. An empty extensions
// list matches every regular file. Dot-files and dot-directories are
// always skipped, mirroring the teacher's ignoreDotFiles default.
func DiscoverTextFiles(root string, extensions []string, recursive bool) ([]File, error) {
	fi, err := os.Stat(root)

	if err != nil {
		return nil, err
	}

	var files []File

	if fi.Mode().IsRegular() {
		if matchesExtension(root, extensions) {
			files = append(files, File{FullPath: root, Name: filepath.Base(root), Size: fi.Size()})
		}

		return files, nil
	}

	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && isDotted(d.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if isDotted(d.Name()) || !matchesExtension(path, extensions) {
			return nil
		}

		info, err := d.Info()

		if err != nil {
			return err
		}

		files = append(files, File{FullPath: path, Name: d.Name(), Size: info.Size()})
		return nil
	}

	if recursive {
		if err := filepath.WalkDir(root, walk); err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(root)

		if err != nil {
			return nil, err
		}

		for _, d := range entries {
			if err := walk(filepath.Join(root, d.Name()), d, nil); err != nil {
				return nil, err
			}
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].FullPath < files[j].FullPath })
	return files, nil
}

func isDotted(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

func matchesExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)

	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}

	return false
}
