// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package fsutil opens a batch of input files matched by a glob pattern,
// for the CLI's multi-file ingestion (e.g. "data/2026-*.csv").
package fsutil

import "io/fs"

// NamedFile is an open file that remembers the path it was opened from.
type NamedFile interface {
	fs.File
	Path() string
}

type namedFile struct {
	fs.File
	path string
}

func (n *namedFile) Path() string { return n.path }

// Named produces a NamedFile with name from an ordinary fs.File.
func Named(f fs.File, name string) NamedFile {
	if nf, ok := f.(NamedFile); ok {
		return nf
	}
	return &namedFile{f, name}
}

// OpenGlob opens every non-directory file in f matching pattern, in the
// order fs.Glob returns them (lexical).
func OpenGlob(f fs.FS, pattern string) ([]NamedFile, error) {
	names, err := fs.Glob(f, pattern)
	if err != nil {
		return nil, err
	}
	out := make([]NamedFile, 0, len(names))
	for _, name := range names {
		file, err := f.Open(name)
		if err != nil {
			return nil, err
		}
		info, err := file.Stat()
		if err != nil {
			file.Close()
			return nil, err
		}
		if info.IsDir() {
			file.Close()
			continue
		}
		out = append(out, Named(file, name))
	}
	return out, nil
}
