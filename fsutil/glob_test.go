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

package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenGlob(t *testing.T) {
	dirs := []string{"a/b/c", "x/b/z"}
	tmp := t.TempDir()
	for _, full := range dirs {
		f := filepath.Clean(full)
		dir, _ := filepath.Split(f)
		if err := os.MkdirAll(filepath.Join(tmp, dir), 0750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(tmp, f), []byte{}, 0640); err != nil {
			t.Fatal(err)
		}
	}

	d := os.DirFS(tmp)
	fn, err := OpenGlob(d, "[ax]/b/[cz]")
	if err != nil {
		t.Fatal(err)
	}
	if len(fn) != len(dirs) {
		t.Fatalf("got %d entries, want %d", len(fn), len(dirs))
	}
	if fn[0].Path() != "a/b/c" {
		t.Errorf("path[0] = %q", fn[0].Path())
	}
	if fn[1].Path() != "x/b/z" {
		t.Errorf("path[1] = %q", fn[1].Path())
	}
	for i := range fn {
		if err := fn[i].Close(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestOpenGlobNoMatches(t *testing.T) {
	tmp := t.TempDir()
	d := os.DirFS(tmp)
	fn, err := OpenGlob(d, "*.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(fn) != 0 {
		t.Fatalf("got %d entries, want 0", len(fn))
	}
}
