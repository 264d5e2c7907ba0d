// Package pathing implements the abstract vault path value type. A
// [VaultPath] carries a file-or-folder location in both absolute and
// vault-relative form and classifies whether it lies inside a given [Root].
// Classification is a pure string operation against the normalized root; a
// path does not need to exist on the filesystem to be represented.
package pathing

import (
	"fmt"
	"path"
	"strings"
)

// Separator is the canonical path separator used in all normalized forms.
const Separator = "/"

// Root is a normalized absolute path to the vault's sandboxed root folder. It
// always carries exactly one trailing [Separator]. A [Root] is passed
// explicitly wherever paths are constructed; it is never fetched from ambient
// state.
type Root struct {
	path string
}

// NewRoot returns a [Root] for the given absolute folder path.
func NewRoot(absPath string) (Root, error) {
	if !isAbsolute(absPath) {
		return Root{}, fmt.Errorf("(pathing-root) %w: %s", ErrNotAbsolute, absPath)
	}

	return Root{path: normalize(absPath, true)}, nil
}

// Path returns the normalized absolute root path, with trailing [Separator].
func (r Root) Path() string {
	return r.path
}

// Contains reports whether a normalized absolute path lies inside the root.
// It is a pure string-prefix test, not a filesystem existence check.
func (r Root) Contains(absPath string) bool {
	return strings.HasPrefix(absPath, r.path)
}

// VaultPath is an immutable file-or-folder location. Directory-flagged values
// end both path forms with exactly one [Separator], file-flagged values end
// neither. The relative form is present if and only if the location lies
// inside the vault. Values are constructed through [FromAbsolute] or
// [FromRelative] and derived through [VaultPath.Append]; the zero value is
// not meaningful.
type VaultPath struct {
	abs     string
	rel     string
	isDir   bool
	inVault bool
}

// FromAbsolute constructs a [VaultPath] from an absolute filesystem path. The
// path is classified in-vault if and only if its normalized form starts with
// the normalized root; in that case the relative form is derived by stripping
// the root prefix.
func FromAbsolute(absPath string, isDir bool, root Root) (VaultPath, error) {
	if !isAbsolute(absPath) {
		return VaultPath{}, fmt.Errorf("(pathing-abs) %w: %s", ErrNotAbsolute, absPath)
	}

	abs := normalize(absPath, isDir)

	p := VaultPath{abs: abs, isDir: isDir}
	if root.Contains(abs) {
		p.inVault = true
		p.rel = strings.TrimPrefix(abs, root.Path())
	}

	return p, nil
}

// FromRelative constructs a [VaultPath] from a vault-relative path; the
// result is in-vault by construction. A leading [Separator] on the relative
// path is stripped before joining onto the root.
func FromRelative(relPath string, isDir bool, root Root) (VaultPath, error) {
	rel := normalize(strings.TrimPrefix(relPath, Separator), isDir)

	if escapesUpward(rel) {
		return VaultPath{}, fmt.Errorf("(pathing-rel) %w: %s", ErrEscapesRoot, relPath)
	}

	return VaultPath{
		abs:     root.Path() + rel,
		rel:     rel,
		isDir:   isDir,
		inVault: true,
	}, nil
}

// Append derives a new [VaultPath] with a child segment joined onto the
// receiver. The receiver must be directory-flagged; the receiver itself is
// never mutated. The child inherits the receiver's in-vault classification.
func (p VaultPath) Append(segment string, isDir bool) (VaultPath, error) {
	if !p.isDir {
		return VaultPath{}, fmt.Errorf("(pathing-append) %w: %s", ErrNotADirectory, p.abs)
	}

	seg := normalize(strings.TrimPrefix(segment, Separator), isDir)
	if seg == "" || seg == Separator {
		return VaultPath{}, fmt.Errorf("(pathing-append) %w", ErrEmptySegment)
	}
	if escapesUpward(seg) {
		return VaultPath{}, fmt.Errorf("(pathing-append) %w: %s", ErrEscapesRoot, segment)
	}

	child := VaultPath{
		abs:     p.abs + seg,
		isDir:   isDir,
		inVault: p.inVault,
	}
	if p.inVault {
		child.rel = p.rel + seg
	}

	return child, nil
}

// Absolute returns the normalized absolute path.
func (p VaultPath) Absolute() string {
	return p.abs
}

// Relative returns the vault-relative path. The second return is false when
// the location lies outside the vault and no relative form applies.
func (p VaultPath) Relative() (string, bool) {
	if !p.inVault {
		return "", false
	}

	return p.rel, true
}

// IsDir reports whether the path represents a folder.
func (p VaultPath) IsDir() bool {
	return p.isDir
}

// InVault reports whether the path lies inside the vault root.
func (p VaultPath) InVault() bool {
	return p.inVault
}

// Base returns the final path element, without any trailing [Separator].
func (p VaultPath) Base() string {
	return path.Base(strings.TrimSuffix(p.abs, Separator))
}

// isAbsolute reports whether a path is absolute in normalized terms.
func isAbsolute(p string) bool {
	return strings.HasPrefix(p, Separator)
}

// escapesUpward reports whether a normalized relative path starts with a
// parent traversal, which would resolve outside the vault root.
func escapesUpward(rel string) bool {
	return rel == ".." || rel == ".."+Separator || strings.HasPrefix(rel, ".."+Separator)
}

// normalize brings a path into canonical form: single canonical [Separator]
// characters throughout, no redundant elements and, for directories, exactly
// one trailing [Separator]. File paths never carry a trailing [Separator].
func normalize(p string, isDir bool) string {
	p = strings.ReplaceAll(p, "\\", Separator)

	cleaned := path.Clean(p)
	if cleaned == "." {
		cleaned = ""
	}

	if isDir && cleaned != "" && !strings.HasSuffix(cleaned, Separator) {
		cleaned += Separator
	}

	return cleaned
}
