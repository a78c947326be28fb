package store

import (
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/starford/blogon/internal/apperr"
	"github.com/starford/blogon/internal/models"
	"github.com/starford/blogon/internal/slug"
)

// PostFile is the name of the document inside a directory post.
const PostFile = "post.md"

// minLeadingDigits is the minimum number of digits a post name starts with.
const minLeadingDigits = 4

type entryKind uint8

const (
	fileEntry entryKind = iota + 1 // NNNN_name.md
	dirEntry                       // NNNN_name[.md]/post.md
)

// entry is a directory child that follows the post naming convention.
type entry struct {
	kind entryKind
	name string
}

// docPath is the path of the Markdown document, relative to the root.
func (e entry) docPath() string {
	if e.kind == dirEntry {
		return path.Join(e.name, PostFile)
	}
	return e.name
}

// slug is derived from the entry name, not from the document inside it.
func (e entry) slug() string {
	return slug.Make(strings.TrimSuffix(e.name, ".md"))
}

// classify resolves a directory child into an entry. ok is false when the
// child does not follow the naming convention. Symbolic links must already
// be resolved: info describes the link target under the link's name.
func classify(info fs.FileInfo) (entry, bool) {
	name := info.Name()
	if leadingDigits(name) < minLeadingDigits {
		return entry{}, false
	}
	switch {
	case info.IsDir():
		return entry{kind: dirEntry, name: name}, true
	case strings.HasSuffix(name, ".md"):
		return entry{kind: fileEntry, name: name}, true
	}
	return entry{}, false
}

// resolve follows a symbolic link child so that it is classified by its
// target. ok is false for a dangling link.
func (s *Store) resolve(info fs.FileInfo) (fs.FileInfo, bool) {
	if info.Mode()&fs.ModeSymlink == 0 || leadingDigits(info.Name()) < minLeadingDigits {
		return info, true
	}
	target, err := s.provider.Stat(info.Name())
	if err != nil {
		s.logger.Warn("store: dangling symlink",
			slog.String("name", info.Name()), slog.String("error", err.Error()))
		return nil, false
	}
	return target, true
}

func leadingDigits(s string) int {
	n := 0
	for n < len(s) && '0' <= s[n] && s[n] <= '9' {
		n++
	}
	return n
}

// List returns the catalog of the store.
//
// Children that do not follow the naming convention are skipped. Symbolic
// links are followed; dangling ones are logged and skipped, as is a child
// whose name is not valid UTF-8. Any failure to read a
// candidate's front matter fails the whole call.
func (s *Store) List() ([]models.FrontMatter, error) {
	infos, err := s.provider.ReadDir("")
	if err != nil {
		return nil, apperr.IO(s.provider.Root(), err)
	}

	index := make([]models.FrontMatter, 0, len(infos))
	for _, info := range infos {
		if !utf8.ValidString(info.Name()) {
			s.logger.Warn("store: invalid utf-8 file name", slog.String("name", info.Name()))
			continue
		}
		info, ok := s.resolve(info)
		if !ok {
			continue
		}
		e, ok := classify(info)
		if !ok {
			continue
		}
		fm, err := s.readFrontMatter(e)
		if err != nil {
			return nil, err
		}
		if s.production && fm.Metadata.IsDraft() {
			continue
		}
		index = append(index, fm)
	}

	sortIndex(index)
	return index, nil
}

// sortIndex orders dated posts newest first, then drafts by descending slug.
//
// Before being reversed, the comparison ranks drafts below dated posts and
// drafts among themselves by ascending slug, so drafts end up last and in
// descending slug order.
func sortIndex(index []models.FrontMatter) {
	slices.SortStableFunc(index, func(lhs, rhs models.FrontMatter) int {
		return -compareEntries(lhs, rhs)
	})
}

func compareEntries(lhs, rhs models.FrontMatter) int {
	ld, rd := lhs.Metadata.Date, rhs.Metadata.Date
	switch {
	case ld != nil && rd != nil:
		return ld.Compare(rd.Time)
	case ld != nil:
		return 1
	case rd != nil:
		return -1
	}
	return strings.Compare(lhs.Slug, rhs.Slug)
}
