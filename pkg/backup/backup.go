package backup

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// DefaultTimestampFormat is used when no format is configured
const DefaultTimestampFormat = "20060102_150405"

// Service writes backups into a single directory
type Service struct {
	fs              types.FS
	dir             string
	timestampFormat string
	now             func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithTimestampFormat sets the Go reference-time layout used in backup names
func WithTimestampFormat(layout string) Option {
	return func(s *Service) {
		if layout != "" {
			s.timestampFormat = layout
		}
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a backup service writing into dir
func NewService(filesystem types.FS, dir string, opts ...Option) *Service {
	s := &Service{
		fs:              filesystem,
		dir:             dir,
		timestampFormat: DefaultTimestampFormat,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the backup directory
func (s *Service) Dir() string {
	return s.dir
}

// Backup copies path into the backup directory. It returns the backup
// location and true, or ("", false, nil) when nothing exists at path. A
// dangling symlink exists and is backed up as a link.
func (s *Service) Backup(path string) (string, bool, error) {
	logger := logging.GetLogger("backup")

	info, err := s.fs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, errors.ErrBackup, "cannot inspect %s for backup", path).
			WithDetail("path", path)
	}

	// A tree holding the backup directory cannot be copied into it
	if info.IsDir() && within(path, s.dir) {
		return "", false, errors.Newf(errors.ErrBackup, "cannot back up %s: it contains the backup directory %s", path, s.dir).
			WithDetail("path", path).
			WithDetail("backup_dir", s.dir)
	}

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return "", false, errors.Wrapf(err, errors.ErrBackup, "cannot create backup directory %s", s.dir).
			WithDetail("path", path).
			WithDetail("backup_dir", s.dir)
	}

	target, err := s.uniqueName(filepath.Base(path))
	if err != nil {
		return "", false, err
	}

	if err := s.copy(path, target, info); err != nil {
		// Leave no half-written backup behind
		_ = s.fs.RemoveAll(target)
		return "", false, errors.Wrapf(err, errors.ErrBackup, "failed to back up %s", path).
			WithDetail("path", path).
			WithDetail("backup", target)
	}

	logger.Info().Str("path", path).Str("backup", target).Msg("Backed up existing destination")
	return target, true, nil
}

// within reports whether path is root or lies below it
func within(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (s *Service) uniqueName(base string) (string, error) {
	name := fmt.Sprintf("%s.backup.%s", base, s.now().Format(s.timestampFormat))
	candidate := filepath.Join(s.dir, name)
	for i := 1; ; i++ {
		if _, err := s.fs.Lstat(candidate); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", errors.Wrapf(err, errors.ErrBackup, "cannot inspect backup location %s", candidate)
		}
		candidate = filepath.Join(s.dir, fmt.Sprintf("%s.%d", name, i))
	}
}

func (s *Service) copy(src, dst string, info fs.FileInfo) error {
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return s.copyLink(src, dst)
	case info.IsDir():
		return s.copyDir(src, dst, info)
	case info.Mode().IsRegular():
		return s.copyFile(src, dst, info)
	default:
		return fmt.Errorf("unsupported file type %v at %s", info.Mode().Type(), src)
	}
}

func (s *Service) copyLink(src, dst string) error {
	target, err := s.fs.Readlink(src)
	if err != nil {
		return err
	}
	return s.fs.Symlink(target, dst)
}

func (s *Service) copyFile(src, dst string, info fs.FileInfo) error {
	content, err := s.fs.ReadFile(src)
	if err != nil {
		return err
	}
	if err := s.fs.WriteFile(dst, content, info.Mode().Perm()); err != nil {
		return err
	}
	// WriteFile is subject to the umask
	if err := s.fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return s.fs.Chtimes(dst, info.ModTime(), info.ModTime())
}

func (s *Service) copyDir(src, dst string, info fs.FileInfo) error {
	if err := s.fs.MkdirAll(dst, 0700); err != nil {
		return err
	}

	entries, err := s.fs.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		childSrc := filepath.Join(src, entry.Name())
		childInfo, err := s.fs.Lstat(childSrc)
		if err != nil {
			return err
		}
		if err := s.copy(childSrc, filepath.Join(dst, entry.Name()), childInfo); err != nil {
			return err
		}
	}

	// Mode and times last: writing children changes the directory mtime
	if err := s.fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return s.fs.Chtimes(dst, info.ModTime(), info.ModTime())
}
