package portfolio

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
)

const ledgerExt = ".csv"

// Store owns the on-disk representation of portfolios: one CSV ledger file
// per portfolio inside a single directory. Portfolio names are opaque and
// case-sensitive, the file system is the namespace.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created lazily on
// the first write.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// Dir returns the portfolio directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+ledgerExt)
}

// Create makes a new empty portfolio denominated in baseCurrency (USD when
// empty). It fails with ErrPortfolioExists when the backing file is already
// there, leaving it untouched.
func (s *Store) Create(name, baseCurrency string) (*Ledger, error) {
	if name == "" {
		return nil, errors.New("portfolio name is missing")
	}
	if baseCurrency == "" {
		baseCurrency = DefaultCurrency
	}
	baseCurrency = strings.ToUpper(baseCurrency)
	if !KnownCurrency(baseCurrency) {
		return nil, fmt.Errorf("unknown base currency %q", baseCurrency)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create portfolio directory %q: %w", s.dir, err)
	}

	path := s.path(name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %q", ErrPortfolioExists, name)
		}
		return nil, fmt.Errorf("cannot create portfolio %q: %w", name, err)
	}
	defer f.Close()

	ledger := NewLedger(name, baseCurrency)
	if err := EncodeLedger(f, ledger); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("cannot write portfolio %q: %w", name, err)
	}
	return ledger, nil
}

// Open loads the named portfolio. It reads the whole file in one call so a
// concurrent writer can never hand it an interleaved view.
func (s *Store) Open(name string) (*Ledger, error) {
	path := s.path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrPortfolioNotFound, name)
		}
		return nil, fmt.Errorf("cannot read portfolio %q: %w", name, err)
	}
	return DecodeLedger(path, name, bytes.NewReader(data))
}

// Append validates tx against the named portfolio and durably appends it.
//
// The write is guarded by a sidecar lock file: when another writer holds it,
// Append fails fast with ErrLocked instead of blocking or interleaving. The
// file content is replaced atomically (write to a temp file in the same
// directory, then rename), so every failure path leaves the ledger unchanged.
func (s *Store) Append(name string, tx Transaction) (Transaction, error) {
	path := s.path(name)

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return Transaction{}, fmt.Errorf("cannot acquire lock for %q: %w", name, err)
	}
	if !locked {
		return Transaction{}, fmt.Errorf("%w: %q", ErrLocked, name)
	}
	defer lock.Unlock()

	ledger, err := s.Open(name)
	if err != nil {
		return Transaction{}, err
	}
	validated, err := ledger.Append(tx)
	if err != nil {
		return Transaction{}, err
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return Transaction{}, fmt.Errorf("cannot stage write for %q: %w", name, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := EncodeLedger(tmp, ledger); err != nil {
		tmp.Close()
		return Transaction{}, fmt.Errorf("cannot write portfolio %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return Transaction{}, fmt.Errorf("cannot write portfolio %q: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return Transaction{}, fmt.Errorf("cannot replace portfolio %q: %w", name, err)
	}
	return validated, nil
}

// List enumerates portfolio names, sorted. Entries that are not ledger files
// (directories, other extensions, lock files) are ignored rather than
// reported as errors. A missing directory is an empty store.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot list portfolios in %q: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ledgerExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ledgerExt))
	}
	sort.Strings(names)
	return names, nil
}
