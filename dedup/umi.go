package dedup

import (
	"bufio"
	"context"
	"io"
	"sort"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
)

// UmiSet is the vocabulary of known UMIs. It is built once before
// processing and is read-only afterwards.
type UmiSet map[string]struct{}

// NewUmiSet returns a set containing umis.
func NewUmiSet(umis ...string) UmiSet {
	s := make(UmiSet, len(umis))
	for _, u := range umis {
		s[u] = struct{}{}
	}
	return s
}

// Contains reports whether umi is a known UMI.
func (s UmiSet) Contains(umi string) bool {
	_, ok := s[umi]
	return ok
}

// sorted returns the members of s in lexical order.
func (s UmiSet) sorted() []string {
	umis := make([]string, 0, len(s))
	for u := range s {
		umis = append(umis, u)
	}
	sort.Strings(umis)
	return umis
}

func isUmiBase(c byte) bool {
	return c == 'A' || c == 'C' || c == 'G' || c == 'T' || c == 'N'
}

// ReadUmiSet parses a UMI list, one UMI per line. Surrounding
// whitespace is trimmed and bases are upper-cased. Blank lines are
// skipped rather than producing an empty UMI.
func ReadUmiSet(r io.Reader) (UmiSet, error) {
	s := UmiSet{}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		umi := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if umi == "" {
			log.Debug.Printf("skipping blank line %d in umi list", lineNum)
			continue
		}
		for i := 0; i < len(umi); i++ {
			if !isUmiBase(umi[i]) {
				return nil, errors.E(errors.Invalid, "invalid base", string(umi[i]), "in umi", umi)
			}
		}
		s[umi] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return nil, errors.E(errors.Invalid, "umi list is empty")
	}
	return s, nil
}

// LoadUmiSet reads the UMI list at path.
func LoadUmiSet(ctx context.Context, path string) (_ UmiSet, err error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "could not open umi file", path)
	}
	defer file.CloseAndReport(ctx, f, &err)
	s, err := ReadUmiSet(f.Reader(ctx))
	if err != nil {
		return nil, errors.E(err, "reading umi file", path)
	}
	log.Debug.Printf("loaded %d umis from %s", len(s), path)
	return s, nil
}

// extractUmi returns the longest suffix of a read name made only of
// the bases A, C, G, T and N. The result is empty if the name does
// not end in such a base.
func extractUmi(name string) string {
	i := len(name)
	for i > 0 && isUmiBase(name[i-1]) {
		i--
	}
	return name[i:]
}
