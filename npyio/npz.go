package npyio

import (
	"bufio"
	"os"
	"sort"

	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
)

// WriteNPZ writes the named arrays to a .npz archive at output. Each array
// is stored as <name>.npy, in sorted name order.
func WriteNPZ(arrays map[string]Array, output string) (err error) {
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	b := bufio.NewWriter(f)
	z := zip.NewWriter(b)

	names := make([]string, 0, len(arrays))
	for name := range arrays {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		w, err := z.Create(name + ".npy")
		if err != nil {
			return err
		}

		if err := Write(w, arrays[name]); err != nil {
			return errors.Wrapf(err, "array %s", name)
		}
	}

	if err := z.Close(); err != nil {
		return err
	}
	return b.Flush()
}
