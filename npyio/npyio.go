// Package npyio writes float64 arrays in the NumPy .npy and .npz formats.
package npyio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
)

var order = binary.LittleEndian

// Array is a dense float64 array in row-major (C) order.
type Array struct {
	Shape []int
	Data  []float64
}

func (a Array) validate() error {
	n := 1
	for _, d := range a.Shape {
		if d < 0 {
			return errors.Errorf("invalid shape %v", a.Shape)
		}
		n *= d
	}
	if n != len(a.Data) {
		return errors.Errorf("shape %v does not match %d elements", a.Shape, len(a.Data))
	}
	return nil
}

// Write writes a to w as a .npy file.
func Write(w io.Writer, a Array) error {
	if err := a.validate(); err != nil {
		return err
	}
	if err := writeHeader(w, a.Shape); err != nil {
		return err
	}

	var buf [8]byte
	for _, x := range a.Data {
		order.PutUint64(buf[:], math.Float64bits(x))
		_, err := w.Write(buf[:])
		if err != nil {
			return err
		}
	}

	return nil
}

// The following is adapted from: github.com/sbinet/npyio
var magic = [6]byte{'\x93', 'N', 'U', 'M', 'P', 'Y'}

const (
	majorVersion = byte(2)
	minorVersion = byte(0)
	// Magic, version and the 4-byte header length.
	preambleSize = len(magic) + 2 + 4
	alignment    = 64
)

func writeHeader(w io.Writer, shape []int) error {
	if err := binary.Write(w, order, magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, order, majorVersion); err != nil {
		return err
	}
	if err := binary.Write(w, order, minorVersion); err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	fmt.Fprintf(buf,
		"{'descr': '<f8', 'fortran_order': False, 'shape': %s, }",
		shapeString(shape))

	padding := (alignment - (preambleSize+buf.Len()+1)%alignment) % alignment
	if _, err := buf.Write(bytes.Repeat([]byte{'\x20'}, padding)); err != nil {
		return err
	}
	if _, err := buf.Write([]byte{'\n'}); err != nil {
		return err
	}

	buflen := int64(buf.Len())
	if err := binary.Write(w, order, uint32(buflen)); err != nil {
		return err
	}

	if n, err := io.Copy(w, buf); err != nil {
		return err
	} else if n < buflen {
		return io.ErrShortWrite
	}

	return nil
}

func shapeString(shape []int) string {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = fmt.Sprint(d)
	}
	if len(shape) == 1 {
		return "(" + dims[0] + ",)"
	}
	return "(" + strings.Join(dims, ", ") + ")"
}
