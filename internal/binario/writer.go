package binario

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

type Writer struct {
	writer    io.Writer
	byteOrder binary.ByteOrder
}

func NewWriter(writer io.Writer, byteOrder binary.ByteOrder) *Writer {
	return &Writer{
		writer:    writer,
		byteOrder: byteOrder,
	}
}

func (w *Writer) WriteUint8(value uint8) error {
	_, err := w.writer.Write([]byte{value})
	return err
}

func (w *Writer) WriteUint16(value uint16) error {
	bf := make([]byte, 2)
	w.byteOrder.PutUint16(bf, value)
	_, err := w.writer.Write(bf)

	return err
}

// WriteBytes writes the slice prefixed with its length as uint16.
func (w *Writer) WriteBytes(value []byte) error {
	if len(value) > math.MaxUint16 {
		return fmt.Errorf("byte slice too long: %d", len(value))
	}

	if err := w.WriteUint16(uint16(len(value))); err != nil {
		return err
	}

	_, err := w.writer.Write(value)

	return err
}

func (w *Writer) WriteString(value string) error {
	return w.WriteBytes([]byte(value))
}

func (w *Writer) WriteVarUint(value uint64) error {
	for value >= 0x80 {
		if err := w.WriteUint8(uint8(value) | 0x80); err != nil {
			return err
		}

		value >>= 7
	}

	return w.WriteUint8(uint8(value))
}
