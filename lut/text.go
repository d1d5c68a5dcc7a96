package lut

import (
	"bufio"
	"fmt"
	"io"
)

// WriteText writes one "codeword:value" line per entry in run order.
func WriteText(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	for _, e := range t.entries {
		if _, err := fmt.Fprintf(bw, "%d:%d\n", e.Codeword, e.Value); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WritePython writes the table as a Python dictionary literal named
// _decompression_LUT_SKM_0<K><M>, the layout consumed by the ground
// analysis scripts.
func WritePython(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s={\n", PythonName(t)); err != nil {
		return err
	}
	for _, e := range t.entries {
		if _, err := fmt.Fprintf(bw, "%d:%d,\n", e.Codeword, e.Value); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("}\n"); err != nil {
		return err
	}

	return bw.Flush()
}

// PythonName returns the dictionary name WritePython uses for t. The
// leading 0 is the sign bit S, always clear for unsigned schemes.
func PythonName(t *Table) string {
	return fmt.Sprintf("_decompression_LUT_SKM_0%d%d", t.params.K(), t.params.M())
}
