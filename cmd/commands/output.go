package commands

import (
	"fmt"
	"io"

	"github.com/beatoz/fxseries/libs/jsonx"
	"github.com/beatoz/fxseries/types/xerrors"
)

func writeJSON(w io.Writer, v any) error {
	bz, err := jsonx.MarshalIndent(v, "", "  ")
	if err != nil {
		return xerrors.ErrIO.Wrap(err)
	}
	if _, err := fmt.Fprintln(w, string(bz)); err != nil {
		return xerrors.ErrIO.Wrap(err)
	}
	return nil
}

// lines writes label/value rows aligned on the label column.
func lines(w io.Writer, rows ...[2]string) error {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, r[0], r[1]); err != nil {
			return xerrors.ErrIO.Wrap(err)
		}
	}
	return nil
}
