package quakemap

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// Write renders the source and writes the HTML to dest. A nil dest
// writes to stdout, a string is treated as a file path to create or
// truncate, and an io.Writer receives the document directly.
func Write(src Source, dest any, opts ...Option) error {
	html, err := Render(src, opts...)
	if err != nil {
		return err
	}

	switch d := dest.(type) {
	case nil:
		_, err = io.WriteString(os.Stdout, html)
	case string:
		err = os.WriteFile(d, []byte(html), 0o644)
	case io.Writer:
		_, err = io.WriteString(d, html)
	default:
		return eris.Wrapf(ErrBadDestination, "%T", dest)
	}
	if err != nil {
		return eris.Wrap(err, "write map")
	}
	return nil
}
