package multistream

import (
	"compress/bzip2"
	"io"
)

// ExtractBlock decompresses exactly one block out of the archive. Every block
// is an independent bzip2 stream, so a fresh reader is used per call; a
// decompressor cannot be carried over from the previous block.
//
// A corrupt or truncated block returns an error and no data. Callers skip the
// block and keep scanning.
func ExtractBlock(r io.ReaderAt, b Block) ([]byte, error) {
	section := io.NewSectionReader(r, b.Start, b.Size())

	data, err := io.ReadAll(bzip2.NewReader(section))
	if err != nil {
		return nil, err
	}

	return data, nil
}
