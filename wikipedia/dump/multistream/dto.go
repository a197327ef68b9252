package multistream

// Index is the parsed form of a multistream index file.
type Index struct {
	// Offsets marks the start of every independently compressed block in the
	// companion archive. Strictly increasing, no duplicates.
	Offsets []int64

	// Lines is the raw index line count. The dataset treats it as the
	// indexed-article count of the wiki.
	Lines int

	// Skipped counts malformed index lines.
	Skipped int
}

// Block is one byte range of the archive holding a self-contained bzip2 stream.
type Block struct {
	Start int64
	End   int64
}

// Size returns the compressed byte length of the block.
func (b Block) Size() int64 {
	return b.End - b.Start
}
