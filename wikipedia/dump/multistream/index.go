// Package multistream gives random access into pages-articles-multistream
// dumps: the index file maps article titles to byte offsets of independently
// compressed bzip2 blocks, so single blocks can be decompressed without
// touching the rest of a multi-gigabyte archive.
package multistream

import (
	"bufio"
	"compress/bzip2"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ReadIndex parses a bz2 compressed index file. Each line is
// <offset>:<substream>:<title>; many lines share one offset because several
// articles live in the same block. Malformed lines are skipped, never fatal.
func ReadIndex(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readIndex(bzip2.NewReader(f))
}

func readIndex(r io.Reader) (*Index, error) {
	ix := new(Index)
	seen := make(map[int64]bool)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		ix.Lines++

		parts := strings.SplitN(scanner.Text(), ":", 3)
		if len(parts) != 3 {
			ix.Skipped++
			continue
		}
		offset, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil || offset < 0 {
			ix.Skipped++
			continue
		}

		if !seen[offset] {
			seen[offset] = true
			ix.Offsets = append(ix.Offsets, offset)
		}
	}
	if err := scanner.Err(); err != nil {
		// A truncated bz2 stream invalidates the offsets read so far.
		return nil, err
	}

	sort.Slice(ix.Offsets, func(i, j int) bool { return ix.Offsets[i] < ix.Offsets[j] })

	return ix, nil
}

// Blocks pairs consecutive offsets into byte ranges. The last block ends at
// size, so consecutive ranges cover [Offsets[0], size) with no gaps.
func (ix *Index) Blocks(size int64) []Block {
	blocks := make([]Block, 0, len(ix.Offsets))
	for i, off := range ix.Offsets {
		end := size
		if i+1 < len(ix.Offsets) {
			end = ix.Offsets[i+1]
		}
		if end <= off {
			continue
		}
		blocks = append(blocks, Block{Start: off, End: end})
	}
	return blocks
}
