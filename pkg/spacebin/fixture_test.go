package spacebin

import "encoding/binary"

// knownTags are the 29 tags of a real compiled space, in on-disk order.
var knownTags = []string{
	"BWTB", "BWST", "BWAL", "BWCS", "BWSG", "BSGD", "BWS2", "BSG2", "BWT2", "BSMI",
	"BSMO", "BSMA", "SpTr", "WGSD", "WTCP", "BWWa", "BWEP", "WGCO", "BWPs", "CENT",
	"UDOS", "WGDE", "BWLC", "BWVL", "WTau", "WTbl", "WGSH", "WGMM", "GOBJ",
}

type fixtureSection struct {
	tag  string
	data []byte
}

// writeDirectory encodes entries with non-zero reserved words so that a
// parser reading the wrong field is caught.
func writeDirectory(l Layout, entries []Descriptor) []byte {
	buf := make([]byte, l.Size())
	for i, e := range entries {
		rec := buf[i*l.Stride:]
		copy(rec[0:4], e.Tag[:])
		binary.LittleEndian.PutUint32(rec[4:], 0xDEADBEEF)
		binary.LittleEndian.PutUint32(rec[8:], uint32(e.Offset))
		binary.LittleEndian.PutUint32(rec[12:], 0xCAFEF00D)
		binary.LittleEndian.PutUint32(rec[16:], uint32(e.Length))
		for j := recordFields; j < l.Stride; j += 4 {
			binary.LittleEndian.PutUint32(rec[j:], 0x01020304)
		}
	}
	return buf
}

// buildArchive lays the sections out back to back after the directory.
func buildArchive(l Layout, sections ...fixtureSection) ([]byte, []Descriptor) {
	entries := make([]Descriptor, l.Entries)
	out := make([]byte, l.Size())
	for i, s := range sections {
		off := len(out)
		if l.Base == BaseDirectory {
			off -= l.Size()
		}
		entries[i] = Descriptor{Tag: MustTag(s.tag), Offset: int32(off), Length: int32(len(s.data))}
		out = append(out, s.data...)
	}
	copy(out, writeDirectory(l, entries))
	return out, entries
}

// fullArchive has every known tag with an 8-byte payload.
func fullArchive(l Layout) ([]byte, []Descriptor) {
	sections := make([]fixtureSection, len(knownTags))
	for i, tag := range knownTags {
		sections[i] = fixtureSection{tag: tag, data: []byte{byte(i), 1, 2, 3, 4, 5, 6, 7}}
	}
	return buildArchive(l, sections...)
}

// stringRecord builds one 32-byte string-table record.
func stringRecord(marker byte, text string) []byte {
	rec := make([]byte, StringRecordSize)
	rec[0] = marker
	copy(rec[1:], text)
	return rec
}

func padded(s string) string {
	b := make([]byte, StringLength)
	copy(b, s)
	return string(b)
}
