package index

import (
	"encoding/binary"
	"time"
)

const dateKeyLen = 8 + 4

// key = invDate(8) + seq(4) + 0x00 + slug
//
// invDate sorts newer calendar days first; seq keeps the caller's order for
// entries sharing a day.
func makeDateSeqSlugKey(date string, seq uint32, slug string) []byte {
	buf := make([]byte, dateKeyLen, dateKeyLen+1+len(slug))
	binary.BigEndian.PutUint64(buf[0:8], invDate(date))
	binary.BigEndian.PutUint32(buf[8:12], seq)
	buf = append(buf, 0x00)
	buf = append(buf, slug...)
	return buf
}

func invDate(date string) uint64 {
	var days int64
	if t, err := time.Parse(time.DateOnly, date); err == nil {
		days = t.Unix() / 86400
	}
	// flip the sign bit so negative days still compare below positive ones
	return ^(uint64(days) ^ (1 << 63))
}

func slugFromDateSeqSlugKey(k []byte) string {
	if len(k) < dateKeyLen+2 || k[dateKeyLen] != 0x00 {
		return ""
	}
	return string(k[dateKeyLen+1:])
}
