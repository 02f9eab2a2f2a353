package index

var (
	bMeta    = []byte("meta")     // slug -> summary JSON
	bIdxDate = []byte("idx_date") // invDate + seq + 0x00 + slug -> marker
	bBuild   = []byte("build")    // "last" -> stamp JSON

	kLastStamp = []byte("last")
)
