package compact

// ZigZagEncode maps signed integers onto unsigned ones so that values of small
// magnitude stay small: 0→0, -1→1, 1→2, -2→3, ...
func ZigZagEncode(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// ZigZagDecode is the inverse of ZigZagEncode.
func ZigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
