package zforth

import "strconv"

// parseNumDefault implements NopHost's number parsing: base-10 (or
// 0x/0-prefixed) signed integers, matching the intent of the reference
// host's sscanf-based zf_host_parse_num but using strconv so 0x/0b/0o
// literals also work from the start.
func parseNumDefault(buf string) (Cell, bool) {
	v, err := strconv.ParseInt(buf, 0, 32)
	if err != nil {
		return 0, false
	}
	return Cell(v), true
}

// Dump returns a copy of the full dictionary image, suitable for writing
// to disk and later restoring with Load. It mirrors zf_dump's contract of
// exposing the raw dict bytes verbatim; callers that care about
// cross-build compatibility should record SchemaVersion alongside it.
func (e *Engine) Dump() []byte {
	out := make([]byte, DictSize)
	copy(out, e.dict[:])
	return out
}

// Load restores a dictionary image previously produced by Dump. It does
// not call Init: the user variables (HERE, LATEST, the stack pointers)
// come from the image itself, so any words already compiled and any
// dictionary-resident data survive the round trip.
func (e *Engine) Load(data []byte) Result {
	if len(data) != DictSize {
		return AbortInvalidSize
	}
	copy(e.dict[:], data)
	return OK
}
