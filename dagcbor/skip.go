package dagcbor

// SkipOne advances past the first encoded value in data and returns its
// byte length, without the caller needing to hold on to the decoded Node.
//
// It fully decodes that value with the default DecOptions, building the
// same ipld.Node an Unmarshal call would, and then discards it; it does
// not save the Node allocation. Unlike Unmarshal, bytes after the first
// value are not an error.
func SkipOne(data []byte) (int, error) {
	d := newDecoder(data, DecOptions{}.withDefaults())
	if _, err := d.decodeValue(0); err != nil {
		return 0, err
	}
	return int(d.cur.Position()), nil
}
