// Package block packs batches of samples into self-describing binary blocks
// of SKM codewords.
//
// A block starts with a 16-byte header followed by the codeword payload:
//
//	offset 0-1   flag word, always little-endian: magic in bits 4-15,
//	             bit 0 selects big-endian for the remaining fields
//	offset 2     codec parameters, K<<4 | M
//	offset 3     payload compression type
//	offset 4-7   sample count
//	offset 8-15  xxHash64 of the uncompressed codewords
//
// The payload holds one codeword per sample, optionally compressed with one
// of the codecs in the compress package. Codewords cluster heavily for
// smooth signals, so general-purpose compression often shrinks the block
// well below one byte per sample.
//
// # Encoding
//
//	enc, err := block.NewEncoder(skm.MustParams(5, 3),
//	    block.WithCompression(format.CompressionZstd),
//	)
//	if err != nil {
//	    return err
//	}
//	data, err := enc.Encode(samples)
//
// Samples above the encodable range fail the block with an *EncodeError
// unless WithOverflowPolicy(OverflowClamp) is set.
//
// # Decoding
//
//	dec, err := block.NewDecoder(data)
//	if err != nil {
//	    return err
//	}
//	values := dec.Values(nil)
//
// Values are reconstructed with the analytic bucket midpoints unless a
// lookup table is supplied through WithTable.
package block
