package compress

import "testing"

func BenchmarkCodecs(b *testing.B) {
	data := spectrumCodewords(16 * 1024)

	for name, codec := range getAllCodecs() {
		compressed, err := codec.Compress(data)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(name+"/Compress", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})

		b.Run(name+"/Decompress", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Decompress(compressed)
			}
		})
	}
}
