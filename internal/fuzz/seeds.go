package fuzztests

import (
	"testing"

	"exactprint/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func addCorpusSeeds(f *testing.F) {
	for _, c := range testkit.Corpus {
		f.Add([]byte(c.Src))
	}
	f.Add([]byte{})
	f.Add([]byte("\t f = 1\n"))
	f.Add([]byte("f = do {\n"))
	f.Add([]byte("{- unterminated"))
	f.Add([]byte("f = \"open\n"))
	f.Add([]byte("module M where { f = 1 ; ; g = 2 }\n"))
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
