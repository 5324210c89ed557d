package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var inlineSeeds = []string{
	"",
	"throw new Error(\"boom\");\n",
	"throw new Error(`Failed to fetch user ${userId}: ${response.statusText}`);\n",
	"const e = new Error('a' + b, { cause: err });\n",
	"throw Object.assign(new Error(\"x\"), { __NEXT_ERROR_CODE: \"E1\" });\n",
	"a = b\n/hi/g.exec(c)\n",
	"x = y / 2 / z; r = /=/.test(s);\n",
	"async function* g() { for await (const x of xs) yield x; }\n",
	"label: for (;;) { break label; }\n",
	"import x, { y as z } from \"m\";\nexport { z };\n",
	"class A extends B { static #p = 1; get q() { return this.#p; } }\n",
	"`a${`b${c}`}d`",
	"/* unterminated",
	"'\\u{1F600}\\x41\\101'",
	"0x1F_FF + 1e-3 + 10n",
	"\ufeffthrow new Error(\"bom\");\r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every .js file under testdata/, if any.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".js" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
